package ledger

// Scope bounds a read-side query to one store or to an explicit set of
// store ids belonging to one user. It is always a concrete id list,
// never a wildcard.
type Scope struct {
	storeIDs []uint
}

// OneStore scopes a query to a single store.
func OneStore(id uint) Scope { return Scope{storeIDs: []uint{id}} }

// StoreSet scopes a query to an explicit set of store ids.
func StoreSet(ids []uint) Scope { return Scope{storeIDs: ids} }

// StoreIDs returns the ids the scope covers. An empty scope matches
// nothing.
func (s Scope) StoreIDs() []uint { return s.storeIDs }

// Empty reports whether the scope covers no store at all.
func (s Scope) Empty() bool { return len(s.storeIDs) == 0 }
