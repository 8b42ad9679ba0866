package dto

// EntryRead is a read-optimized view of one ledger row. Fields a kind
// does not carry stay at their zero value.
type EntryRead struct {
	ID          uint
	Date        string
	Amount      float64
	Name        string
	Category    string
	Description string
	StoreID     uint
}

// EntryCreate carries the fields of a new ledger row. Amount
// non-negativity and finiteness are checked separately at the service
// boundary since validator tags cannot express them together.
type EntryCreate struct {
	Date        string `validate:"required,datetime=2006-01-02"`
	Amount      float64
	Name        string
	Category    string
	Description string
}

// EntryUpdate carries a partial update. Nil fields are left untouched.
type EntryUpdate struct {
	Date        *string `validate:"omitempty,datetime=2006-01-02"`
	Amount      *float64
	Name        *string
	Category    *string
	Description *string
}

// RecentEntry is one row of the cross-kind latest-entries view.
type RecentEntry struct {
	Kind   string
	Date   string
	Amount float64
	Detail string
}
