package repository

import "context"

// UnitOfWork provides transaction boundary and repository access in one
// abstraction. Repositories obtained inside Do share the transaction's
// session, so multi-row writes (store + audit snapshot) are atomic:
// either both rows are written or neither is.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. The UnitOfWork
	// passed to fn hands out transaction-bound repositories; if fn
	// returns an error the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	Users() UserRepository
	Stores() StoreRepository
	Entries() EntryRepository
}
