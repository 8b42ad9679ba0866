package repository

import (
	"context"

	repo "github.com/storebook/storebook/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one
// abstraction. Repositories handed out inside Do share the transaction
// session, so multi-row writes stay atomic.
type UoW struct {
	db *gorm.DB
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs the given function in a transaction boundary, providing a UoW
// whose repositories are bound to the transaction.
func (u *UoW) Do(ctx context.Context, fn func(uow repo.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: tx})
	})
}

// Users returns a user repository bound to the current session.
func (u *UoW) Users() repo.UserRepository { return NewUserRepository(u.db) }

// Stores returns a store repository bound to the current session.
func (u *UoW) Stores() repo.StoreRepository { return NewStoreRepository(u.db) }

// Entries returns an entry repository bound to the current session.
func (u *UoW) Entries() repo.EntryRepository { return NewEntryRepository(u.db) }
