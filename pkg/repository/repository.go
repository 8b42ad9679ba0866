// Package repository defines the persistence contracts the services
// depend on. Implementations live under infra/repository.
package repository

import (
	"context"

	"github.com/storebook/storebook/pkg/domain/ledger"
	"github.com/storebook/storebook/pkg/domain/store"
	"github.com/storebook/storebook/pkg/domain/user"
	"github.com/storebook/storebook/pkg/dto"
)

// UserRepository persists users.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	Get(ctx context.Context, id uint) (*user.User, error)
	GetByUsername(ctx context.Context, username string) (*user.User, error)
	UpdatePassword(ctx context.Context, username, passwordHash string) error
	Count(ctx context.Context) (int64, error)
}

// StoreRepository persists stores and their append-only audit records.
type StoreRepository interface {
	Create(ctx context.Context, s *store.Store) error
	CreateDetails(ctx context.Context, d *store.Details) error
	ListByUser(ctx context.Context, userID uint) ([]dto.StoreRead, error)
	Get(ctx context.Context, id uint) (*store.Store, error)
}

// EntryRepository persists the five ledger kinds. Every operation is
// scoped by store id; update and delete match on id AND store id and
// report zero affected rows as domain.ErrNotFound.
type EntryRepository interface {
	Insert(ctx context.Context, kind ledger.Kind, storeID uint, create dto.EntryCreate) (uint, error)
	List(ctx context.Context, kind ledger.Kind, storeID uint, searchText string) ([]dto.EntryRead, error)
	Update(ctx context.Context, kind ledger.Kind, storeID, recordID uint, update dto.EntryUpdate) error
	Delete(ctx context.Context, kind ledger.Kind, storeID, recordID uint) error

	Sum(ctx context.Context, kind ledger.Kind, scope ledger.Scope) (float64, error)
	GroupSum(ctx context.Context, kind ledger.Kind, scope ledger.Scope) ([]ledger.CategoryTotal, error)
	SumDateRange(ctx context.Context, kind ledger.Kind, storeID uint, from, to string) (float64, error)
	Recent(ctx context.Context, scope ledger.Scope, limit int) ([]dto.RecentEntry, error)
}
