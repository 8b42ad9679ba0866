// Package registry resolves and validates the user-store-record
// scoping chain.
package registry

import (
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/storebook/storebook/pkg/domain"
	"github.com/storebook/storebook/pkg/domain/ledger"
	"github.com/storebook/storebook/pkg/domain/store"
	"github.com/storebook/storebook/pkg/dto"
	"github.com/storebook/storebook/pkg/repository"
)

// Service manages stores and their ownership.
type Service struct {
	uow      repository.UnitOfWork
	validate *validator.Validate
	logger   *slog.Logger
}

// New creates a registry service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{
		uow:      uow,
		validate: validator.New(),
		logger:   logger,
	}
}

// ListStores returns the user's stores ordered by creation; an empty
// slice if none.
func (s *Service) ListStores(ctx context.Context, userID uint) ([]dto.StoreRead, error) {
	var stores []dto.StoreRead
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		stores, err = uow.Stores().ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		s.logger.Error("list stores failed", "user_id", userID, "error", err)
		return nil, err
	}
	return stores, nil
}

// CreateStore allocates a new store row and its audit snapshot in one
// transaction: either both rows are written or neither is. Returns the
// new store id.
func (s *Service) CreateStore(ctx context.Context, userID uint, details dto.StoreCreate) (uint, error) {
	logger := s.logger.With("user_id", userID, "store_name", details.StoreName)
	if err := s.validate.Struct(details); err != nil {
		logger.Warn("create store rejected", "error", err)
		return 0, domain.ValidationError("please fill all store detail fields")
	}
	newStore := store.Store{UserID: userID, StoreName: details.StoreName}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		audit := store.Details{
			Username:  details.Username,
			StoreName: details.StoreName,
			StoreType: details.StoreType,
			OwnerName: details.OwnerName,
		}
		if err := uow.Stores().CreateDetails(ctx, &audit); err != nil {
			return err
		}
		return uow.Stores().Create(ctx, &newStore)
	})
	if err != nil {
		logger.Error("create store failed", "error", err)
		return 0, err
	}
	logger.Info("store created", "store_id", newStore.ID)
	return newStore.ID, nil
}

// ResolveActiveStore picks the store to operate on: the preferred one
// when it belongs to the user, else the user's first store by creation
// order, else domain.ErrNoStore. It never guesses across users.
func (s *Service) ResolveActiveStore(ctx context.Context, userID, preferredStoreID uint) (uint, error) {
	stores, err := s.ListStores(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(stores) == 0 {
		return 0, domain.ErrNoStore
	}
	if preferredStoreID != 0 {
		for _, st := range stores {
			if st.ID == preferredStoreID {
				return st.ID, nil
			}
		}
	}
	return stores[0].ID, nil
}

// UserScope returns the explicit id-set of all stores the user owns,
// for reads that span every store. It is never a raw wildcard.
func (s *Service) UserScope(ctx context.Context, userID uint) (ledger.Scope, error) {
	stores, err := s.ListStores(ctx, userID)
	if err != nil {
		return ledger.Scope{}, err
	}
	ids := make([]uint, 0, len(stores))
	for _, st := range stores {
		ids = append(ids, st.ID)
	}
	return ledger.StoreSet(ids), nil
}
