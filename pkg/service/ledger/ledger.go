// Package ledger implements the tenant-scoped CRUD operations over the
// five ledger record kinds.
package ledger

import (
	"context"
	"log/slog"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/storebook/storebook/pkg/domain"
	domledger "github.com/storebook/storebook/pkg/domain/ledger"
	"github.com/storebook/storebook/pkg/dto"
	"github.com/storebook/storebook/pkg/repository"
)

// Service is the only write path for ledger data. Every operation is
// one transaction; failures are classified into the domain error
// taxonomy at the repository boundary and surfaced as-is.
type Service struct {
	uow      repository.UnitOfWork
	validate *validator.Validate
	logger   *slog.Logger
}

// New creates a ledger service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{
		uow:      uow,
		validate: validator.New(),
		logger:   logger,
	}
}

// Insert validates and writes one ledger row scoped to storeID,
// returning the storage-assigned identifier.
func (s *Service) Insert(
	ctx context.Context,
	kind domledger.Kind,
	storeID uint,
	create dto.EntryCreate,
) (uint, error) {
	logger := s.logger.With("kind", kind, "store_id", storeID)
	if err := s.validateCreate(kind, create); err != nil {
		logger.Warn("insert rejected", "error", err)
		return 0, err
	}
	var id uint
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		id, err = uow.Entries().Insert(ctx, kind, storeID, create)
		return err
	})
	if err != nil {
		logger.Error("insert failed", "error", err)
		return 0, err
	}
	logger.Info("entry inserted", "id", id)
	return id, nil
}

// List returns the store's rows of the given kind in insertion order,
// optionally filtered by a substring over the kind's text columns.
func (s *Service) List(
	ctx context.Context,
	kind domledger.Kind,
	storeID uint,
	searchText string,
) ([]dto.EntryRead, error) {
	var rows []dto.EntryRead
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		rows, err = uow.Entries().List(ctx, kind, storeID, searchText)
		return err
	})
	if err != nil {
		s.logger.Error("list failed", "kind", kind, "store_id", storeID, "error", err)
		return nil, err
	}
	return rows, nil
}

// Update edits the row matching both recordID and storeID. Zero
// affected rows surface as domain.ErrNotFound; whether the id is
// unknown or owned by another store is not distinguishable.
func (s *Service) Update(
	ctx context.Context,
	kind domledger.Kind,
	storeID, recordID uint,
	update dto.EntryUpdate,
) error {
	logger := s.logger.With("kind", kind, "store_id", storeID, "id", recordID)
	if err := s.validateUpdate(update); err != nil {
		logger.Warn("update rejected", "error", err)
		return err
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		return uow.Entries().Update(ctx, kind, storeID, recordID, update)
	})
	if err != nil {
		logger.Warn("update failed", "error", err)
		return err
	}
	logger.Info("entry updated")
	return nil
}

// Delete removes the row matching both recordID and storeID, with the
// same NotFound semantics as Update.
func (s *Service) Delete(
	ctx context.Context,
	kind domledger.Kind,
	storeID, recordID uint,
) error {
	logger := s.logger.With("kind", kind, "store_id", storeID, "id", recordID)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		return uow.Entries().Delete(ctx, kind, storeID, recordID)
	})
	if err != nil {
		logger.Warn("delete failed", "error", err)
		return err
	}
	logger.Info("entry deleted")
	return nil
}

// validateCreate enforces the insert invariants: a present ISO date, a
// finite non-negative amount (rejected, never clamped) and the
// kind-specific required name.
func (s *Service) validateCreate(kind domledger.Kind, create dto.EntryCreate) error {
	if err := s.validate.Struct(create); err != nil {
		return domain.ValidationError("please enter a valid date (YYYY-MM-DD)")
	}
	if err := validateAmount(create.Amount); err != nil {
		return err
	}
	if kind.RequiresName() && create.Name == "" {
		return domain.ValidationError("please enter a name for the %s entry", kind)
	}
	return nil
}

func (s *Service) validateUpdate(update dto.EntryUpdate) error {
	if err := s.validate.Struct(update); err != nil {
		return domain.ValidationError("please enter a valid date (YYYY-MM-DD)")
	}
	if update.Amount != nil {
		if err := validateAmount(*update.Amount); err != nil {
			return err
		}
	}
	return nil
}

func validateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return domain.ValidationError("please enter a valid positive number for amount")
	}
	if amount < 0 {
		return domain.ValidationError("amount cannot be negative")
	}
	return nil
}
