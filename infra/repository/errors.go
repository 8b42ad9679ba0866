package repository

import (
	"errors"

	"github.com/storebook/storebook/pkg/domain"
	"gorm.io/gorm"
)

// MapGormErrorToDomain converts GORM errors to domain errors so that
// infrastructure concerns stay within the infrastructure layer. It
// traverses the error chain and classifies each level; anything left
// unclassified is surfaced as a StorageError for the given operation.
func MapGormErrorToDomain(op string, err error) error {
	if err == nil {
		return nil
	}

	currentErr := err
	for currentErr != nil {
		switch {
		case errors.Is(currentErr, gorm.ErrDuplicatedKey):
			return domain.ErrAlreadyExists
		case errors.Is(currentErr, gorm.ErrRecordNotFound):
			return domain.ErrNotFound
		}
		currentErr = errors.Unwrap(currentErr)
	}

	return domain.NewStorageError(op, err)
}
