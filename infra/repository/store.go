package repository

import (
	"context"

	"github.com/storebook/storebook/pkg/domain/store"
	"github.com/storebook/storebook/pkg/dto"
	repo "github.com/storebook/storebook/pkg/repository"
	"gorm.io/gorm"
)

type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository creates a new store repository using the provided *gorm.DB.
func NewStoreRepository(db *gorm.DB) repo.StoreRepository {
	return &storeRepository{db: db}
}

// Create implements repository.StoreRepository.
func (r *storeRepository) Create(ctx context.Context, s *store.Store) error {
	row := Store{UserID: s.UserID, StoreName: s.StoreName}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return MapGormErrorToDomain("create store", err)
	}
	s.ID = row.ID
	return nil
}

// CreateDetails implements repository.StoreRepository.
func (r *storeRepository) CreateDetails(ctx context.Context, d *store.Details) error {
	row := StoreDetails{
		Username:  d.Username,
		StoreName: d.StoreName,
		StoreType: d.StoreType,
		OwnerName: d.OwnerName,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return MapGormErrorToDomain("create store details", err)
	}
	d.ID = row.ID
	return nil
}

// ListByUser implements repository.StoreRepository, ordered by creation
// (id ascending). A user with no stores gets an empty slice.
func (r *storeRepository) ListByUser(ctx context.Context, userID uint) ([]dto.StoreRead, error) {
	var rows []Store
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&rows).Error; err != nil {
		return nil, MapGormErrorToDomain("list stores", err)
	}
	result := make([]dto.StoreRead, 0, len(rows))
	for i := range rows {
		result = append(result, dto.StoreRead{
			ID:        rows[i].ID,
			UserID:    rows[i].UserID,
			StoreName: rows[i].StoreName,
		})
	}
	return result, nil
}

// Get implements repository.StoreRepository.
func (r *storeRepository) Get(ctx context.Context, id uint) (*store.Store, error) {
	var row Store
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, MapGormErrorToDomain("get store", err)
	}
	return &store.Store{ID: row.ID, UserID: row.UserID, StoreName: row.StoreName}, nil
}
