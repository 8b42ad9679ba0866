package repository

import (
	"context"

	"github.com/storebook/storebook/pkg/domain"
	"github.com/storebook/storebook/pkg/domain/user"
	repo "github.com/storebook/storebook/pkg/repository"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository using the provided *gorm.DB.
func NewUserRepository(db *gorm.DB) repo.UserRepository {
	return &userRepository{db: db}
}

// Create implements repository.UserRepository. A duplicate username
// surfaces as domain.ErrAlreadyExists.
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	row := User{
		Username:  u.Username,
		Password:  u.Password,
		Email:     u.Email,
		BirthDate: u.BirthDate,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return MapGormErrorToDomain("create user", err)
	}
	u.ID = row.ID
	return nil
}

// Get implements repository.UserRepository.
func (r *userRepository) Get(ctx context.Context, id uint) (*user.User, error) {
	var row User
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, MapGormErrorToDomain("get user", err)
	}
	return mapUserModel(&row), nil
}

// GetByUsername implements repository.UserRepository.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	var row User
	if err := r.db.WithContext(ctx).First(&row, "username = ?", username).Error; err != nil {
		return nil, MapGormErrorToDomain("get user", err)
	}
	return mapUserModel(&row), nil
}

// UpdatePassword implements repository.UserRepository.
func (r *userRepository) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	res := r.db.WithContext(ctx).
		Model(&User{}).
		Where("username = ?", username).
		Update("password", passwordHash)
	if res.Error != nil {
		return MapGormErrorToDomain("update password", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count implements repository.UserRepository.
func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&User{}).Count(&n).Error; err != nil {
		return 0, MapGormErrorToDomain("count users", err)
	}
	return n, nil
}

func mapUserModel(row *User) *user.User {
	return &user.User{
		ID:        row.ID,
		Username:  row.Username,
		Email:     row.Email,
		Password:  row.Password,
		BirthDate: row.BirthDate,
	}
}
