// Package user implements registration, login and password recovery.
package user

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/storebook/storebook/pkg/domain"
	domuser "github.com/storebook/storebook/pkg/domain/user"
	"github.com/storebook/storebook/pkg/dto"
	"github.com/storebook/storebook/pkg/repository"
	"github.com/storebook/storebook/pkg/utils"
)

// Service manages user accounts. Passwords are stored as bcrypt hashes;
// login is a hash comparison, never a plaintext equality check.
type Service struct {
	uow      repository.UnitOfWork
	validate *validator.Validate
	logger   *slog.Logger
}

// New creates a user service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{
		uow:      uow,
		validate: validator.New(),
		logger:   logger,
	}
}

// Register creates a new account. A duplicate username surfaces as
// domain.ErrAlreadyExists so the caller can show a targeted message.
func (s *Service) Register(ctx context.Context, create dto.UserCreate) (*dto.UserRead, error) {
	logger := s.logger.With("username", create.Username)
	if err := s.validate.Struct(create); err != nil {
		logger.Warn("registration rejected", "error", err)
		return nil, domain.ValidationError("please fill all fields")
	}
	u, err := domuser.NewUser(create.Username, create.Password, create.Email, create.BirthDate)
	if err != nil {
		logger.Warn("registration rejected", "error", err)
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		return uow.Users().Create(ctx, u)
	})
	if err != nil {
		logger.Error("registration failed", "error", err)
		return nil, err
	}
	logger.Info("user registered", "user_id", u.ID)
	return &dto.UserRead{ID: u.ID, Username: u.Username, Email: u.Email, BirthDate: u.BirthDate}, nil
}

// Login checks credentials and returns the user. An unknown username
// and a wrong password are deliberately indistinguishable.
func (s *Service) Login(ctx context.Context, username, password string) (*dto.UserRead, error) {
	logger := s.logger.With("username", username)
	if username == "" || password == "" {
		return nil, domain.ValidationError("please enter username and password")
	}
	var u *domuser.User
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		u, err = uow.Users().GetByUsername(ctx, username)
		return err
	})
	if errors.Is(err, domain.ErrNotFound) {
		logger.Warn("login failed: unknown user")
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		logger.Error("login failed", "error", err)
		return nil, err
	}
	if !u.CheckPassword(password) {
		logger.Warn("login failed: wrong password")
		return nil, domain.ErrUnauthorized
	}
	logger.Info("login successful", "user_id", u.ID)
	return &dto.UserRead{ID: u.ID, Username: u.Username, Email: u.Email, BirthDate: u.BirthDate}, nil
}

// Recover looks up the recovery data (email, birth date) for a
// username. The caller verifies the birth date before allowing a reset.
func (s *Service) Recover(ctx context.Context, username string) (*dto.UserRead, error) {
	if username == "" {
		return nil, domain.ValidationError("please enter your username")
	}
	var u *domuser.User
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		u, err = uow.Users().GetByUsername(ctx, username)
		return err
	})
	if err != nil {
		s.logger.Warn("recovery lookup failed", "username", username, "error", err)
		return nil, err
	}
	return &dto.UserRead{ID: u.ID, Username: u.Username, Email: u.Email, BirthDate: u.BirthDate}, nil
}

// VerifyBirthDate checks the recovery answer for a username.
func (s *Service) VerifyBirthDate(ctx context.Context, username, birthDate string) (bool, error) {
	u, err := s.Recover(ctx, username)
	if err != nil {
		return false, err
	}
	return u.BirthDate == birthDate, nil
}

// ResetPassword re-validates the password policy and stores a new hash.
func (s *Service) ResetPassword(ctx context.Context, username, newPassword string) error {
	logger := s.logger.With("username", username)
	if err := utils.ValidatePassword(newPassword); err != nil {
		logger.Warn("password reset rejected", "error", err)
		return err
	}
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		return uow.Users().UpdatePassword(ctx, username, hash)
	})
	if err != nil {
		logger.Error("password reset failed", "error", err)
		return err
	}
	logger.Info("password reset")
	return nil
}
