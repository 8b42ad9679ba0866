// Package user holds the user entity and its creation rules.
package user

import (
	"github.com/storebook/storebook/pkg/domain"
	"github.com/storebook/storebook/pkg/utils"
)

// User represents a registered user. Password holds a bcrypt hash,
// never the plaintext.
type User struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"-"`
	BirthDate string `json:"birth_date"` // "2006-01-02"
}

// NewUser creates a User with a hashed password, enforcing the
// username and password policies.
func NewUser(username, password, email, birthDate string) (*User, error) {
	if err := utils.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := utils.ValidatePassword(password); err != nil {
		return nil, err
	}
	if !utils.IsEmail(email) {
		return nil, domain.ValidationError("please enter a valid email address")
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &User{
		Username:  username,
		Email:     email,
		Password:  hashed,
		BirthDate: birthDate,
	}, nil
}

// CheckPassword compares a plaintext candidate against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return utils.CheckPasswordHash(password, u.Password)
}
