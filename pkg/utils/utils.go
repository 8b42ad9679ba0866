package utils

import (
	"net/mail"
	"strings"

	"github.com/storebook/storebook/pkg/domain"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plain password using bcrypt with cost 14.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

// CheckPasswordHash compares a plain password with a bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IsEmail returns true if the string is a valid email address.
func IsEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

const passwordSpecials = "!@#$%^&*"

// ValidateUsername enforces the registration policy: at least 4
// alphanumeric characters, nothing else.
func ValidateUsername(username string) error {
	if len(username) < 4 {
		return domain.ValidationError("username must be at least 4 alphanumeric characters")
	}
	for _, r := range username {
		if !isAlnum(r) {
			return domain.ValidationError("username must be at least 4 alphanumeric characters")
		}
	}
	return nil
}

// ValidatePassword enforces the registration policy: at least 5
// characters with 1 uppercase, 2 digits and 1 special character, drawn
// only from letters, digits and !@#$%^&*.
func ValidatePassword(password string) error {
	var upper, digits, specials int
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper++
		case r >= '0' && r <= '9':
			digits++
		case strings.ContainsRune(passwordSpecials, r):
			specials++
		case r >= 'a' && r <= 'z':
			// allowed, counts toward length only
		default:
			return passwordPolicyError()
		}
	}
	if len(password) < 5 || upper < 1 || digits < 2 || specials < 1 {
		return passwordPolicyError()
	}
	return nil
}

func passwordPolicyError() error {
	return domain.ValidationError(
		"password must be at least 5 characters with 1 uppercase, 2 numbers, and 1 special character")
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
