package domain

import (
	"errors"
	"strings"
)

var (
	ErrInvalidEmail = errors.New("email must contain '@'")
	ErrEmptyName    = errors.New("name is required")
	ErrEmptySurname = errors.New("surname is required")
	ErrWeakPassword = errors.New("password must be at least 6 characters")
)

// User is a vendor account. Accounts are immutable after registration apart
// from persistence metadata.
type User struct {
	ID           string
	Email        string
	Name         string
	Surname      string
	PasswordHash string
}

// NewUser validates and constructs a user without credentials; the caller is
// responsible for attaching a password hash before persisting.
func NewUser(email, name, surname string) (*User, error) {
	user := &User{
		Email:   strings.ToLower(strings.TrimSpace(email)),
		Name:    strings.TrimSpace(name),
		Surname: strings.TrimSpace(surname),
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate enforces registration invariants.
func (u *User) Validate() error {
	if !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	if u.Name == "" {
		return ErrEmptyName
	}
	if u.Surname == "" {
		return ErrEmptySurname
	}
	return nil
}

// ValidatePassword checks plaintext password strength before hashing.
func ValidatePassword(password string) error {
	if len(strings.TrimSpace(password)) < 6 {
		return ErrWeakPassword
	}
	return nil
}
