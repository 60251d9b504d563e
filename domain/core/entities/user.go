package entities

import (
	"strings"
	"time"

	"wayfarer-backend/domain/core/valueobjects"
	pkgerrors "wayfarer-backend/pkg/errors"
)

// User is the account entity. The password is only ever held as a hash;
// the plaintext never reaches the domain layer.
type User struct {
	id           valueobjects.UserID
	email        string
	name         string
	passwordHash string
	createdAt    time.Time
	updatedAt    time.Time
	version      int
}

// NewUser creates a new user with business rule validation
func NewUser(email, name, passwordHash string) (*User, error) {
	return NewUserWithID(valueobjects.NewUserID(), email, name, passwordHash)
}

// NewUserWithID creates a new user under a caller-supplied ID
func NewUserWithID(id valueobjects.UserID, email, name, passwordHash string) (*User, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("user ID cannot be empty")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, pkgerrors.NewValidationError("email cannot be empty")
	}
	if name = strings.TrimSpace(name); name == "" {
		return nil, pkgerrors.NewValidationError("name cannot be empty")
	}
	if passwordHash == "" {
		return nil, pkgerrors.NewValidationError("password hash cannot be empty")
	}

	now := time.Now().UTC()
	return &User{
		id:           id,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		createdAt:    now,
		updatedAt:    now,
		version:      1,
	}, nil
}

// ReconstructUser rebuilds a user from repository data with preserved timestamps
func ReconstructUser(
	id valueobjects.UserID,
	email, name, passwordHash string,
	createdAt, updatedAt time.Time,
	version int,
) *User {
	return &User{
		id:           id,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		version:      version,
	}
}

func (u *User) ID() valueobjects.UserID { return u.id }
func (u *User) Email() string           { return u.email }
func (u *User) Name() string            { return u.name }
func (u *User) PasswordHash() string    { return u.passwordHash }
func (u *User) CreatedAt() time.Time    { return u.createdAt }
func (u *User) UpdatedAt() time.Time    { return u.updatedAt }
func (u *User) Version() int            { return u.version }

// UpdateProfile changes the user's display name
func (u *User) UpdateProfile(name string) error {
	if name = strings.TrimSpace(name); name == "" {
		return pkgerrors.NewValidationError("name cannot be empty")
	}
	u.name = name
	u.touch()
	return nil
}

// ChangePassword replaces the stored password hash
func (u *User) ChangePassword(passwordHash string) error {
	if passwordHash == "" {
		return pkgerrors.NewValidationError("password hash cannot be empty")
	}
	u.passwordHash = passwordHash
	u.touch()
	return nil
}

func (u *User) touch() {
	u.updatedAt = time.Now().UTC()
	u.version++
}
