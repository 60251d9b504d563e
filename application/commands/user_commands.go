package commands

import "errors"

// RegisterUserCommand creates a new account. The password arrives already
// hashed; plaintext never crosses the application boundary.
type RegisterUserCommand struct {
	UserID       string `json:"user_id" validate:"required,uuid"`
	Email        string `json:"email" validate:"required,email"`
	Name         string `json:"name" validate:"required,min=1,max=100"`
	PasswordHash string `json:"-" validate:"required"`
}

// Validate validates the command
func (cmd RegisterUserCommand) Validate() error {
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if cmd.Email == "" {
		return errors.New("email is required")
	}
	if cmd.Name == "" {
		return errors.New("name is required")
	}
	if cmd.PasswordHash == "" {
		return errors.New("password hash is required")
	}
	return nil
}

// UpdateUserProfileCommand changes a user's profile fields
type UpdateUserProfileCommand struct {
	UserID string `json:"user_id" validate:"required"`
	Name   string `json:"name" validate:"required,min=1,max=100"`
}

// Validate validates the command
func (cmd UpdateUserProfileCommand) Validate() error {
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if cmd.Name == "" {
		return errors.New("name is required")
	}
	return nil
}
