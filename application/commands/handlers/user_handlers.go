package handlers

import (
	"context"
	"fmt"

	"wayfarer-backend/application/caching"
	"wayfarer-backend/application/commands"
	"wayfarer-backend/application/ports"
	"wayfarer-backend/domain/core/entities"
	"wayfarer-backend/domain/core/valueobjects"
	appErrors "wayfarer-backend/pkg/errors"

	"go.uber.org/zap"
)

// RegisterUserHandler handles account creation
type RegisterUserHandler struct {
	userRepo ports.UserRepository
	logger   *zap.Logger
}

// NewRegisterUserHandler creates a new handler instance
func NewRegisterUserHandler(userRepo ports.UserRepository, logger *zap.Logger) *RegisterUserHandler {
	return &RegisterUserHandler{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Handle executes the register user command
func (h *RegisterUserHandler) Handle(ctx context.Context, cmd commands.RegisterUserCommand) error {
	id, err := valueobjects.NewUserIDFromString(cmd.UserID)
	if err != nil {
		return fmt.Errorf("invalid user ID: %w", err)
	}

	existing, err := h.userRepo.GetByEmail(ctx, cmd.Email)
	if err != nil && !appErrors.IsNotFound(err) {
		return err
	}
	if existing != nil {
		return appErrors.NewConflictError("email address is already registered")
	}

	user, err := entities.NewUserWithID(id, cmd.Email, cmd.Name, cmd.PasswordHash)
	if err != nil {
		return err
	}

	if err := h.userRepo.Save(ctx, user); err != nil {
		return err
	}

	h.logger.Info("user registered",
		zap.String("userID", cmd.UserID),
		zap.String("email", cmd.Email),
	)
	return nil
}

// UpdateUserProfileHandler handles profile changes
type UpdateUserProfileHandler struct {
	userRepo    ports.UserRepository
	invalidator *caching.Invalidator
	logger      *zap.Logger
}

// NewUpdateUserProfileHandler creates a new handler instance
func NewUpdateUserProfileHandler(
	userRepo ports.UserRepository,
	invalidator *caching.Invalidator,
	logger *zap.Logger,
) *UpdateUserProfileHandler {
	return &UpdateUserProfileHandler{
		userRepo:    userRepo,
		invalidator: invalidator,
		logger:      logger,
	}
}

// Handle executes the update profile command
func (h *UpdateUserProfileHandler) Handle(ctx context.Context, cmd commands.UpdateUserProfileCommand) error {
	id, err := valueobjects.NewUserIDFromString(cmd.UserID)
	if err != nil {
		return fmt.Errorf("invalid user ID: %w", err)
	}

	user, err := h.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := user.UpdateProfile(cmd.Name); err != nil {
		return err
	}

	if err := h.userRepo.Save(ctx, user); err != nil {
		return err
	}

	h.invalidator.OnUserChanged(ctx, cmd.UserID)

	h.logger.Info("user profile updated", zap.String("userID", cmd.UserID))
	return nil
}
