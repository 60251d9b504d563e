package handlers

import (
	"context"
	"fmt"

	"wayfarer-backend/application/caching"
	"wayfarer-backend/application/ports"
	"wayfarer-backend/application/queries"
	"wayfarer-backend/domain/core/valueobjects"

	"go.uber.org/zap"
)

// GetUserHandler serves profile reads through the entity cache
type GetUserHandler struct {
	userRepo ports.UserRepository
	cache    *caching.EntityCache
	logger   *zap.Logger
}

// NewGetUserHandler creates a new handler instance
func NewGetUserHandler(userRepo ports.UserRepository, cache *caching.EntityCache, logger *zap.Logger) *GetUserHandler {
	return &GetUserHandler{
		userRepo: userRepo,
		cache:    cache,
		logger:   logger,
	}
}

// Handle executes the get user query
func (h *GetUserHandler) Handle(ctx context.Context, query queries.GetUserQuery) (*queries.UserView, error) {
	var view queries.UserView
	if h.cache.GetEntity(ctx, caching.KindUser, query.UserID, &view) {
		return &view, nil
	}

	id, err := valueobjects.NewUserIDFromString(query.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	user, err := h.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view = queries.UserToView(user)
	h.cache.CacheEntity(ctx, caching.KindUser, query.UserID, view)
	return &view, nil
}
