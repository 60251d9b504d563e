package handlers

import (
	"context"
	"fmt"

	"wayfarer-backend/application/caching"
	"wayfarer-backend/application/commands"
	"wayfarer-backend/application/ports"
	"wayfarer-backend/domain/core/valueobjects"
	appErrors "wayfarer-backend/pkg/errors"

	"go.uber.org/zap"
)

// DeleteItineraryHandler handles itinerary deletion
type DeleteItineraryHandler struct {
	itineraryRepo ports.ItineraryRepository
	invalidator   *caching.Invalidator
	logger        *zap.Logger
}

// NewDeleteItineraryHandler creates a new handler instance
func NewDeleteItineraryHandler(
	itineraryRepo ports.ItineraryRepository,
	invalidator *caching.Invalidator,
	logger *zap.Logger,
) *DeleteItineraryHandler {
	return &DeleteItineraryHandler{
		itineraryRepo: itineraryRepo,
		invalidator:   invalidator,
		logger:        logger,
	}
}

// Handle executes the delete itinerary command
func (h *DeleteItineraryHandler) Handle(ctx context.Context, cmd commands.DeleteItineraryCommand) error {
	id, err := valueobjects.NewItineraryIDFromString(cmd.ItineraryID)
	if err != nil {
		return fmt.Errorf("invalid itinerary ID: %w", err)
	}

	itinerary, err := h.itineraryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if itinerary.UserID() != cmd.UserID {
		return appErrors.NewForbiddenError("itinerary does not belong to user")
	}
	wasPublic := itinerary.IsPublic()

	if err := h.itineraryRepo.Delete(ctx, id); err != nil {
		return err
	}

	h.invalidator.OnItineraryDeleted(ctx, cmd.ItineraryID, cmd.UserID, wasPublic)

	h.logger.Info("itinerary deleted",
		zap.String("itineraryID", cmd.ItineraryID),
		zap.String("userID", cmd.UserID),
	)
	return nil
}
