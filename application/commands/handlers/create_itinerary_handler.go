package handlers

import (
	"context"
	"fmt"

	"wayfarer-backend/application/caching"
	"wayfarer-backend/application/commands"
	"wayfarer-backend/application/ports"
	"wayfarer-backend/domain/core/entities"
	"wayfarer-backend/domain/core/valueobjects"
	"wayfarer-backend/pkg/utils"

	"go.uber.org/zap"
)

// CreateItineraryHandler handles itinerary creation
type CreateItineraryHandler struct {
	itineraryRepo ports.ItineraryRepository
	invalidator   *caching.Invalidator
	logger        *zap.Logger
}

// NewCreateItineraryHandler creates a new handler instance
func NewCreateItineraryHandler(
	itineraryRepo ports.ItineraryRepository,
	invalidator *caching.Invalidator,
	logger *zap.Logger,
) *CreateItineraryHandler {
	return &CreateItineraryHandler{
		itineraryRepo: itineraryRepo,
		invalidator:   invalidator,
		logger:        logger,
	}
}

// Handle executes the create itinerary command
func (h *CreateItineraryHandler) Handle(ctx context.Context, cmd commands.CreateItineraryCommand) error {
	id, err := valueobjects.NewItineraryIDFromString(cmd.ItineraryID)
	if err != nil {
		return fmt.Errorf("invalid itinerary ID: %w", err)
	}

	start, err := utils.ParseDate(cmd.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}
	end, err := utils.ParseDate(cmd.EndDate)
	if err != nil {
		return fmt.Errorf("invalid end date: %w", err)
	}
	dates, err := valueobjects.NewDateRange(start, end)
	if err != nil {
		return err
	}

	itinerary, err := entities.NewItineraryWithID(id, cmd.UserID, cmd.Title, cmd.Description, cmd.Destination, dates)
	if err != nil {
		return err
	}

	if cmd.Visibility != "" {
		if err := itinerary.SetVisibility(entities.Visibility(cmd.Visibility)); err != nil {
			return err
		}
	}

	if err := h.itineraryRepo.Save(ctx, itinerary); err != nil {
		return err
	}

	// Purge list caches only after the write is durable, so a client that
	// saw the success response cannot read a stale listing from cache
	h.invalidator.OnItineraryCreated(ctx, cmd.UserID, itinerary.IsPublic())

	h.logger.Info("itinerary created",
		zap.String("itineraryID", cmd.ItineraryID),
		zap.String("userID", cmd.UserID),
		zap.String("destination", cmd.Destination),
	)
	return nil
}
