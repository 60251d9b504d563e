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
	"wayfarer-backend/pkg/utils"

	"go.uber.org/zap"
)

// UpdateItineraryHandler handles partial updates to an itinerary
type UpdateItineraryHandler struct {
	itineraryRepo ports.ItineraryRepository
	invalidator   *caching.Invalidator
	logger        *zap.Logger
}

// NewUpdateItineraryHandler creates a new handler instance
func NewUpdateItineraryHandler(
	itineraryRepo ports.ItineraryRepository,
	invalidator *caching.Invalidator,
	logger *zap.Logger,
) *UpdateItineraryHandler {
	return &UpdateItineraryHandler{
		itineraryRepo: itineraryRepo,
		invalidator:   invalidator,
		logger:        logger,
	}
}

// Handle executes the update itinerary command
func (h *UpdateItineraryHandler) Handle(ctx context.Context, cmd commands.UpdateItineraryCommand) error {
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

	// Visibility before the mutation decides whether public listings need purging
	wasPublic := itinerary.IsPublic()

	title := itinerary.Title()
	if cmd.Title != nil {
		title = *cmd.Title
	}
	description := itinerary.Description()
	if cmd.Description != nil {
		description = *cmd.Description
	}
	destination := itinerary.Destination()
	if cmd.Destination != nil {
		destination = *cmd.Destination
	}
	dates := itinerary.Dates()
	if cmd.StartDate != nil && cmd.EndDate != nil {
		start, err := utils.ParseDate(*cmd.StartDate)
		if err != nil {
			return fmt.Errorf("invalid start date: %w", err)
		}
		end, err := utils.ParseDate(*cmd.EndDate)
		if err != nil {
			return fmt.Errorf("invalid end date: %w", err)
		}
		dates, err = valueobjects.NewDateRange(start, end)
		if err != nil {
			return err
		}
	}

	if err := itinerary.UpdateDetails(title, description, destination, dates); err != nil {
		return err
	}
	if cmd.Status != nil {
		if err := itinerary.ChangeStatus(entities.ItineraryStatus(*cmd.Status)); err != nil {
			return err
		}
	}
	if cmd.Visibility != nil {
		if err := itinerary.SetVisibility(entities.Visibility(*cmd.Visibility)); err != nil {
			return err
		}
	}

	if err := h.itineraryRepo.Save(ctx, itinerary); err != nil {
		return err
	}

	h.invalidator.OnItineraryUpdated(ctx, cmd.ItineraryID, cmd.UserID, wasPublic, itinerary.IsPublic())

	h.logger.Info("itinerary updated",
		zap.String("itineraryID", cmd.ItineraryID),
		zap.String("userID", cmd.UserID),
	)
	return nil
}
