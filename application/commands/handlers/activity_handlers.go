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

// AddActivityHandler appends an activity to an itinerary
type AddActivityHandler struct {
	itineraryRepo ports.ItineraryRepository
	invalidator   *caching.Invalidator
	logger        *zap.Logger
}

// NewAddActivityHandler creates a new handler instance
func NewAddActivityHandler(
	itineraryRepo ports.ItineraryRepository,
	invalidator *caching.Invalidator,
	logger *zap.Logger,
) *AddActivityHandler {
	return &AddActivityHandler{
		itineraryRepo: itineraryRepo,
		invalidator:   invalidator,
		logger:        logger,
	}
}

// Handle executes the add activity command
func (h *AddActivityHandler) Handle(ctx context.Context, cmd commands.AddActivityCommand) error {
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

	activity := entities.Activity{
		ID:        cmd.ActivityID,
		Name:      cmd.Name,
		Location:  cmd.Location,
		Day:       cmd.Day,
		StartTime: cmd.StartTime,
		EndTime:   cmd.EndTime,
		Notes:     cmd.Notes,
		Cost:      cmd.Cost,
	}
	if _, err := itinerary.AddActivity(activity); err != nil {
		return err
	}

	if err := h.itineraryRepo.Save(ctx, itinerary); err != nil {
		return err
	}

	h.invalidator.OnItineraryUpdated(ctx, cmd.ItineraryID, cmd.UserID, wasPublic, itinerary.IsPublic())

	h.logger.Info("activity added",
		zap.String("itineraryID", cmd.ItineraryID),
		zap.String("activityID", cmd.ActivityID),
	)
	return nil
}

// RemoveActivityHandler removes an activity from an itinerary
type RemoveActivityHandler struct {
	itineraryRepo ports.ItineraryRepository
	invalidator   *caching.Invalidator
	logger        *zap.Logger
}

// NewRemoveActivityHandler creates a new handler instance
func NewRemoveActivityHandler(
	itineraryRepo ports.ItineraryRepository,
	invalidator *caching.Invalidator,
	logger *zap.Logger,
) *RemoveActivityHandler {
	return &RemoveActivityHandler{
		itineraryRepo: itineraryRepo,
		invalidator:   invalidator,
		logger:        logger,
	}
}

// Handle executes the remove activity command
func (h *RemoveActivityHandler) Handle(ctx context.Context, cmd commands.RemoveActivityCommand) error {
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

	if err := itinerary.RemoveActivity(cmd.ActivityID); err != nil {
		return err
	}

	if err := h.itineraryRepo.Save(ctx, itinerary); err != nil {
		return err
	}

	h.invalidator.OnItineraryUpdated(ctx, cmd.ItineraryID, cmd.UserID, wasPublic, itinerary.IsPublic())

	h.logger.Info("activity removed",
		zap.String("itineraryID", cmd.ItineraryID),
		zap.String("activityID", cmd.ActivityID),
	)
	return nil
}
