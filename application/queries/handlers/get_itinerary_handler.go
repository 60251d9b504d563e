package handlers

import (
	"context"
	"fmt"

	"wayfarer-backend/application/caching"
	"wayfarer-backend/application/ports"
	"wayfarer-backend/application/queries"
	"wayfarer-backend/domain/core/valueobjects"
	appErrors "wayfarer-backend/pkg/errors"

	"go.uber.org/zap"
)

// GetItineraryHandler serves single-itinerary reads through the entity cache
type GetItineraryHandler struct {
	itineraryRepo ports.ItineraryRepository
	cache         *caching.EntityCache
	logger        *zap.Logger
}

// NewGetItineraryHandler creates a new handler instance
func NewGetItineraryHandler(
	itineraryRepo ports.ItineraryRepository,
	cache *caching.EntityCache,
	logger *zap.Logger,
) *GetItineraryHandler {
	return &GetItineraryHandler{
		itineraryRepo: itineraryRepo,
		cache:         cache,
		logger:        logger,
	}
}

// Handle executes the get itinerary query. The cached snapshot carries owner
// and visibility, so the access check runs the same way on a hit as on a miss.
func (h *GetItineraryHandler) Handle(ctx context.Context, query queries.GetItineraryQuery) (*queries.ItineraryView, error) {
	var view queries.ItineraryView
	if h.cache.GetEntity(ctx, caching.KindItinerary, query.ItineraryID, &view) {
		if err := authorizeRead(view, query.RequesterID); err != nil {
			return nil, err
		}
		return &view, nil
	}

	id, err := valueobjects.NewItineraryIDFromString(query.ItineraryID)
	if err != nil {
		return nil, fmt.Errorf("invalid itinerary ID: %w", err)
	}

	itinerary, err := h.itineraryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view = queries.ItineraryToView(itinerary)
	if err := authorizeRead(view, query.RequesterID); err != nil {
		return nil, err
	}

	h.cache.CacheEntity(ctx, caching.KindItinerary, query.ItineraryID, view)
	return &view, nil
}

func authorizeRead(view queries.ItineraryView, requesterID string) error {
	if view.UserID == requesterID || view.IsPublic() {
		return nil
	}
	return appErrors.NewForbiddenError("itinerary does not belong to user")
}
