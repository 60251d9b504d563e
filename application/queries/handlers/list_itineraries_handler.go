package handlers

import (
	"context"

	"wayfarer-backend/application/caching"
	"wayfarer-backend/application/ports"
	"wayfarer-backend/application/queries"
	"wayfarer-backend/domain/core/entities"
	"wayfarer-backend/pkg/common"

	"go.uber.org/zap"
)

// ListItinerariesHandler serves a user's itinerary listing through the
// query-result cache. The owner's ID is the cache scope, so every filter
// combination a user asks for lands under keys the invalidator can purge
// with a single pattern.
type ListItinerariesHandler struct {
	itineraryRepo ports.ItineraryRepository
	cache         *caching.QueryCache
	logger        *zap.Logger
}

// NewListItinerariesHandler creates a new handler instance
func NewListItinerariesHandler(
	itineraryRepo ports.ItineraryRepository,
	cache *caching.QueryCache,
	logger *zap.Logger,
) *ListItinerariesHandler {
	return &ListItinerariesHandler{
		itineraryRepo: itineraryRepo,
		cache:         cache,
		logger:        logger,
	}
}

// Handle executes the list itineraries query
func (h *ListItinerariesHandler) Handle(ctx context.Context, query queries.ListItinerariesQuery) (*queries.ItineraryListResult, error) {
	filter := normalizeFilter(query.Filter)

	var result queries.ItineraryListResult
	if h.cache.GetList(ctx, query.UserID, filter, &result) {
		return &result, nil
	}

	items, total, err := h.itineraryRepo.ListByUser(ctx, query.UserID, filter)
	if err != nil {
		return nil, err
	}

	result = buildListResult(items, filter, total)
	h.cache.CacheList(ctx, query.UserID, filter, result)
	return &result, nil
}

// ListPublicItinerariesHandler serves the shared public listing through the
// query-result cache under its own scope and shorter TTL.
type ListPublicItinerariesHandler struct {
	itineraryRepo ports.ItineraryRepository
	cache         *caching.QueryCache
	logger        *zap.Logger
}

// NewListPublicItinerariesHandler creates a new handler instance
func NewListPublicItinerariesHandler(
	itineraryRepo ports.ItineraryRepository,
	cache *caching.QueryCache,
	logger *zap.Logger,
) *ListPublicItinerariesHandler {
	return &ListPublicItinerariesHandler{
		itineraryRepo: itineraryRepo,
		cache:         cache,
		logger:        logger,
	}
}

// Handle executes the public listing query
func (h *ListPublicItinerariesHandler) Handle(ctx context.Context, query queries.ListPublicItinerariesQuery) (*queries.ItineraryListResult, error) {
	filter := normalizeFilter(query.Filter)
	// Visibility is fixed by the endpoint, never by the caller
	filter.Visibility = ""

	var result queries.ItineraryListResult
	if h.cache.GetList(ctx, caching.PublicScope, filter, &result) {
		return &result, nil
	}

	items, total, err := h.itineraryRepo.ListPublic(ctx, filter)
	if err != nil {
		return nil, err
	}

	result = buildListResult(items, filter, total)
	h.cache.CacheList(ctx, caching.PublicScope, filter, result)
	return &result, nil
}

// normalizeFilter clamps pagination so that equivalent requests share one
// cache key and one repository query shape
func normalizeFilter(f ports.ListFilter) ports.ListFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = common.DefaultLimit
	}
	if f.Limit > common.MaxLimit {
		f.Limit = common.MaxLimit
	}
	if f.Sort == "" {
		f.Sort = common.DefaultSort
	}
	return f
}

func buildListResult(items []*entities.Itinerary, filter ports.ListFilter, total int) queries.ItineraryListResult {
	views := make([]queries.ItineraryView, 0, len(items))
	for _, it := range items {
		views = append(views, queries.ItineraryToView(it))
	}
	return queries.ItineraryListResult{
		Items:      views,
		Pagination: common.BuildPaginationMeta(filter.Page, filter.Limit, total),
	}
}
