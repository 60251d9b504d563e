package caching

import (
	"context"

	"go.uber.org/zap"
)

// Invalidator is the policy bound to every mutating operation: it knows every
// scope an entity can appear under and purges all of them synchronously
// before the mutation returns success. The guarantee is best-effort. If the
// store itself fails, the delete fails soft and the stale entry ages out at
// TTL; when both the write and the invalidation succeed, the next read cannot
// observe the old value from cache.
type Invalidator struct {
	entities *EntityCache
	lists    *QueryCache
	logger   *zap.Logger
}

// NewInvalidator creates an invalidation coordinator over both caches
func NewInvalidator(entities *EntityCache, lists *QueryCache, logger *zap.Logger) *Invalidator {
	return &Invalidator{
		entities: entities,
		lists:    lists,
		logger:   logger,
	}
}

// OnItineraryCreated purges the list scopes a brand-new itinerary may appear
// in: the owner's listing, plus the public listing when it is born public.
// There is no entity key to purge for a create.
func (inv *Invalidator) OnItineraryCreated(ctx context.Context, userID string, isPublic bool) {
	inv.lists.InvalidateScope(ctx, userID)
	if isPublic {
		inv.lists.InvalidateScope(ctx, PublicScope)
	}
	inv.logger.Debug("invalidated caches for itinerary create",
		zap.String("userID", userID),
		zap.Bool("public", isPublic),
	)
}

// OnItineraryUpdated purges the itinerary's entity key and every list scope
// the itinerary is or was visible under. Visibility transitions matter on
// both sides: a trip going private must drop the public pages it used to sit
// on, and one going public must drop the public pages it is about to join.
func (inv *Invalidator) OnItineraryUpdated(ctx context.Context, itineraryID, userID string, wasPublic, isPublic bool) {
	inv.entities.InvalidateEntity(ctx, KindItinerary, itineraryID)
	inv.lists.InvalidateScope(ctx, userID)
	if wasPublic || isPublic {
		inv.lists.InvalidateScope(ctx, PublicScope)
	}
	inv.logger.Debug("invalidated caches for itinerary update",
		zap.String("itineraryID", itineraryID),
		zap.String("userID", userID),
	)
}

// OnItineraryDeleted purges the same key set as an update
func (inv *Invalidator) OnItineraryDeleted(ctx context.Context, itineraryID, userID string, wasPublic bool) {
	inv.OnItineraryUpdated(ctx, itineraryID, userID, wasPublic, false)
}

// OnUserChanged purges a user's entity cache entry after a profile mutation
func (inv *Invalidator) OnUserChanged(ctx context.Context, userID string) {
	inv.entities.InvalidateEntity(ctx, KindUser, userID)
}

// OnUserDeleted purges everything cached for a departing user: the profile
// entry, their private listing, and the public listing their trips were on
func (inv *Invalidator) OnUserDeleted(ctx context.Context, userID string, hadPublicItineraries bool) {
	inv.entities.InvalidateEntity(ctx, KindUser, userID)
	inv.lists.InvalidateScope(ctx, userID)
	if hadPublicItineraries {
		inv.lists.InvalidateScope(ctx, PublicScope)
	}
}
