package handlers

import (
	"context"
	"testing"

	"wayfarer-backend/application/caching"
	"wayfarer-backend/application/queries"
	"wayfarer-backend/domain/core/valueobjects"
	"wayfarer-backend/infrastructure/cache"
	appErrors "wayfarer-backend/pkg/errors"
	"wayfarer-backend/tests/fixtures"
	"wayfarer-backend/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEntityCache(t *testing.T) *caching.EntityCache {
	t.Helper()
	store := cache.NewMemoryStore()
	t.Cleanup(func() { store.Close() })
	return caching.NewEntityCache(store, zap.NewNop())
}

func TestGetItineraryHandler_MissPopulatesCache(t *testing.T) {
	repo := new(mocks.MockItineraryRepository)
	entityCache := newEntityCache(t)
	handler := NewGetItineraryHandler(repo, entityCache, zap.NewNop())
	ctx := context.Background()

	itinerary := fixtures.NewItineraryBuilder().WithUserID("user-1").MustBuild()
	repo.On("GetByID", mock.Anything, itinerary.ID()).Return(itinerary, nil).Once()

	query := queries.GetItineraryQuery{ItineraryID: itinerary.ID().String(), RequesterID: "user-1"}

	view, err := handler.Handle(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, itinerary.Title(), view.Title)

	// Second read must come from cache without touching the repository
	view, err = handler.Handle(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, itinerary.Title(), view.Title)
	repo.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestGetItineraryHandler_CachedPrivateStillForbidden(t *testing.T) {
	repo := new(mocks.MockItineraryRepository)
	entityCache := newEntityCache(t)
	handler := NewGetItineraryHandler(repo, entityCache, zap.NewNop())
	ctx := context.Background()

	itinerary := fixtures.NewItineraryBuilder().WithUserID("owner").MustBuild()
	itineraryID := itinerary.ID().String()
	entityCache.CacheEntity(ctx, caching.KindItinerary, itineraryID, queries.ItineraryToView(itinerary))

	_, err := handler.Handle(ctx, queries.GetItineraryQuery{
		ItineraryID: itineraryID,
		RequesterID: "stranger",
	})

	require.Error(t, err)
	assert.True(t, appErrors.IsType(err, appErrors.ErrorTypeForbidden),
		"the access check must hold on cache hits too")
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestGetItineraryHandler_PublicReadableByAnyone(t *testing.T) {
	repo := new(mocks.MockItineraryRepository)
	entityCache := newEntityCache(t)
	handler := NewGetItineraryHandler(repo, entityCache, zap.NewNop())
	ctx := context.Background()

	itinerary := fixtures.NewItineraryBuilder().WithUserID("owner").Public().MustBuild()
	repo.On("GetByID", mock.Anything, itinerary.ID()).Return(itinerary, nil)

	view, err := handler.Handle(ctx, queries.GetItineraryQuery{
		ItineraryID: itinerary.ID().String(),
		RequesterID: "stranger",
	})

	require.NoError(t, err)
	assert.Equal(t, "owner", view.UserID)
}

func TestGetItineraryHandler_ForbiddenReadDoesNotPopulate(t *testing.T) {
	repo := new(mocks.MockItineraryRepository)
	entityCache := newEntityCache(t)
	handler := NewGetItineraryHandler(repo, entityCache, zap.NewNop())
	ctx := context.Background()

	itinerary := fixtures.NewItineraryBuilder().WithUserID("owner").MustBuild()
	repo.On("GetByID", mock.Anything, itinerary.ID()).Return(itinerary, nil)

	_, err := handler.Handle(ctx, queries.GetItineraryQuery{
		ItineraryID: itinerary.ID().String(),
		RequesterID: "stranger",
	})
	require.Error(t, err)

	// The rejected read returned before population, so the owner's read
	// still goes to the repository
	view, err := handler.Handle(ctx, queries.GetItineraryQuery{
		ItineraryID: itinerary.ID().String(),
		RequesterID: "owner",
	})
	require.NoError(t, err)
	assert.Equal(t, "owner", view.UserID)
	repo.AssertNumberOfCalls(t, "GetByID", 2)
}

func TestGetItineraryHandler_NotFound(t *testing.T) {
	repo := new(mocks.MockItineraryRepository)
	entityCache := newEntityCache(t)
	handler := NewGetItineraryHandler(repo, entityCache, zap.NewNop())

	id := valueobjects.NewItineraryID()
	repo.On("GetByID", mock.Anything, id).Return(nil, appErrors.NewNotFoundError("itinerary"))

	_, err := handler.Handle(context.Background(), queries.GetItineraryQuery{
		ItineraryID: id.String(),
		RequesterID: "user-1",
	})

	require.Error(t, err)
	assert.True(t, appErrors.IsNotFound(err))
}
