package handlers

import (
	"context"
	"testing"

	"wayfarer-backend/application/caching"
	"wayfarer-backend/application/commands"
	"wayfarer-backend/domain/core/entities"
	appErrors "wayfarer-backend/pkg/errors"
	"wayfarer-backend/tests/fixtures"
	"wayfarer-backend/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAddActivityHandler_AppendsAndInvalidates(t *testing.T) {
	repo := new(mocks.MockItineraryRepository)
	caches := newCacheFixture(t)
	handler := NewAddActivityHandler(repo, caches.invalidator, zap.NewNop())
	ctx := context.Background()

	itinerary := fixtures.NewItineraryBuilder().WithUserID("user-1").MustBuild()
	itineraryID := itinerary.ID().String()
	caches.entities.CacheEntity(ctx, caching.KindItinerary, itineraryID, map[string]string{"id": itineraryID})

	repo.On("GetByID", mock.Anything, itinerary.ID()).Return(itinerary, nil)

	var saved *entities.Itinerary
	repo.On("Save", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*entities.Itinerary) }).
		Return(nil)

	activityID := uuid.New().String()
	require.NoError(t, handler.Handle(ctx, commands.AddActivityCommand{
		ItineraryID: itineraryID,
		UserID:      "user-1",
		ActivityID:  activityID,
		Name:        "Fushimi Inari hike",
		Location:    "Kyoto",
		Day:         2,
		StartTime:   "08:00",
		EndTime:     "11:00",
		Cost:        0,
	}))

	require.NotNil(t, saved)
	require.Len(t, saved.Activities(), 1)
	assert.Equal(t, activityID, saved.Activities()[0].ID)
	assert.Equal(t, "Fushimi Inari hike", saved.Activities()[0].Name)

	assert.False(t, caches.itineraryCached(ctx, itineraryID), "stale snapshot must be purged")
}

func TestAddActivityHandler_RejectsNonOwner(t *testing.T) {
	repo := new(mocks.MockItineraryRepository)
	caches := newCacheFixture(t)
	handler := NewAddActivityHandler(repo, caches.invalidator, zap.NewNop())

	itinerary := fixtures.NewItineraryBuilder().WithUserID("owner").MustBuild()
	repo.On("GetByID", mock.Anything, itinerary.ID()).Return(itinerary, nil)

	err := handler.Handle(context.Background(), commands.AddActivityCommand{
		ItineraryID: itinerary.ID().String(),
		UserID:      "intruder",
		ActivityID:  uuid.New().String(),
		Name:        "Sneaky stop",
		Day:         1,
	})

	require.Error(t, err)
	assert.True(t, appErrors.IsType(err, appErrors.ErrorTypeForbidden))
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAddActivityHandler_RejectsDayOutsideRange(t *testing.T) {
	repo := new(mocks.MockItineraryRepository)
	caches := newCacheFixture(t)
	handler := NewAddActivityHandler(repo, caches.invalidator, zap.NewNop())

	// Fixture range is July 1 to July 10, ten days
	itinerary := fixtures.NewItineraryBuilder().WithUserID("user-1").MustBuild()
	repo.On("GetByID", mock.Anything, itinerary.ID()).Return(itinerary, nil)

	err := handler.Handle(context.Background(), commands.AddActivityCommand{
		ItineraryID: itinerary.ID().String(),
		UserID:      "user-1",
		ActivityID:  uuid.New().String(),
		Name:        "Day trip",
		Day:         42,
	})

	require.Error(t, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRemoveActivityHandler_RemovesAndInvalidates(t *testing.T) {
	repo := new(mocks.MockItineraryRepository)
	caches := newCacheFixture(t)
	handler := NewRemoveActivityHandler(repo, caches.invalidator, zap.NewNop())
	ctx := context.Background()

	activityID := uuid.New().String()
	itinerary := fixtures.NewItineraryBuilder().
		WithUserID("user-1").
		WithActivity(entities.Activity{ID: activityID, Name: "Market visit", Day: 1}).
		MustBuild()
	repo.On("GetByID", mock.Anything, itinerary.ID()).Return(itinerary, nil)

	var saved *entities.Itinerary
	repo.On("Save", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*entities.Itinerary) }).
		Return(nil)

	require.NoError(t, handler.Handle(ctx, commands.RemoveActivityCommand{
		ItineraryID: itinerary.ID().String(),
		UserID:      "user-1",
		ActivityID:  activityID,
	}))

	require.NotNil(t, saved)
	assert.Empty(t, saved.Activities())
}

func TestRemoveActivityHandler_MissingActivity(t *testing.T) {
	repo := new(mocks.MockItineraryRepository)
	caches := newCacheFixture(t)
	handler := NewRemoveActivityHandler(repo, caches.invalidator, zap.NewNop())

	itinerary := fixtures.NewItineraryBuilder().WithUserID("user-1").MustBuild()
	repo.On("GetByID", mock.Anything, itinerary.ID()).Return(itinerary, nil)

	err := handler.Handle(context.Background(), commands.RemoveActivityCommand{
		ItineraryID: itinerary.ID().String(),
		UserID:      "user-1",
		ActivityID:  uuid.New().String(),
	})

	require.Error(t, err)
	assert.True(t, appErrors.IsNotFound(err))
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
