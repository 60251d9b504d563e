// Package integration wires real caches and handlers over an in-memory
// store to exercise full read-through / write-invalidate cycles.
package integration

import (
	"context"
	"sort"
	"testing"

	"wayfarer-backend/application/caching"
	"wayfarer-backend/application/commands"
	cmdhandlers "wayfarer-backend/application/commands/handlers"
	"wayfarer-backend/application/ports"
	"wayfarer-backend/application/queries"
	qryhandlers "wayfarer-backend/application/queries/handlers"
	"wayfarer-backend/domain/core/entities"
	"wayfarer-backend/domain/core/valueobjects"
	"wayfarer-backend/infrastructure/cache"
	appErrors "wayfarer-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeItineraryRepo is a map-backed repository standing in for DynamoDB.
// It counts reads so tests can tell a cache hit from a pass-through.
type fakeItineraryRepo struct {
	items map[string]*entities.Itinerary

	getCalls        int
	listUserCalls   int
	listPublicCalls int
}

func newFakeItineraryRepo() *fakeItineraryRepo {
	return &fakeItineraryRepo{items: make(map[string]*entities.Itinerary)}
}

func (r *fakeItineraryRepo) Save(_ context.Context, it *entities.Itinerary) error {
	r.items[it.ID().String()] = it
	return nil
}

func (r *fakeItineraryRepo) GetByID(_ context.Context, id valueobjects.ItineraryID) (*entities.Itinerary, error) {
	r.getCalls++
	it, ok := r.items[id.String()]
	if !ok {
		return nil, appErrors.NewNotFoundError("itinerary")
	}
	return it, nil
}

func (r *fakeItineraryRepo) ListByUser(_ context.Context, userID string, _ ports.ListFilter) ([]*entities.Itinerary, int, error) {
	r.listUserCalls++
	var out []*entities.Itinerary
	for _, it := range r.items {
		if it.UserID() == userID {
			out = append(out, it)
		}
	}
	sortByID(out)
	return out, len(out), nil
}

func (r *fakeItineraryRepo) ListPublic(_ context.Context, _ ports.ListFilter) ([]*entities.Itinerary, int, error) {
	r.listPublicCalls++
	var out []*entities.Itinerary
	for _, it := range r.items {
		if it.IsPublic() {
			out = append(out, it)
		}
	}
	sortByID(out)
	return out, len(out), nil
}

func (r *fakeItineraryRepo) Delete(_ context.Context, id valueobjects.ItineraryID) error {
	delete(r.items, id.String())
	return nil
}

func sortByID(items []*entities.Itinerary) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].ID().String() < items[j].ID().String()
	})
}

type stack struct {
	repo *fakeItineraryRepo

	create *cmdhandlers.CreateItineraryHandler
	update *cmdhandlers.UpdateItineraryHandler
	del    *cmdhandlers.DeleteItineraryHandler
	get    *qryhandlers.GetItineraryHandler
	list   *qryhandlers.ListItinerariesHandler
	public *qryhandlers.ListPublicItinerariesHandler
}

func newStack(t *testing.T, store ports.KeyValueStore) *stack {
	t.Helper()
	logger := zap.NewNop()

	repo := newFakeItineraryRepo()
	ec := caching.NewEntityCache(store, logger)
	qc := caching.NewQueryCache(store, logger)
	inv := caching.NewInvalidator(ec, qc, logger)

	return &stack{
		repo:   repo,
		create: cmdhandlers.NewCreateItineraryHandler(repo, inv, logger),
		update: cmdhandlers.NewUpdateItineraryHandler(repo, inv, logger),
		del:    cmdhandlers.NewDeleteItineraryHandler(repo, inv, logger),
		get:    qryhandlers.NewGetItineraryHandler(repo, ec, logger),
		list:   qryhandlers.NewListItinerariesHandler(repo, qc, logger),
		public: qryhandlers.NewListPublicItinerariesHandler(repo, qc, logger),
	}
}

func TestItineraryReadThroughWriteInvalidateCycle(t *testing.T) {
	store := cache.NewMemoryStore()
	defer store.Close()
	s := newStack(t, store)
	ctx := context.Background()

	itineraryID := valueobjects.NewItineraryID()

	require.NoError(t, s.create.Handle(ctx, commands.CreateItineraryCommand{
		ItineraryID: itineraryID.String(),
		UserID:      "user-1",
		Title:       "Original",
		Destination: "Kyoto",
		StartDate:   "2026-07-01",
		EndDate:     "2026-07-10",
	}))

	listQuery := queries.ListItinerariesQuery{UserID: "user-1"}

	// First list is a miss, second a hit
	result, err := s.list.Handle(ctx, listQuery)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Original", result.Items[0].Title)

	_, err = s.list.Handle(ctx, listQuery)
	require.NoError(t, err)
	assert.Equal(t, 1, s.repo.listUserCalls)

	// Same for the single read
	getQuery := queries.GetItineraryQuery{ItineraryID: itineraryID.String(), RequesterID: "user-1"}
	view, err := s.get.Handle(ctx, getQuery)
	require.NoError(t, err)
	assert.Equal(t, "Original", view.Title)

	_, err = s.get.Handle(ctx, getQuery)
	require.NoError(t, err)
	assert.Equal(t, 1, s.repo.getCalls)

	// Update purges entity and list entries synchronously
	newTitle := "Renamed"
	require.NoError(t, s.update.Handle(ctx, commands.UpdateItineraryCommand{
		ItineraryID: itineraryID.String(),
		UserID:      "user-1",
		Title:       &newTitle,
	}))

	view, err = s.get.Handle(ctx, getQuery)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", view.Title, "read after update must not see the stale snapshot")

	result, err = s.list.Handle(ctx, listQuery)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", result.Items[0].Title)
}

func TestVisibilityTransitionPurgesPublicListing(t *testing.T) {
	store := cache.NewMemoryStore()
	defer store.Close()
	s := newStack(t, store)
	ctx := context.Background()

	itineraryID := valueobjects.NewItineraryID()

	require.NoError(t, s.create.Handle(ctx, commands.CreateItineraryCommand{
		ItineraryID: itineraryID.String(),
		UserID:      "user-1",
		Title:       "Shared trip",
		Destination: "Lisbon",
		StartDate:   "2026-09-01",
		EndDate:     "2026-09-05",
		Visibility:  "public",
	}))

	publicQuery := queries.ListPublicItinerariesQuery{}

	result, err := s.public.Handle(ctx, publicQuery)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)

	// Cached now
	_, err = s.public.Handle(ctx, publicQuery)
	require.NoError(t, err)
	assert.Equal(t, 1, s.repo.listPublicCalls)

	// Going private must purge the public pages the trip used to sit on
	visibility := "private"
	require.NoError(t, s.update.Handle(ctx, commands.UpdateItineraryCommand{
		ItineraryID: itineraryID.String(),
		UserID:      "user-1",
		Visibility:  &visibility,
	}))

	result, err = s.public.Handle(ctx, publicQuery)
	require.NoError(t, err)
	assert.Empty(t, result.Items, "a private trip cannot linger on cached public pages")
	assert.Equal(t, 2, s.repo.listPublicCalls)
}

func TestActivityMutationRefreshesCachedSnapshot(t *testing.T) {
	store := cache.NewMemoryStore()
	defer store.Close()
	s := newStack(t, store)
	logger := zap.NewNop()
	addActivity := cmdhandlers.NewAddActivityHandler(s.repo,
		caching.NewInvalidator(
			caching.NewEntityCache(store, logger),
			caching.NewQueryCache(store, logger),
			logger,
		), logger)
	ctx := context.Background()

	itineraryID := valueobjects.NewItineraryID()
	require.NoError(t, s.create.Handle(ctx, commands.CreateItineraryCommand{
		ItineraryID: itineraryID.String(),
		UserID:      "user-1",
		Title:       "With stops",
		Destination: "Rome",
		StartDate:   "2026-05-01",
		EndDate:     "2026-05-07",
	}))

	getQuery := queries.GetItineraryQuery{ItineraryID: itineraryID.String(), RequesterID: "user-1"}
	view, err := s.get.Handle(ctx, getQuery)
	require.NoError(t, err)
	assert.Empty(t, view.Activities)

	require.NoError(t, addActivity.Handle(ctx, commands.AddActivityCommand{
		ItineraryID: itineraryID.String(),
		UserID:      "user-1",
		ActivityID:  valueobjects.NewItineraryID().String(),
		Name:        "Colosseum tour",
		Day:         1,
	}))

	view, err = s.get.Handle(ctx, getQuery)
	require.NoError(t, err)
	require.Len(t, view.Activities, 1)
	assert.Equal(t, "Colosseum tour", view.Activities[0].Name)
}

func TestFullCycleOnNoopStoreStaysCorrect(t *testing.T) {
	s := newStack(t, cache.NewNoopStore())
	ctx := context.Background()

	itineraryID := valueobjects.NewItineraryID()

	require.NoError(t, s.create.Handle(ctx, commands.CreateItineraryCommand{
		ItineraryID: itineraryID.String(),
		UserID:      "user-1",
		Title:       "Degraded mode",
		Destination: "Oslo",
		StartDate:   "2026-10-01",
		EndDate:     "2026-10-03",
	}))

	getQuery := queries.GetItineraryQuery{ItineraryID: itineraryID.String(), RequesterID: "user-1"}

	// Every read goes to the repository; behavior is identical, only slower
	_, err := s.get.Handle(ctx, getQuery)
	require.NoError(t, err)
	_, err = s.get.Handle(ctx, getQuery)
	require.NoError(t, err)
	assert.Equal(t, 2, s.repo.getCalls)

	require.NoError(t, s.del.Handle(ctx, commands.DeleteItineraryCommand{
		ItineraryID: itineraryID.String(),
		UserID:      "user-1",
	}))

	_, err = s.get.Handle(ctx, getQuery)
	require.Error(t, err)
	assert.True(t, appErrors.IsNotFound(err))
}
