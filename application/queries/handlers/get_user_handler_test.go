package handlers

import (
	"context"
	"encoding/json"
	"testing"

	"wayfarer-backend/application/caching"
	"wayfarer-backend/application/queries"
	"wayfarer-backend/domain/core/valueobjects"
	appErrors "wayfarer-backend/pkg/errors"
	"wayfarer-backend/tests/fixtures"
	"wayfarer-backend/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetUserHandler_MissPopulatesCache(t *testing.T) {
	repo := new(mocks.MockUserRepository)
	entityCache := newEntityCache(t)
	handler := NewGetUserHandler(repo, entityCache, zap.NewNop())
	ctx := context.Background()

	user := fixtures.NewUserBuilder().WithName("Aki").MustBuild()
	repo.On("GetByID", mock.Anything, user.ID()).Return(user, nil).Once()

	query := queries.GetUserQuery{UserID: user.ID().String()}

	view, err := handler.Handle(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, "Aki", view.Name)

	view, err = handler.Handle(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, "Aki", view.Name)
	repo.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestGetUserHandler_ViewNeverCarriesPasswordHash(t *testing.T) {
	repo := new(mocks.MockUserRepository)
	entityCache := newEntityCache(t)
	handler := NewGetUserHandler(repo, entityCache, zap.NewNop())

	user := fixtures.NewUserBuilder().MustBuild()
	repo.On("GetByID", mock.Anything, user.ID()).Return(user, nil)

	view, err := handler.Handle(context.Background(), queries.GetUserQuery{UserID: user.ID().String()})
	require.NoError(t, err)

	// The cached snapshot is the serialized view: whatever is not in the
	// view cannot leak from cache either
	data, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(data), user.PasswordHash())
}

func TestGetUserHandler_NotFound(t *testing.T) {
	repo := new(mocks.MockUserRepository)
	entityCache := newEntityCache(t)
	handler := NewGetUserHandler(repo, entityCache, zap.NewNop())

	id := valueobjects.NewUserID()
	repo.On("GetByID", mock.Anything, id).Return(nil, appErrors.NewNotFoundError("user"))

	_, err := handler.Handle(context.Background(), queries.GetUserQuery{UserID: id.String()})
	require.Error(t, err)
	assert.True(t, appErrors.IsNotFound(err))
}

func TestGetUserHandler_UsesUserKeyNamespace(t *testing.T) {
	repo := new(mocks.MockUserRepository)
	entityCache := newEntityCache(t)
	handler := NewGetUserHandler(repo, entityCache, zap.NewNop())
	ctx := context.Background()

	user := fixtures.NewUserBuilder().MustBuild()
	repo.On("GetByID", mock.Anything, user.ID()).Return(user, nil).Once()

	_, err := handler.Handle(ctx, queries.GetUserQuery{UserID: user.ID().String()})
	require.NoError(t, err)

	var cached queries.UserView
	assert.True(t, entityCache.GetEntity(ctx, caching.KindUser, user.ID().String(), &cached))
}
