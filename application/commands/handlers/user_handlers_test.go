package handlers

import (
	"context"
	"testing"

	"wayfarer-backend/application/caching"
	"wayfarer-backend/application/commands"
	"wayfarer-backend/domain/core/entities"
	"wayfarer-backend/domain/core/valueobjects"
	appErrors "wayfarer-backend/pkg/errors"
	"wayfarer-backend/tests/fixtures"
	"wayfarer-backend/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRegisterUserHandler_NewEmail(t *testing.T) {
	repo := new(mocks.MockUserRepository)
	handler := NewRegisterUserHandler(repo, zap.NewNop())

	repo.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, appErrors.NewNotFoundError("user"))

	var saved *entities.User
	repo.On("Save", mock.Anything, mock.AnythingOfType("*entities.User")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*entities.User) }).
		Return(nil)

	cmd := commands.RegisterUserCommand{
		UserID:       valueobjects.NewUserID().String(),
		Email:        "new@example.com",
		Name:         "New Traveler",
		PasswordHash: "$2a$12$somethinghashed",
	}
	require.NoError(t, handler.Handle(context.Background(), cmd))

	require.NotNil(t, saved)
	assert.Equal(t, cmd.UserID, saved.ID().String())
	assert.Equal(t, "new@example.com", saved.Email())
	repo.AssertExpectations(t)
}

func TestRegisterUserHandler_DuplicateEmail(t *testing.T) {
	repo := new(mocks.MockUserRepository)
	handler := NewRegisterUserHandler(repo, zap.NewNop())

	existing := fixtures.NewUserBuilder().WithEmail("taken@example.com").MustBuild()
	repo.On("GetByEmail", mock.Anything, "taken@example.com").Return(existing, nil)

	err := handler.Handle(context.Background(), commands.RegisterUserCommand{
		UserID:       valueobjects.NewUserID().String(),
		Email:        "taken@example.com",
		Name:         "Impostor",
		PasswordHash: "$2a$12$somethinghashed",
	})

	require.Error(t, err)
	assert.True(t, appErrors.IsType(err, appErrors.ErrorTypeConflict))
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRegisterUserHandler_LookupFailure(t *testing.T) {
	repo := new(mocks.MockUserRepository)
	handler := NewRegisterUserHandler(repo, zap.NewNop())

	repo.On("GetByEmail", mock.Anything, mock.Anything).
		Return(nil, appErrors.NewDatabaseError("get user by email", assert.AnError))

	err := handler.Handle(context.Background(), commands.RegisterUserCommand{
		UserID:       valueobjects.NewUserID().String(),
		Email:        "any@example.com",
		Name:         "Anyone",
		PasswordHash: "$2a$12$somethinghashed",
	})

	require.Error(t, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdateUserProfileHandler_UpdatesAndInvalidates(t *testing.T) {
	repo := new(mocks.MockUserRepository)
	caches := newCacheFixture(t)
	handler := NewUpdateUserProfileHandler(repo, caches.invalidator, zap.NewNop())
	ctx := context.Background()

	user := fixtures.NewUserBuilder().WithName("Old Name").MustBuild()
	userID := user.ID().String()
	caches.entities.CacheEntity(ctx, caching.KindUser, userID, map[string]string{"id": userID})

	repo.On("GetByID", mock.Anything, user.ID()).Return(user, nil)

	var saved *entities.User
	repo.On("Save", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*entities.User) }).
		Return(nil)

	require.NoError(t, handler.Handle(ctx, commands.UpdateUserProfileCommand{
		UserID: userID,
		Name:   "New Name",
	}))

	require.NotNil(t, saved)
	assert.Equal(t, "New Name", saved.Name())

	var dest map[string]string
	assert.False(t, caches.entities.GetEntity(ctx, caching.KindUser, userID, &dest),
		"cached profile must be purged after the write")
}

func TestUpdateUserProfileHandler_UnknownUser(t *testing.T) {
	repo := new(mocks.MockUserRepository)
	caches := newCacheFixture(t)
	handler := NewUpdateUserProfileHandler(repo, caches.invalidator, zap.NewNop())

	id := valueobjects.NewUserID()
	repo.On("GetByID", mock.Anything, id).Return(nil, appErrors.NewNotFoundError("user"))

	err := handler.Handle(context.Background(), commands.UpdateUserProfileCommand{
		UserID: id.String(),
		Name:   "Anyone",
	})

	require.Error(t, err)
	assert.True(t, appErrors.IsNotFound(err))
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
