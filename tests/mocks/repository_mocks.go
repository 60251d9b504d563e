// Package mocks provides testify mocks for the application's ports.
package mocks

import (
	"context"

	"wayfarer-backend/application/ports"
	"wayfarer-backend/domain/core/entities"
	"wayfarer-backend/domain/core/valueobjects"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a testify mock for ports.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Save(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id valueobjects.UserID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id valueobjects.UserID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockItineraryRepository is a testify mock for ports.ItineraryRepository
type MockItineraryRepository struct {
	mock.Mock
}

func (m *MockItineraryRepository) Save(ctx context.Context, itinerary *entities.Itinerary) error {
	args := m.Called(ctx, itinerary)
	return args.Error(0)
}

func (m *MockItineraryRepository) GetByID(ctx context.Context, id valueobjects.ItineraryID) (*entities.Itinerary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Itinerary), args.Error(1)
}

func (m *MockItineraryRepository) ListByUser(ctx context.Context, userID string, filter ports.ListFilter) ([]*entities.Itinerary, int, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entities.Itinerary), args.Int(1), args.Error(2)
}

func (m *MockItineraryRepository) ListPublic(ctx context.Context, filter ports.ListFilter) ([]*entities.Itinerary, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entities.Itinerary), args.Int(1), args.Error(2)
}

func (m *MockItineraryRepository) Delete(ctx context.Context, id valueobjects.ItineraryID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
