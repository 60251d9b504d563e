package ports

import (
	"context"

	"wayfarer-backend/domain/core/entities"
	"wayfarer-backend/domain/core/valueobjects"
)

// ListFilter carries every query parameter that affects the content or order
// of a paginated itinerary listing. It is used both for repository queries
// and as the input to cache key encoding, so the set of fields here defines
// the cache key space for list results.
type ListFilter struct {
	Page        int
	Limit       int
	Sort        string
	Status      string
	Visibility  string
	Search      string
	Destination string
}

// UserRepository defines the interface for user persistence
// This is a port in hexagonal architecture - the domain doesn't know about the implementation
type UserRepository interface {
	// Save persists a user (create or update)
	Save(ctx context.Context, user *entities.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id valueobjects.UserID) (*entities.User, error)

	// GetByEmail retrieves a user by email address ("" lookup is an error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	// Delete removes a user
	Delete(ctx context.Context, id valueobjects.UserID) error
}

// ItineraryRepository defines the interface for itinerary persistence
type ItineraryRepository interface {
	// Save persists an itinerary (create or update), including nested activities
	Save(ctx context.Context, itinerary *entities.Itinerary) error

	// GetByID retrieves an itinerary by ID
	GetByID(ctx context.Context, id valueobjects.ItineraryID) (*entities.Itinerary, error)

	// ListByUser retrieves a page of a user's itineraries matching the filter,
	// along with the total match count for pagination
	ListByUser(ctx context.Context, userID string, filter ListFilter) ([]*entities.Itinerary, int, error)

	// ListPublic retrieves a page of publicly visible itineraries matching the filter
	ListPublic(ctx context.Context, filter ListFilter) ([]*entities.Itinerary, int, error)

	// Delete removes an itinerary
	Delete(ctx context.Context, id valueobjects.ItineraryID) error
}
