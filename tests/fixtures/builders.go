// Package fixtures provides test data builders for domain entities.
package fixtures

import (
	"time"

	"wayfarer-backend/domain/core/entities"
	"wayfarer-backend/domain/core/valueobjects"
)

// ItineraryBuilder builds itineraries for tests
type ItineraryBuilder struct {
	id          valueobjects.ItineraryID
	userID      string
	title       string
	description string
	destination string
	start       time.Time
	end         time.Time
	visibility  entities.Visibility
	activities  []entities.Activity
}

// NewItineraryBuilder returns a builder with sensible defaults
func NewItineraryBuilder() *ItineraryBuilder {
	return &ItineraryBuilder{
		id:          valueobjects.NewItineraryID(),
		userID:      "user-1",
		title:       "Summer in Kyoto",
		description: "Temples and food",
		destination: "Kyoto",
		start:       time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		end:         time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
		visibility:  entities.VisibilityPrivate,
	}
}

func (b *ItineraryBuilder) WithID(id valueobjects.ItineraryID) *ItineraryBuilder {
	b.id = id
	return b
}

func (b *ItineraryBuilder) WithUserID(userID string) *ItineraryBuilder {
	b.userID = userID
	return b
}

func (b *ItineraryBuilder) WithTitle(title string) *ItineraryBuilder {
	b.title = title
	return b
}

func (b *ItineraryBuilder) WithDestination(destination string) *ItineraryBuilder {
	b.destination = destination
	return b
}

func (b *ItineraryBuilder) WithDates(start, end time.Time) *ItineraryBuilder {
	b.start = start
	b.end = end
	return b
}

func (b *ItineraryBuilder) Public() *ItineraryBuilder {
	b.visibility = entities.VisibilityPublic
	return b
}

func (b *ItineraryBuilder) WithActivity(a entities.Activity) *ItineraryBuilder {
	b.activities = append(b.activities, a)
	return b
}

// MustBuild builds the itinerary, panicking on invalid fixture data
func (b *ItineraryBuilder) MustBuild() *entities.Itinerary {
	dates, err := valueobjects.NewDateRange(b.start, b.end)
	if err != nil {
		panic(err)
	}
	it, err := entities.NewItineraryWithID(b.id, b.userID, b.title, b.description, b.destination, dates)
	if err != nil {
		panic(err)
	}
	if b.visibility == entities.VisibilityPublic {
		if err := it.SetVisibility(entities.VisibilityPublic); err != nil {
			panic(err)
		}
	}
	for _, a := range b.activities {
		if _, err := it.AddActivity(a); err != nil {
			panic(err)
		}
	}
	return it
}

// UserBuilder builds users for tests
type UserBuilder struct {
	id           valueobjects.UserID
	email        string
	name         string
	passwordHash string
}

// NewUserBuilder returns a builder with sensible defaults
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		id:           valueobjects.NewUserID(),
		email:        "traveler@example.com",
		name:         "Test Traveler",
		passwordHash: "$2a$12$fixturefixturefixturefixturefixturefixture",
	}
}

func (b *UserBuilder) WithID(id valueobjects.UserID) *UserBuilder {
	b.id = id
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

func (b *UserBuilder) WithPasswordHash(hash string) *UserBuilder {
	b.passwordHash = hash
	return b
}

// MustBuild builds the user, panicking on invalid fixture data
func (b *UserBuilder) MustBuild() *entities.User {
	u, err := entities.NewUserWithID(b.id, b.email, b.name, b.passwordHash)
	if err != nil {
		panic(err)
	}
	return u
}
