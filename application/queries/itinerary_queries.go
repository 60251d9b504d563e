package queries

import (
	"errors"

	"wayfarer-backend/application/ports"
)

// GetItineraryQuery fetches a single itinerary. RequesterID may differ from
// the owner; access is granted when the itinerary is public.
type GetItineraryQuery struct {
	ItineraryID string `json:"itinerary_id" validate:"required,uuid"`
	RequesterID string `json:"requester_id"`
}

// Validate validates the query
func (q GetItineraryQuery) Validate() error {
	if q.ItineraryID == "" {
		return errors.New("itinerary ID is required")
	}
	return nil
}

// ListItinerariesQuery fetches a page of the requesting user's itineraries
type ListItinerariesQuery struct {
	UserID string           `json:"user_id" validate:"required"`
	Filter ports.ListFilter `json:"filter"`
}

// Validate validates the query
func (q ListItinerariesQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	return nil
}

// ListPublicItinerariesQuery fetches a page of publicly visible itineraries.
// No authentication is required to run it.
type ListPublicItinerariesQuery struct {
	Filter ports.ListFilter `json:"filter"`
}

// Validate validates the query
func (q ListPublicItinerariesQuery) Validate() error {
	return nil
}

// GetUserQuery fetches a user's profile
type GetUserQuery struct {
	UserID string `json:"user_id" validate:"required"`
}

// Validate validates the query
func (q GetUserQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	return nil
}
