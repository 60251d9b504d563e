package valueobjects

import (
	"errors"

	"github.com/google/uuid"
)

// ItineraryID is a value object representing a unique itinerary identifier
// Value objects are immutable and have no identity beyond their value
type ItineraryID struct {
	value string
}

// NewItineraryID creates a new random ItineraryID
func NewItineraryID() ItineraryID {
	return ItineraryID{value: uuid.New().String()}
}

// NewItineraryIDFromString creates an ItineraryID from an existing string
func NewItineraryIDFromString(id string) (ItineraryID, error) {
	if id == "" {
		return ItineraryID{}, errors.New("itinerary ID cannot be empty")
	}
	if !isValidUUID(id) {
		return ItineraryID{}, errors.New("itinerary ID must be a valid UUID")
	}
	return ItineraryID{value: id}, nil
}

// String returns the string representation of the ItineraryID
func (id ItineraryID) String() string {
	return id.value
}

// Equals checks if two ItineraryIDs are equal
func (id ItineraryID) Equals(other ItineraryID) bool {
	return id.value == other.value
}

// IsZero checks if the ItineraryID is the zero value
func (id ItineraryID) IsZero() bool {
	return id.value == ""
}

// isValidUUID validates if a string is a valid UUID
func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
