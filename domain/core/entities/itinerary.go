package entities

import (
	"strings"
	"time"

	"wayfarer-backend/domain/core/valueobjects"
	pkgerrors "wayfarer-backend/pkg/errors"

	"github.com/google/uuid"
)

// ItineraryStatus represents the lifecycle state of a trip
type ItineraryStatus string

const (
	StatusPlanning  ItineraryStatus = "planning"
	StatusOngoing   ItineraryStatus = "ongoing"
	StatusCompleted ItineraryStatus = "completed"
	StatusCancelled ItineraryStatus = "cancelled"
)

// Visibility controls whether an itinerary appears in the public listing
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

const maxTitleLength = 200

// Activity is a scheduled item nested inside an itinerary. Activities have
// no identity outside their itinerary and are persisted as part of it.
type Activity struct {
	ID        string
	Name      string
	Location  string
	Day       int // 1-based day index within the itinerary's date range
	StartTime string
	EndTime   string
	Notes     string
	Cost      float64
}

// Itinerary is the main entity representing a travel plan
// This is a rich domain model with encapsulated business logic
type Itinerary struct {
	id          valueobjects.ItineraryID
	userID      string
	title       string
	description string
	destination string
	dates       valueobjects.DateRange
	status      ItineraryStatus
	visibility  Visibility
	activities  []Activity
	createdAt   time.Time
	updatedAt   time.Time
	version     int
}

// NewItinerary creates a new itinerary with full business rule validation
func NewItinerary(userID, title, description, destination string, dates valueobjects.DateRange) (*Itinerary, error) {
	return NewItineraryWithID(valueobjects.NewItineraryID(), userID, title, description, destination, dates)
}

// NewItineraryWithID creates a new itinerary under a caller-supplied ID,
// so the HTTP layer can return the ID it generated before dispatching
func NewItineraryWithID(id valueobjects.ItineraryID, userID, title, description, destination string, dates valueobjects.DateRange) (*Itinerary, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("itinerary ID cannot be empty")
	}
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}
	if title = strings.TrimSpace(title); title == "" {
		return nil, pkgerrors.NewValidationError("title cannot be empty")
	}
	if len(title) > maxTitleLength {
		return nil, pkgerrors.NewValidationError("title exceeds maximum length")
	}
	if destination = strings.TrimSpace(destination); destination == "" {
		return nil, pkgerrors.NewValidationError("destination cannot be empty")
	}
	if dates.IsZero() {
		return nil, pkgerrors.NewValidationError("travel dates are required")
	}

	now := time.Now().UTC()
	return &Itinerary{
		id:          id,
		userID:      userID,
		title:       title,
		description: description,
		destination: destination,
		dates:       dates,
		status:      StatusPlanning,
		visibility:  VisibilityPrivate,
		activities:  []Activity{},
		createdAt:   now,
		updatedAt:   now,
		version:     1,
	}, nil
}

// ReconstructItinerary rebuilds an itinerary from repository data with preserved timestamps
func ReconstructItinerary(
	id valueobjects.ItineraryID,
	userID, title, description, destination string,
	dates valueobjects.DateRange,
	status ItineraryStatus,
	visibility Visibility,
	activities []Activity,
	createdAt, updatedAt time.Time,
	version int,
) *Itinerary {
	if activities == nil {
		activities = []Activity{}
	}
	return &Itinerary{
		id:          id,
		userID:      userID,
		title:       title,
		description: description,
		destination: destination,
		dates:       dates,
		status:      status,
		visibility:  visibility,
		activities:  activities,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		version:     version,
	}
}

func (i *Itinerary) ID() valueobjects.ItineraryID  { return i.id }
func (i *Itinerary) UserID() string                { return i.userID }
func (i *Itinerary) Title() string                 { return i.title }
func (i *Itinerary) Description() string           { return i.description }
func (i *Itinerary) Destination() string           { return i.destination }
func (i *Itinerary) Dates() valueobjects.DateRange { return i.dates }
func (i *Itinerary) Status() ItineraryStatus       { return i.status }
func (i *Itinerary) Visibility() Visibility        { return i.visibility }
func (i *Itinerary) CreatedAt() time.Time          { return i.createdAt }
func (i *Itinerary) UpdatedAt() time.Time          { return i.updatedAt }
func (i *Itinerary) Version() int                  { return i.version }

// IsPublic reports whether the itinerary appears in the public listing
func (i *Itinerary) IsPublic() bool {
	return i.visibility == VisibilityPublic
}

// Activities returns a copy of the nested activities
func (i *Itinerary) Activities() []Activity {
	out := make([]Activity, len(i.activities))
	copy(out, i.activities)
	return out
}

// UpdateDetails changes the itinerary's descriptive fields
func (i *Itinerary) UpdateDetails(title, description, destination string, dates valueobjects.DateRange) error {
	if title = strings.TrimSpace(title); title == "" {
		return pkgerrors.NewValidationError("title cannot be empty")
	}
	if len(title) > maxTitleLength {
		return pkgerrors.NewValidationError("title exceeds maximum length")
	}
	if destination = strings.TrimSpace(destination); destination == "" {
		return pkgerrors.NewValidationError("destination cannot be empty")
	}
	if dates.IsZero() {
		return pkgerrors.NewValidationError("travel dates are required")
	}

	i.title = title
	i.description = description
	i.destination = destination
	i.dates = dates
	i.touch()
	return nil
}

// ChangeStatus moves the itinerary to a new lifecycle state
func (i *Itinerary) ChangeStatus(status ItineraryStatus) error {
	switch status {
	case StatusPlanning, StatusOngoing, StatusCompleted, StatusCancelled:
	default:
		return pkgerrors.NewValidationError("invalid itinerary status")
	}
	if i.status == StatusCancelled && status != StatusCancelled {
		return pkgerrors.NewConflictError("cancelled itineraries cannot be reactivated")
	}
	i.status = status
	i.touch()
	return nil
}

// SetVisibility publishes or unpublishes the itinerary
func (i *Itinerary) SetVisibility(v Visibility) error {
	if v != VisibilityPrivate && v != VisibilityPublic {
		return pkgerrors.NewValidationError("invalid visibility")
	}
	i.visibility = v
	i.touch()
	return nil
}

// AddActivity appends a new activity, assigning an ID when none is given
func (i *Itinerary) AddActivity(a Activity) (Activity, error) {
	if strings.TrimSpace(a.Name) == "" {
		return Activity{}, pkgerrors.NewValidationError("activity name cannot be empty")
	}
	if a.Day < 1 || a.Day > i.dates.Days() {
		return Activity{}, pkgerrors.NewValidationError("activity day falls outside the travel dates")
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	i.activities = append(i.activities, a)
	i.touch()
	return a, nil
}

// RemoveActivity deletes an activity by ID
func (i *Itinerary) RemoveActivity(activityID string) error {
	for idx, a := range i.activities {
		if a.ID == activityID {
			i.activities = append(i.activities[:idx], i.activities[idx+1:]...)
			i.touch()
			return nil
		}
	}
	return pkgerrors.NewNotFoundError("activity")
}

func (i *Itinerary) touch() {
	i.updatedAt = time.Now().UTC()
	i.version++
}
