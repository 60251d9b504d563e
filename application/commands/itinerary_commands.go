package commands

import "errors"

// CreateItineraryCommand represents the command to create a new itinerary.
// The ID is pre-generated by the caller so it can be returned immediately.
type CreateItineraryCommand struct {
	ItineraryID string `json:"itinerary_id" validate:"required,uuid"`
	UserID      string `json:"user_id" validate:"required"`
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Destination string `json:"destination" validate:"required,min=1,max=200"`
	StartDate   string `json:"start_date" validate:"required"`
	EndDate     string `json:"end_date" validate:"required"`
	Visibility  string `json:"visibility" validate:"omitempty,oneof=private public"`
}

// Validate validates the command
func (cmd CreateItineraryCommand) Validate() error {
	if cmd.ItineraryID == "" {
		return errors.New("itinerary ID is required")
	}
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if cmd.Title == "" {
		return errors.New("title is required")
	}
	if cmd.Destination == "" {
		return errors.New("destination is required")
	}
	if cmd.StartDate == "" || cmd.EndDate == "" {
		return errors.New("travel dates are required")
	}
	return nil
}

// UpdateItineraryCommand represents a partial update to an itinerary.
// Nil pointers leave the corresponding field unchanged.
type UpdateItineraryCommand struct {
	ItineraryID string  `json:"itinerary_id" validate:"required,uuid"`
	UserID      string  `json:"user_id" validate:"required"`
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	Destination *string `json:"destination,omitempty" validate:"omitempty,min=1,max=200"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=planning ongoing completed cancelled"`
	Visibility  *string `json:"visibility,omitempty" validate:"omitempty,oneof=private public"`
}

// Validate validates the command
func (cmd UpdateItineraryCommand) Validate() error {
	if cmd.ItineraryID == "" {
		return errors.New("itinerary ID is required")
	}
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if (cmd.StartDate == nil) != (cmd.EndDate == nil) {
		return errors.New("start and end dates must be updated together")
	}
	return nil
}

// DeleteItineraryCommand represents the command to delete an itinerary
type DeleteItineraryCommand struct {
	ItineraryID string `json:"itinerary_id" validate:"required,uuid"`
	UserID      string `json:"user_id" validate:"required"`
}

// Validate validates the command
func (cmd DeleteItineraryCommand) Validate() error {
	if cmd.ItineraryID == "" {
		return errors.New("itinerary ID is required")
	}
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	return nil
}

// AddActivityCommand appends an activity to an itinerary
type AddActivityCommand struct {
	ItineraryID string  `json:"itinerary_id" validate:"required,uuid"`
	UserID      string  `json:"user_id" validate:"required"`
	ActivityID  string  `json:"activity_id" validate:"required,uuid"`
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Location    string  `json:"location" validate:"max=200"`
	Day         int     `json:"day" validate:"required,gte=1"`
	StartTime   string  `json:"start_time,omitempty"`
	EndTime     string  `json:"end_time,omitempty"`
	Notes       string  `json:"notes,omitempty" validate:"max=2000"`
	Cost        float64 `json:"cost,omitempty" validate:"gte=0"`
}

// Validate validates the command
func (cmd AddActivityCommand) Validate() error {
	if cmd.ItineraryID == "" {
		return errors.New("itinerary ID is required")
	}
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if cmd.Name == "" {
		return errors.New("activity name is required")
	}
	if cmd.Day < 1 {
		return errors.New("activity day must be positive")
	}
	return nil
}

// RemoveActivityCommand removes an activity from an itinerary
type RemoveActivityCommand struct {
	ItineraryID string `json:"itinerary_id" validate:"required,uuid"`
	UserID      string `json:"user_id" validate:"required"`
	ActivityID  string `json:"activity_id" validate:"required"`
}

// Validate validates the command
func (cmd RemoveActivityCommand) Validate() error {
	if cmd.ItineraryID == "" {
		return errors.New("itinerary ID is required")
	}
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if cmd.ActivityID == "" {
		return errors.New("activity ID is required")
	}
	return nil
}
