package queries

import (
	"time"

	"wayfarer-backend/domain/core/entities"
	"wayfarer-backend/pkg/common"
	"wayfarer-backend/pkg/utils"
)

// ActivityView is the read model for a single activity
type ActivityView struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Location  string  `json:"location,omitempty"`
	Day       int     `json:"day"`
	StartTime string  `json:"startTime,omitempty"`
	EndTime   string  `json:"endTime,omitempty"`
	Notes     string  `json:"notes,omitempty"`
	Cost      float64 `json:"cost,omitempty"`
}

// ItineraryView is the read model for an itinerary. It is also the snapshot
// shape stored in the entity cache, so it carries the owner and visibility
// needed to re-run the access check on a cache hit.
type ItineraryView struct {
	ID          string         `json:"id"`
	UserID      string         `json:"userId"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Destination string         `json:"destination"`
	StartDate   string         `json:"startDate"`
	EndDate     string         `json:"endDate"`
	Status      string         `json:"status"`
	Visibility  string         `json:"visibility"`
	Activities  []ActivityView `json:"activities"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// IsPublic reports whether the view is publicly visible
func (v ItineraryView) IsPublic() bool {
	return v.Visibility == string(entities.VisibilityPublic)
}

// UserView is the read model for a user profile. The password hash never
// appears here.
type UserView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ItineraryListResult is the envelope cached and returned for list queries:
// the page of items plus the pagination metadata computed from the total
// match count.
type ItineraryListResult struct {
	Items      []ItineraryView       `json:"items"`
	Pagination common.PaginationInfo `json:"pagination"`
}

// ItineraryToView converts a domain itinerary to its read model
func ItineraryToView(it *entities.Itinerary) ItineraryView {
	activities := it.Activities()
	views := make([]ActivityView, 0, len(activities))
	for _, a := range activities {
		views = append(views, ActivityView{
			ID:        a.ID,
			Name:      a.Name,
			Location:  a.Location,
			Day:       a.Day,
			StartTime: a.StartTime,
			EndTime:   a.EndTime,
			Notes:     a.Notes,
			Cost:      a.Cost,
		})
	}
	return ItineraryView{
		ID:          it.ID().String(),
		UserID:      it.UserID(),
		Title:       it.Title(),
		Description: it.Description(),
		Destination: it.Destination(),
		StartDate:   utils.FormatDate(it.Dates().Start()),
		EndDate:     utils.FormatDate(it.Dates().End()),
		Status:      string(it.Status()),
		Visibility:  string(it.Visibility()),
		Activities:  views,
		CreatedAt:   it.CreatedAt(),
		UpdatedAt:   it.UpdatedAt(),
	}
}

// UserToView converts a domain user to its read model
func UserToView(u *entities.User) UserView {
	return UserView{
		ID:        u.ID().String(),
		Email:     u.Email(),
		Name:      u.Name(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}
