package handlers

import (
	"net/http"

	"wayfarer-backend/application/commands"
	"wayfarer-backend/application/commands/bus"
	"wayfarer-backend/application/ports"
	"wayfarer-backend/application/queries"
	querybus "wayfarer-backend/application/queries/bus"
	"wayfarer-backend/pkg/auth"
	"wayfarer-backend/pkg/common"
	"wayfarer-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ItineraryHandler handles itinerary and activity HTTP requests
type ItineraryHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewItineraryHandler creates a new itinerary handler
func NewItineraryHandler(commandBus *bus.CommandBus, queryBus *querybus.QueryBus, logger *zap.Logger) *ItineraryHandler {
	return &ItineraryHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		logger:     logger,
	}
}

// CreateItineraryRequest represents the request body for creating an itinerary
type CreateItineraryRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description,omitempty" validate:"max=5000"`
	Destination string `json:"destination" validate:"required,min=1,max=200"`
	StartDate   string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"endDate" validate:"required,datetime=2006-01-02"`
	Visibility  string `json:"visibility,omitempty" validate:"omitempty,oneof=private public"`
}

// UpdateItineraryRequest represents the request body for a partial update
type UpdateItineraryRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	Destination *string `json:"destination,omitempty" validate:"omitempty,min=1,max=200"`
	StartDate   *string `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=planning ongoing completed cancelled"`
	Visibility  *string `json:"visibility,omitempty" validate:"omitempty,oneof=private public"`
}

// AddActivityRequest represents the request body for adding an activity
type AddActivityRequest struct {
	Name      string  `json:"name" validate:"required,min=1,max=200"`
	Location  string  `json:"location,omitempty" validate:"max=200"`
	Day       int     `json:"day" validate:"required,gte=1"`
	StartTime string  `json:"startTime,omitempty"`
	EndTime   string  `json:"endTime,omitempty"`
	Notes     string  `json:"notes,omitempty" validate:"max=2000"`
	Cost      float64 `json:"cost,omitempty" validate:"gte=0"`
}

// CreateItineraryResponse represents the response for creating an itinerary
type CreateItineraryResponse struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
}

// AddActivityResponse represents the response for adding an activity
type AddActivityResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Create handles POST /itineraries
func (h *ItineraryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Unauthorized")
		return
	}

	var req CreateItineraryRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	itineraryID := uuid.New().String()
	cmd := commands.CreateItineraryCommand{
		ItineraryID: itineraryID,
		UserID:      userCtx.UserID,
		Title:       req.Title,
		Description: req.Description,
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Visibility:  req.Visibility,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to create itinerary",
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, CreateItineraryResponse{
		ID:        itineraryID,
		Message:   "Itinerary created successfully",
		CreatedAt: utils.NowRFC3339(),
	})
}

// Get handles GET /itineraries/{itineraryID}
func (h *ItineraryHandler) Get(w http.ResponseWriter, r *http.Request) {
	itineraryID := chi.URLParam(r, "itineraryID")
	if _, err := uuid.Parse(itineraryID); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid itinerary ID format")
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Unauthorized")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetItineraryQuery{
		ItineraryID: itineraryID,
		RequesterID: userCtx.UserID,
	})
	if err != nil {
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// List handles GET /itineraries
func (h *ItineraryHandler) List(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Unauthorized")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ListItinerariesQuery{
		UserID: userCtx.UserID,
		Filter: extractListFilter(r),
	})
	if err != nil {
		h.logger.Error("Failed to list itineraries",
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// ListPublic handles GET /public/itineraries. No authentication required.
func (h *ItineraryHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.ListPublicItinerariesQuery{
		Filter: extractListFilter(r),
	})
	if err != nil {
		h.logger.Error("Failed to list public itineraries", zap.Error(err))
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// Update handles PUT /itineraries/{itineraryID}
func (h *ItineraryHandler) Update(w http.ResponseWriter, r *http.Request) {
	itineraryID := chi.URLParam(r, "itineraryID")
	if _, err := uuid.Parse(itineraryID); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid itinerary ID format")
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Unauthorized")
		return
	}

	var req UpdateItineraryRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	cmd := commands.UpdateItineraryCommand{
		ItineraryID: itineraryID,
		UserID:      userCtx.UserID,
		Title:       req.Title,
		Description: req.Description,
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      req.Status,
		Visibility:  req.Visibility,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to update itinerary",
			zap.String("itineraryID", itineraryID),
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		respondAppError(w, err)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetItineraryQuery{
		ItineraryID: itineraryID,
		RequesterID: userCtx.UserID,
	})
	if err != nil {
		respondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// Delete handles DELETE /itineraries/{itineraryID}
func (h *ItineraryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	itineraryID := chi.URLParam(r, "itineraryID")
	if _, err := uuid.Parse(itineraryID); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid itinerary ID format")
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Unauthorized")
		return
	}

	cmd := commands.DeleteItineraryCommand{
		ItineraryID: itineraryID,
		UserID:      userCtx.UserID,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to delete itinerary",
			zap.String("itineraryID", itineraryID),
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		respondAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddActivity handles POST /itineraries/{itineraryID}/activities
func (h *ItineraryHandler) AddActivity(w http.ResponseWriter, r *http.Request) {
	itineraryID := chi.URLParam(r, "itineraryID")
	if _, err := uuid.Parse(itineraryID); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid itinerary ID format")
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Unauthorized")
		return
	}

	var req AddActivityRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	activityID := uuid.New().String()
	cmd := commands.AddActivityCommand{
		ItineraryID: itineraryID,
		UserID:      userCtx.UserID,
		ActivityID:  activityID,
		Name:        req.Name,
		Location:    req.Location,
		Day:         req.Day,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Notes:       req.Notes,
		Cost:        req.Cost,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to add activity",
			zap.String("itineraryID", itineraryID),
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, AddActivityResponse{
		ID:      activityID,
		Message: "Activity added successfully",
	})
}

// RemoveActivity handles DELETE /itineraries/{itineraryID}/activities/{activityID}
func (h *ItineraryHandler) RemoveActivity(w http.ResponseWriter, r *http.Request) {
	itineraryID := chi.URLParam(r, "itineraryID")
	activityID := chi.URLParam(r, "activityID")
	if _, err := uuid.Parse(itineraryID); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid itinerary ID format")
		return
	}
	if activityID == "" {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Activity ID is required")
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Unauthorized")
		return
	}

	cmd := commands.RemoveActivityCommand{
		ItineraryID: itineraryID,
		UserID:      userCtx.UserID,
		ActivityID:  activityID,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to remove activity",
			zap.String("itineraryID", itineraryID),
			zap.String("activityID", activityID),
			zap.Error(err),
		)
		respondAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// extractListFilter builds the list filter from query parameters
func extractListFilter(r *http.Request) ports.ListFilter {
	params := common.ExtractPaginationParams(r)
	q := r.URL.Query()
	return ports.ListFilter{
		Page:        params.Page,
		Limit:       params.Limit,
		Sort:        params.Sort,
		Status:      q.Get("status"),
		Visibility:  q.Get("visibility"),
		Search:      q.Get("search"),
		Destination: q.Get("destination"),
	}
}
