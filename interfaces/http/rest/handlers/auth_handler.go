package handlers

import (
	"net/http"
	"strings"

	"wayfarer-backend/application/commands"
	"wayfarer-backend/application/commands/bus"
	"wayfarer-backend/application/ports"
	"wayfarer-backend/pkg/auth"
	"wayfarer-backend/pkg/common"
	appErrors "wayfarer-backend/pkg/errors"
	"wayfarer-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthHandler handles registration, login and token refresh. Login and
// refresh talk to the user repository directly: credential checks need the
// stored hash, which never travels through the buses.
type AuthHandler struct {
	commandBus *bus.CommandBus
	userRepo   ports.UserRepository
	validator  *auth.JWTValidator
	generator  *auth.JWTGenerator
	logger     *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	commandBus *bus.CommandBus,
	userRepo ports.UserRepository,
	validator *auth.JWTValidator,
	generator *auth.JWTGenerator,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		commandBus: commandBus,
		userRepo:   userRepo,
		validator:  validator,
		generator:  generator,
		logger:     logger,
	}
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse carries an issued access token
type TokenResponse struct {
	UserID      string `json:"userId"`
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int    `json:"expiresIn"`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("Failed to hash password", zap.Error(err))
		common.RespondError(w, http.StatusInternalServerError, common.StandardErrorCodes.InternalError, "Failed to register")
		return
	}

	userID := uuid.New().String()
	cmd := commands.RegisterUserCommand{
		UserID:       userID,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         req.Name,
		PasswordHash: hash,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Warn("Registration failed",
			zap.String("email", cmd.Email),
			zap.Error(err),
		)
		respondAppError(w, err)
		return
	}

	token, err := h.generator.GenerateToken(userID, cmd.Email, cmd.Name)
	if err != nil {
		h.logger.Error("Failed to issue token after registration", zap.Error(err))
		common.RespondError(w, http.StatusInternalServerError, common.StandardErrorCodes.InternalError, "Failed to issue token")
		return
	}

	common.RespondJSON(w, http.StatusCreated, TokenResponse{
		UserID:      userID,
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   h.generator.ExpirySeconds(),
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := h.userRepo.GetByEmail(r.Context(), email)
	if err != nil {
		// Same response for unknown email and bad password
		if appErrors.IsNotFound(err) {
			common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Invalid credentials")
			return
		}
		h.logger.Error("Login lookup failed", zap.Error(err))
		common.RespondError(w, http.StatusInternalServerError, common.StandardErrorCodes.InternalError, "Failed to log in")
		return
	}

	if err := auth.ComparePassword(user.PasswordHash(), req.Password); err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Invalid credentials")
		return
	}

	token, err := h.generator.GenerateToken(user.ID().String(), user.Email(), user.Name())
	if err != nil {
		h.logger.Error("Failed to issue token", zap.Error(err))
		common.RespondError(w, http.StatusInternalServerError, common.StandardErrorCodes.InternalError, "Failed to issue token")
		return
	}

	common.RespondJSON(w, http.StatusOK, TokenResponse{
		UserID:      user.ID().String(),
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   h.generator.ExpirySeconds(),
	})
}

// Refresh handles POST /auth/refresh. The current token must still be valid;
// a fresh one is issued with a full expiry window.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Missing or malformed authorization header")
		return
	}

	claims, err := h.validator.ValidateToken(parts[1])
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, common.StandardErrorCodes.Unauthorized, "Invalid token")
		return
	}

	token, err := h.generator.GenerateToken(claims.UserID, claims.Email, claims.Name)
	if err != nil {
		h.logger.Error("Failed to refresh token", zap.Error(err))
		common.RespondError(w, http.StatusInternalServerError, common.StandardErrorCodes.InternalError, "Failed to issue token")
		return
	}

	common.RespondJSON(w, http.StatusOK, TokenResponse{
		UserID:      claims.UserID,
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   h.generator.ExpirySeconds(),
	})
}
