package handler

import (
	"net/http"
	"strings"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/dafibh/condo/condo-backend/internal/middleware"
	"github.com/dafibh/condo/condo-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ProfileHandler handles profile and user administration requests
type ProfileHandler struct {
	authService *service.AuthService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(authService *service.AuthService) *ProfileHandler {
	return &ProfileHandler{authService: authService}
}

// UpdateProfileRequest represents the update profile request
type UpdateProfileRequest struct {
	Name  *string `json:"name" validate:"omitempty,max=255"`
	Phone *string `json:"phone" validate:"omitempty,number,len=9"`
}

// normalize drops the spaces people type between digit groups
func (r *UpdateProfileRequest) normalize() {
	if r.Phone != nil {
		phone := strings.ReplaceAll(strings.TrimSpace(*r.Phone), " ", "")
		r.Phone = &phone
	}
}

// UpdateAccessRequest is what an administrator may change on a user
type UpdateAccessRequest struct {
	IsActive   *bool  `json:"isActive"`
	IsStaff    *bool  `json:"isStaff"`
	UnitNumber *int32 `json:"unitNumber" validate:"omitempty,gt=0"`
	ClearUnit  bool   `json:"clearUnit"`
}

// GetProfile handles GET /profile
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	p := middleware.GetPrincipal(c)
	if p == nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	user, err := h.authService.GetUserByID(c.Request().Context(), p.UserID)
	if err != nil {
		return handleServiceError(c, err, "get profile")
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateProfile handles PUT /profile
// @Summary Update own profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile"
// @Success 200 {object} UserResponse
// @Failure 400 {object} ProblemDetails
// @Router /profile [put]
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	p := middleware.GetPrincipal(c)
	if p == nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req UpdateProfileRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	user, err := h.authService.UpdateProfile(c.Request().Context(), p.UserID, req.Name, req.Phone)
	if err != nil {
		return handleServiceError(c, err, "update profile")
	}

	log.Info().Str("user_id", p.UserID.String()).Msg("Profile updated")
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// ListUsers handles GET /users
// @Summary List registered users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} UserResponse
// @Router /users [get]
func (h *ProfileHandler) ListUsers(c echo.Context) error {
	users, err := h.authService.ListUsers(c.Request().Context())
	if err != nil {
		return handleServiceError(c, err, "list users")
	}
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, out)
}

// UpdateAccess handles PATCH /users/:id
// @Summary Activate a user, grant staff rights or link a unit
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body UpdateAccessRequest true "Access"
// @Success 200 {object} UserResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /users/{id} [patch]
func (h *ProfileHandler) UpdateAccess(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return invalidParam(c, "id", "must be a UUID")
	}

	var req UpdateAccessRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	user, err := h.authService.UpdateAccess(c.Request().Context(), id, domain.UserAccessUpdate{
		IsActive:   req.IsActive,
		IsStaff:    req.IsStaff,
		UnitNumber: req.UnitNumber,
		ClearUnit:  req.ClearUnit,
	})
	if err != nil {
		return handleServiceError(c, err, "update user access")
	}

	log.Info().
		Str("user_id", id.String()).
		Str("by", middleware.GetAuth0ID(c)).
		Msg("User access updated")
	return c.JSON(http.StatusOK, toUserResponse(user))
}
