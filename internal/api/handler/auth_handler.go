package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/way2pg/way2pg-api/internal/api/metrics"
	"github.com/way2pg/way2pg-api/internal/core/domain"
	"github.com/way2pg/way2pg-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Name                   string `json:"name"      validate:"required"`
	Phone                  string `json:"phone"     validate:"required,min=10"`
	Email                  string `json:"email"     validate:"omitempty,email"`
	Password               string `json:"password"  validate:"required,min=8"`
	Role                   string `json:"role"      validate:"required,oneof=student owner"`
	CompanyName            string `json:"company_name,omitempty"`
	BusinessRegistrationID string `json:"business_registration_id,omitempty"`
}

type loginRequest struct {
	Phone    string `json:"phone"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type resetRequest struct {
	Phone string `json:"phone" validate:"required"`
}

type resetConfirmRequest struct {
	Phone       string `json:"phone"        validate:"required"`
	Code        string `json:"code"         validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// Register creates a new student or owner account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details; owner role requires company fields"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Role == domain.RoleOwner && (req.CompanyName == "" || req.BusinessRegistrationID == "") {
		return echo.NewHTTPError(http.StatusBadRequest, "company_name and business_registration_id are required for owners")
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:                   req.Name,
		Phone:                  req.Phone,
		Email:                  req.Email,
		Password:               req.Password,
		Role:                   req.Role,
		CompanyName:            req.CompanyName,
		BusinessRegistrationID: req.BusinessRegistrationID,
	})
	if err != nil {
		return err
	}

	metrics.SignupsTotal.WithLabelValues(user.Role).Inc()
	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// Login authenticates by phone and password and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Phone, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// RequestPasswordReset mails a short-lived reset code.
//
// @Summary      Request a password reset code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetRequest  true  "Account phone"
// @Success      202   {object}  map[string]string
// @Failure      400   {object}  errorResponse
// @Router       /auth/password-reset [post]
func (h *AuthHandler) RequestPasswordReset(c echo.Context) error {
	var req resetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.RequestPasswordReset(c.Request().Context(), req.Phone); err != nil {
		return err
	}

	// 202 regardless of whether the account exists.
	return c.JSON(http.StatusAccepted, map[string]string{"status": "reset code sent if the account exists"})
}

// ConfirmPasswordReset sets a new password given a valid reset code.
//
// @Summary      Confirm a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetConfirmRequest  true  "Phone, code and new password"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  errorResponse
// @Router       /auth/password-reset/confirm [post]
func (h *AuthHandler) ConfirmPasswordReset(c echo.Context) error {
	var req resetConfirmRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ConfirmPasswordReset(c.Request().Context(), req.Phone, req.Code, req.NewPassword); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "password updated"})
}
