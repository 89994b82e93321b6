package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/davixiao/MeetTheDev/internal/api/metrics"
	"github.com/davixiao/MeetTheDev/internal/core/domain"
	"github.com/davixiao/MeetTheDev/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Register creates a new user account.
//
// @Summary      Register a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      ports.RegisterInput  true  "Name, email and password"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  fieldErrorsDoc
// @Failure      429   {object}  msgResponse
// @Failure      500   {object}  msgResponse
// @Router       /users [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var in ports.RegisterInput
	if err := bind(c, &in); err != nil {
		return err
	}

	token, err := h.authService.Register(c.Request().Context(), in)
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.Inc()
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// Login authenticates a user and returns a token.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      ports.LoginInput  true  "Credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  fieldErrorsDoc
// @Failure      429   {object}  msgResponse
// @Failure      500   {object}  msgResponse
// @Router       /auth [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var in ports.LoginInput
	if err := bind(c, &in); err != nil {
		return err
	}

	token, err := h.authService.Login(c.Request().Context(), in)
	if err != nil {
		result := "error"
		var verr *domain.ValidationError
		if errors.Is(err, domain.ErrInvalidCredentials) || errors.As(err, &verr) {
			result = "invalid"
		}
		metrics.LoginsTotal.WithLabelValues(result).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// Me returns the authenticated user.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  msgResponse
// @Failure      404  {object}  msgResponse
// @Router       /auth [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Me(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// fieldErrorsDoc documents the {"errors": [...]} body for swagger.
type fieldErrorsDoc struct {
	Errors []domain.FieldError `json:"errors"`
}
