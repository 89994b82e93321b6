package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/davixiao/MeetTheDev/internal/api/middleware"
	"github.com/davixiao/MeetTheDev/internal/core/domain"
)

// currentUser returns the user id stored by the Auth middleware. An empty
// value means the route was mounted without it.
func currentUser(c echo.Context) (string, error) {
	userID, _ := c.Get(middleware.UserIDKey).(string)
	if userID == "" {
		return "", &domain.AuthError{Kind: domain.AuthMissing}
	}
	return userID, nil
}

// bind decodes the request into dst, reporting malformed payloads as 400.
func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	return nil
}

// msgResponse is the {"msg": "..."} acknowledgement body.
type msgResponse struct {
	Msg string `json:"msg"`
}
