package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/davixiao/MeetTheDev/internal/core/domain"
)

// messageResponse is the envelope for single-message errors: {"msg": "..."}.
type messageResponse struct {
	Msg string `json:"msg"`
}

// fieldErrorsResponse is the envelope for input errors: {"errors": [...]}.
type fieldErrorsResponse struct {
	Errors []domain.FieldError `json:"errors"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Renders input errors as {"errors":[{"msg","param"}]} and everything
//     else as {"msg": "..."}.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, any) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, fieldErrorsResponse{Errors: verr.Errors}
	}

	var authErr *domain.AuthError
	if errors.As(err, &authErr) {
		return http.StatusUnauthorized, messageResponse{Msg: authErr.Error()}
	}

	// Echo's own errors (bind failures, 404 from router, explicit handler errors).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("http error")
		}
		return he.Code, messageResponse{Msg: fmt.Sprintf("%v", he.Message)}
	}

	switch {
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, fieldErrorsResponse{Errors: []domain.FieldError{{Msg: "User already exists"}}}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, fieldErrorsResponse{Errors: []domain.FieldError{{Msg: "Invalid Credentials"}}}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, messageResponse{Msg: "User not authorized"}
	case errors.Is(err, domain.ErrProfileNotFound):
		return http.StatusNotFound, messageResponse{Msg: "There is no profile for this user"}
	case errors.Is(err, domain.ErrPostNotFound):
		return http.StatusNotFound, messageResponse{Msg: "Post not found"}
	case errors.Is(err, domain.ErrCommentNotFound):
		return http.StatusNotFound, messageResponse{Msg: "Comment does not exist"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, messageResponse{Msg: "User not found"}
	case errors.Is(err, domain.ErrGithubUserNotFound):
		return http.StatusNotFound, messageResponse{Msg: "No Github profile found"}
	case errors.Is(err, domain.ErrAlreadyLiked):
		return http.StatusBadRequest, messageResponse{Msg: "Post already liked"}
	case errors.Is(err, domain.ErrNotLiked):
		return http.StatusBadRequest, messageResponse{Msg: "Post has not yet been liked"}
	case errors.Is(err, domain.ErrUpstream):
		log.Warn().Err(err).Str("path", c.Path()).Msg("upstream failure")
		return http.StatusBadGateway, messageResponse{Msg: "GitHub is unavailable, try again later"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, messageResponse{Msg: "Server Error"}
}
