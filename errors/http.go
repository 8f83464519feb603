package errors

import (
	goerrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Detail is the JSON body returned for every API error.
type Detail struct {
	Detail string `json:"detail"`
}

// MapToHTTPError translates domain sentinels into HTTP errors carrying the
// message clients display. Unknown errors become a 500 without leaking the cause.
func MapToHTTPError(err error) *echo.HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *echo.HTTPError
	if goerrors.As(err, &httpErr) {
		return httpErr
	}
	var serializationErr *SerializationError
	switch {
	case goerrors.Is(err, ErrQuestionNotFound):
		return newHTTPError(http.StatusNotFound, "Question not found", err)
	case goerrors.Is(err, ErrInvalidQuestionID):
		return newHTTPError(http.StatusUnprocessableEntity, "Question id must be an integer", err)
	case goerrors.Is(err, ErrEmptyMessage):
		return newHTTPError(http.StatusBadRequest, "Message cannot be empty", err)
	case goerrors.Is(err, ErrEmptyAnswer):
		return newHTTPError(http.StatusBadRequest, "Answer cannot be empty", err)
	case goerrors.Is(err, ErrEmptySearchQuery):
		return newHTTPError(http.StatusBadRequest, "Search query cannot be empty", err)
	case goerrors.Is(err, ErrUserAlreadyExists):
		return newHTTPError(http.StatusBadRequest, "Email or username already registered", err)
	case goerrors.Is(err, ErrInvalidRegistration), goerrors.Is(err, ErrInvalidPassword):
		return newHTTPError(http.StatusUnprocessableEntity, err.Error(), err)
	case goerrors.Is(err, ErrInvalidCredentials):
		return newHTTPError(http.StatusUnauthorized, "Invalid email or password", err)
	case goerrors.Is(err, ErrUnauthorized):
		return newHTTPError(http.StatusUnauthorized, "Unauthorized", err)
	case goerrors.As(err, &serializationErr):
		return newHTTPError(http.StatusInternalServerError, "Event could not be published", err)
	default:
		return newHTTPError(http.StatusInternalServerError, "Internal server error", err)
	}
}

func newHTTPError(code int, detail string, cause error) *echo.HTTPError {
	return echo.NewHTTPError(code, detail).SetInternal(cause)
}
