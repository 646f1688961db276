package httpx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/MikeMC777/cafelove/internal/apperr"
)

// HTTPError represents a standard error in JSON.
// swagger:model HTTPError
type HTTPError struct {
	// Error message
	// example: not found
	Error string `json:"error"`
}

// WriteError renders err with the status of its kind. Unexpected errors are
// logged and rendered without detail.
func WriteError(c *gin.Context, log *logrus.Entry, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) {
		e = &apperr.Error{Kind: apperr.KindPersistence, Message: "unexpected", Err: err}
	}
	status := apperr.HTTPStatus(e.Kind)
	if status >= http.StatusInternalServerError {
		log.WithError(err).WithFields(logrus.Fields{
			"rid":  RequestIDOf(c),
			"path": c.Request.URL.Path,
		}).Error("request failed")
	}
	c.JSON(status, HTTPError{Error: e.Public()})
}

// BadRequest is shorthand for malformed payloads.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, HTTPError{Error: msg})
}
