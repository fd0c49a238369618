package v1

import (
	"errors"
	"net/http"

	"github.com/finwall/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"there is no transaction matching your query"`
}

// status returns the appropriate HTTP status for an error.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var (
	errExportRangeNotSet = errors.New("the from and to query parameters must be set")
	errReceiptTextEmpty  = errors.New("the text field must contain the extracted receipt text")
)
