package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/invoice-builder/pkg/invoice"
)

// AppError is the JSON error body returned by the API.
type AppError struct {
	Code    int                  `json:"code"`
	Message string               `json:"message"`
	Errors  []invoice.FieldError `json:"errors,omitempty"`
}

func (e *AppError) Error() string {
	return e.Message
}

func newAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// toAppError maps session and decoding errors to HTTP responses.
func toAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if ve, ok := invoice.AsValidationError(err); ok {
		return &AppError{Code: http.StatusUnprocessableEntity, Message: "Validation failed", Errors: ve.Fields}
	}
	switch {
	case errors.Is(err, invoice.ErrItemNotFound):
		return newAppError(http.StatusNotFound, err.Error())
	case errors.Is(err, invoice.ErrUnknownField):
		return newAppError(http.StatusBadRequest, err.Error())
	case errors.Is(err, invoice.ErrInvalidTransition), errors.Is(err, invoice.ErrReviewing):
		return newAppError(http.StatusConflict, err.Error())
	}
	return newAppError(http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	appErr := toAppError(err)
	writeJSON(w, appErr.Code, appErr)
}
