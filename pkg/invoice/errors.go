package invoice

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrItemNotFound      = errors.New("invoice: item not found")
	ErrUnknownField      = errors.New("invoice: unknown item field")
	ErrInvalidTransition = errors.New("invoice: invalid state transition")
	ErrReviewing         = errors.New("invoice: session is under review")
)

// FieldError represents a violated constraint on a single field. ItemID is
// set when the field belongs to a line item.
type FieldError struct {
	Field   string `json:"field"`
	ItemID  string `json:"item_id,omitempty"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	if e.ItemID != "" {
		return fmt.Sprintf("item %s: %s %s", e.ItemID, e.Field, e.Message)
	}
	return e.Field + " " + e.Message
}

// ValidationError lists every field that blocks the review.
type ValidationError struct {
	Fields []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return "invoice: validation failed: " + strings.Join(parts, "; ")
}

// AsValidationError unwraps err into a *ValidationError when it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
