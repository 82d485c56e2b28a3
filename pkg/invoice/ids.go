package invoice

import (
	"strings"

	"github.com/google/uuid"
)

// IDSupplier hands out row identifiers. Identifiers must not repeat during
// the lifetime of a session.
type IDSupplier interface {
	NewID() string
}

// IDSupplierFunc adapts a plain function to IDSupplier.
type IDSupplierFunc func() string

func (f IDSupplierFunc) NewID() string { return f() }

// UUIDSupplier issues random version 4 UUIDs without dashes.
type UUIDSupplier struct{}

func (UUIDSupplier) NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
