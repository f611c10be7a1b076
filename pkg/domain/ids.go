// Package domain holds primitives shared by every layer: typed identifiers
// that are validated once at the trust boundary and passed around by value.
package domain

import (
	"github.com/google/uuid"

	dErrors "ekathra/pkg/domain-errors"
)

// ReceiptID is the registrant-facing identifier printed on a receipt and
// encoded in its QR code. It is generated once at registration and never
// recomputed.
type ReceiptID uuid.UUID

// NewReceiptID draws a random (v4) receipt identifier. With 122 random bits
// collisions are not a concern at event scale.
func NewReceiptID() ReceiptID {
	return ReceiptID(uuid.New())
}

// ParseReceiptID validates an external receipt identifier.
func ParseReceiptID(s string) (ReceiptID, error) {
	id, err := parseUUID(s, "receipt ID")
	return ReceiptID(id), err
}

func (id ReceiptID) String() string {
	return uuid.UUID(id).String()
}

// IsNil reports whether the ID is the zero value.
func (id ReceiptID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

// MarshalText lets ReceiptID appear as a plain string in JSON.
func (id ReceiptID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *ReceiptID) UnmarshalText(data []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalText(data); err != nil {
		return err
	}
	*id = ReceiptID(u)
	return nil
}

func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" is required")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
	}
	if id == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
	}
	return id, nil
}
