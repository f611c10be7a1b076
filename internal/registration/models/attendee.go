package models

import (
	"strings"

	"ekathra/pkg/domain"
)

// StoreKey is the opaque handle a record store assigns on insert. It only
// addresses deletes and is never shown on a receipt.
type StoreKey string

// Attendee is one registration as held in the roster.
//
// Invariants:
//   - Name and Phone are non-empty after trimming
//   - ID is generated once at registration and never recomputed
//   - StoreKey is empty until the store has accepted the record
type Attendee struct {
	Name     string           `json:"name"`
	Phone    string           `json:"phone"`
	ID       domain.ReceiptID `json:"id"`
	StoreKey StoreKey         `json:"store_key,omitempty"`
}

// SameName reports whether the attendee's name matches name ignoring case.
func (a *Attendee) SameName(name string) bool {
	return strings.EqualFold(a.Name, name)
}

// Clone returns a copy so roster reads cannot mutate roster state.
func (a *Attendee) Clone() *Attendee {
	c := *a
	return &c
}
