package models

import (
	"strings"

	"ekathra/internal/platform/blob"
	dErrors "ekathra/pkg/domain-errors"
)

// RegisterRequest is the registration form payload.
type RegisterRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Normalize trims surrounding whitespace from both fields.
func (r *RegisterRequest) Normalize() {
	if r == nil {
		return
	}
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
}

// Validate expects a normalized request.
func (r *RegisterRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.Name == "" || r.Phone == "" {
		return dErrors.New(dErrors.CodeValidation, "please fill in all fields")
	}
	return nil
}

// LoginRequest carries the admin passphrase.
type LoginRequest struct {
	Passphrase string `json:"passphrase"`
}

// RosterResponse is the admin listing.
type RosterResponse struct {
	Count         int         `json:"count"`
	Registrations []*Attendee `json:"registrations"`
}

// ArchiveResponse lists archived receipts and exports.
type ArchiveResponse struct {
	Count int         `json:"count"`
	Files []blob.Info `json:"files"`
}
