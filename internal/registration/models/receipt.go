package models

import "ekathra/pkg/domain"

// Event is the static event metadata printed on every receipt.
type Event struct {
	Name  string `json:"name"`
	Date  string `json:"date"`
	Venue string `json:"venue"`
}

// Receipt is the registrant-facing view of an attendee.
type Receipt struct {
	Name  string           `json:"name"`
	Phone string           `json:"phone"`
	ID    domain.ReceiptID `json:"id"`
	Event Event            `json:"event"`
}
