package domain

import "github.com/google/uuid"

// CardDetails is the card payload forwarded to the payment processor during
// confirmation. It is never persisted.
type CardDetails struct {
	Number   string `json:"number"`
	ExpMonth string `json:"expMonth"`
	ExpYear  string `json:"expYear"`
	CVC      string `json:"cvc"`
}

// BillingDetails accompany the confirmation call, taken from the booking's
// customer contact fields.
type BillingDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TravelPackage is the slice of an inventory package the booking workflow
// needs: identity and the creation-time price. Full package documents live in
// the catalog store.
type TravelPackage struct {
	ID         uuid.UUID
	Title      string
	PriceCents int64
}
