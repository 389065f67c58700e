package domain

// PersonalInfo is the traveler identity and passport record captured by the
// payment-gated booking flow. Dates arrive as typed form input in YYYY-MM-DD
// form; the traveler package validates them before the booking is created.
// Once attached to a booking the record is immutable, there is no edit path.
type PersonalInfo struct {
	Title                  string `json:"title" validate:"required"`
	GivenName              string `json:"givenName" validate:"required"`
	Surname                string `json:"surname" validate:"required"`
	CountryOfResidence     string `json:"countryOfResidence" validate:"required"`
	Nationality            string `json:"nationality" validate:"required"`
	BirthDate              string `json:"birthDate" validate:"required"`
	PassportNumber         string `json:"passportNumber" validate:"required"`
	PassportIssueCountry   string `json:"passportIssueCountry" validate:"required"`
	PassportIssueDate      string `json:"passportIssueDate" validate:"required"`
	PassportExpirationDate string `json:"passportExpirationDate" validate:"required"`
	HasValidVisa           bool   `json:"hasValidVisa"`
	Email                  string `json:"email" validate:"required"`
	Phone                  string `json:"phone" validate:"required"`
}
