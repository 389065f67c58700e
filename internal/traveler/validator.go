// Package traveler validates the personal/passport record a customer submits
// before the booking workflow may advance to the payment step.
package traveler

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/alhaqtravel/umrah-booking/internal/domain"
)

const dateLayout = "2006-01-02"

type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

func NewValidator() *Validator {
	return &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
}

// NewValidatorAt pins "now" for the date rules. Tests use it; production code
// should use NewValidator.
func NewValidatorAt(now func() time.Time) *Validator {
	v := NewValidator()
	v.now = now
	return v
}

// Validate checks the draft and returns the first failing rule. All fields
// except hasValidVisa are mandatory and are checked in declared order; then
// three date rules run in order: birth date in the past, passport not
// expired, issue date before expiration. The first failure stops validation.
// On success the draft is returned to the caller unchanged; no normalization
// is performed.
func (v *Validator) Validate(info domain.PersonalInfo) error {
	if err := v.validate.Struct(info); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) || len(verrs) == 0 {
			return err
		}
		field := humanize(verrs[0].StructField())
		return &domain.ValidationError{Field: field, Message: "please fill in " + field}
	}

	now := v.now()

	birth, err := time.Parse(dateLayout, info.BirthDate)
	if err != nil {
		return &domain.ValidationError{Field: "birth date", Message: "invalid date"}
	}
	if !birth.Before(now) {
		return &domain.ValidationError{Field: "birth date", Message: "birth date must be in the past"}
	}

	expiration, err := time.Parse(dateLayout, info.PassportExpirationDate)
	if err != nil {
		return &domain.ValidationError{Field: "passport expiration date", Message: "invalid date"}
	}
	if !expiration.After(now) {
		return &domain.ValidationError{Field: "passport expiration date", Message: "passport expired"}
	}

	issue, err := time.Parse(dateLayout, info.PassportIssueDate)
	if err != nil {
		return &domain.ValidationError{Field: "passport issue date", Message: "invalid date"}
	}
	if !issue.Before(expiration) {
		return &domain.ValidationError{Field: "passport issue date", Message: "issue date after expiration"}
	}

	return nil
}

// humanize turns a struct field name into the form shown to the customer:
// "PassportIssueDate" becomes "passport issue date".
func humanize(field string) string {
	var b strings.Builder
	for i, r := range field {
		if unicode.IsUpper(r) && i > 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
