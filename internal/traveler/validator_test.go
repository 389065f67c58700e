package traveler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alhaqtravel/umrah-booking/internal/domain"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
}

func validInfo() domain.PersonalInfo {
	return domain.PersonalInfo{
		Title:                  "Mr",
		GivenName:              "Ahmed",
		Surname:                "Khan",
		CountryOfResidence:     "United Kingdom",
		Nationality:            "British",
		BirthDate:              "1985-06-20",
		PassportNumber:         "P123456789",
		PassportIssueCountry:   "United Kingdom",
		PassportIssueDate:      "2020-01-10",
		PassportExpirationDate: "2030-01-10",
		HasValidVisa:           true,
		Email:                  "ahmed@example.com",
		Phone:                  "+441234567890",
	}
}

func TestValidateAccepts(t *testing.T) {
	v := NewValidatorAt(fixedNow)
	require.NoError(t, v.Validate(validInfo()))
}

func TestValidateHasValidVisaOptional(t *testing.T) {
	v := NewValidatorAt(fixedNow)
	info := validInfo()
	info.HasValidVisa = false
	require.NoError(t, v.Validate(info))
}

func TestValidateMissingFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.PersonalInfo)
		message string
	}{
		{"title", func(i *domain.PersonalInfo) { i.Title = "" }, "please fill in title"},
		{"given name", func(i *domain.PersonalInfo) { i.GivenName = "" }, "please fill in given name"},
		{"surname", func(i *domain.PersonalInfo) { i.Surname = "" }, "please fill in surname"},
		{"country of residence", func(i *domain.PersonalInfo) { i.CountryOfResidence = "" }, "please fill in country of residence"},
		{"nationality", func(i *domain.PersonalInfo) { i.Nationality = "" }, "please fill in nationality"},
		{"birth date", func(i *domain.PersonalInfo) { i.BirthDate = "" }, "please fill in birth date"},
		{"passport number", func(i *domain.PersonalInfo) { i.PassportNumber = "" }, "please fill in passport number"},
		{"passport issue country", func(i *domain.PersonalInfo) { i.PassportIssueCountry = "" }, "please fill in passport issue country"},
		{"passport issue date", func(i *domain.PersonalInfo) { i.PassportIssueDate = "" }, "please fill in passport issue date"},
		{"passport expiration date", func(i *domain.PersonalInfo) { i.PassportExpirationDate = "" }, "please fill in passport expiration date"},
		{"email", func(i *domain.PersonalInfo) { i.Email = "" }, "please fill in email"},
		{"phone", func(i *domain.PersonalInfo) { i.Phone = "" }, "please fill in phone"},
	}

	v := NewValidatorAt(fixedNow)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := validInfo()
			tt.mutate(&info)
			err := v.Validate(info)
			require.Error(t, err)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.message, verr.Message)
		})
	}
}

func TestValidateReportsFirstMissingField(t *testing.T) {
	v := NewValidatorAt(fixedNow)
	info := validInfo()
	info.Surname = ""
	info.Phone = ""

	err := v.Validate(info)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "surname", verr.Field)
}

func TestValidateDateRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.PersonalInfo)
		message string
	}{
		{"birth date in future", func(i *domain.PersonalInfo) { i.BirthDate = "2030-01-01" }, "birth date must be in the past"},
		{"birth date today", func(i *domain.PersonalInfo) { i.BirthDate = "2026-03-15" }, "birth date must be in the past"},
		{"birth date garbage", func(i *domain.PersonalInfo) { i.BirthDate = "20/06/1985" }, "invalid date"},
		{"passport expired", func(i *domain.PersonalInfo) { i.PassportExpirationDate = "2025-01-01" }, "passport expired"},
		{"passport expires today", func(i *domain.PersonalInfo) { i.PassportExpirationDate = "2026-03-15" }, "passport expired"},
		{"expiration garbage", func(i *domain.PersonalInfo) { i.PassportExpirationDate = "not-a-date" }, "invalid date"},
		{"issue after expiration", func(i *domain.PersonalInfo) { i.PassportIssueDate = "2031-01-01" }, "issue date after expiration"},
		{"issue garbage", func(i *domain.PersonalInfo) { i.PassportIssueDate = "10.01.2020" }, "invalid date"},
	}

	v := NewValidatorAt(fixedNow)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := validInfo()
			tt.mutate(&info)
			err := v.Validate(info)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.message, verr.Message)
		})
	}
}

// The presence checks run before any date parsing, so a future birth date
// does not surface while a field is still blank.
func TestValidateMissingFieldsBeforeDates(t *testing.T) {
	v := NewValidatorAt(fixedNow)
	info := validInfo()
	info.Nationality = ""
	info.BirthDate = "2099-01-01"

	err := v.Validate(info)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "please fill in nationality", verr.Message)
}

func TestValidateBirthRuleBeforeExpiration(t *testing.T) {
	v := NewValidatorAt(fixedNow)
	info := validInfo()
	info.BirthDate = "2099-01-01"
	info.PassportExpirationDate = "2020-01-01"

	err := v.Validate(info)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "birth date must be in the past", verr.Message)
}
