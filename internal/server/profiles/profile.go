// Package profiles materializes a stored user profile when Cognito confirms a
// new account. The PostConfirmation trigger hands the confirmed user's
// attributes to Handler, which writes one profile through a Repository.
package profiles

import "time"

// TimestampLayout is ISO 8601 in UTC with milliseconds.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Attribute names read from the confirmation event.
const (
	attrPreferredUsername = "preferred_username"
	attrEmail             = "email"
	attrBirthdate         = "birthdate"
	attrGender            = "gender"
	attrNationality       = "custom:nationality"
	attrAllergies         = "custom:allergies"
	attrPhoneNumber       = "phone_number"
)

// Profile is one row of the profile store. Absent attributes are stored as
// empty strings.
type Profile struct {
	UserID      string `dynamodbav:"userId" json:"userId"`
	Username    string `dynamodbav:"username" json:"username"`
	Email       string `dynamodbav:"email" json:"email"`
	Birthdate   string `dynamodbav:"birthdate" json:"birthdate"`
	Gender      string `dynamodbav:"gender" json:"gender"`
	Nationality string `dynamodbav:"nationality" json:"nationality"`
	Allergies   string `dynamodbav:"allergies" json:"allergies"`
	PhoneNumber string `dynamodbav:"phoneNumber" json:"phoneNumber"`
	CreatedAt   string `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt   string `dynamodbav:"updatedAt" json:"updatedAt"`
}

// FromAttributes builds the profile of the pool user userName. The display
// username falls back to userName when preferred_username is missing.
func FromAttributes(userName string, attrs map[string]string, now time.Time) Profile {
	ts := now.UTC().Format(TimestampLayout)

	username := attrs[attrPreferredUsername]
	if username == "" {
		username = userName
	}

	return Profile{
		UserID:      userName,
		Username:    username,
		Email:       attrs[attrEmail],
		Birthdate:   attrs[attrBirthdate],
		Gender:      attrs[attrGender],
		Nationality: attrs[attrNationality],
		Allergies:   attrs[attrAllergies],
		PhoneNumber: attrs[attrPhoneNumber],
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}
