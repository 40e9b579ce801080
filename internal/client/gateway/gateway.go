// Package gateway talks to the identity provider on behalf of the auth
// controller. Two implementations exist: Cognito, backed by an Amazon Cognito
// user pool, and Demo, an in-process stand-in for offline use and tests.
//
// Every error returned by a Gateway is a *Error whose Message is the
// provider's own text, fit to be shown to the user as is.
package gateway

import (
	"context"
	"errors"
)

// Attribute keys of the user pool.
const (
	AttrEmail             = "email"
	AttrBirthdate         = "birthdate"
	AttrGender            = "gender"
	AttrPreferredUsername = "preferred_username"
	AttrPhoneNumber       = "phone_number"
	AttrNationality       = "custom:nationality"
	AttrAllergies         = "custom:allergies"
	AttrSub               = "sub"
)

// Error kinds. Match with errors.Is on a returned error.
var (
	ErrValidation    = errors.New("validation")
	ErrConflict      = errors.New("conflict")
	ErrNetwork       = errors.New("network")
	ErrNotAuthorized = errors.New("not authorized")
	ErrNoSession     = errors.New("no session")
	ErrGateway       = errors.New("gateway")
)

type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

type SignUpInput struct {
	Username string
	Password string
	// Attributes with empty values are not sent.
	Attributes map[string]string
}

type SignUpResult struct {
	UserID    string
	Confirmed bool
}

type User struct {
	UserID   string
	Username string
}

type Gateway interface {
	SignUp(ctx context.Context, in SignUpInput) (*SignUpResult, error)
	SignIn(ctx context.Context, username, password string) error
	SignOut(ctx context.Context) error
	// CurrentUser returns ErrNoSession when nobody is signed in.
	CurrentUser(ctx context.Context) (*User, error)
}

// Message returns the user-facing text of err.
func Message(err error) string {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Message
	}
	return err.Error()
}
