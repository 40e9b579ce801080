// Package services holds the client's application services. The auth
// controller drives sign-up, sign-in, sign-out and the startup session probe
// against an identity gateway and owns the transitions of the session state.
package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/cooksocial/internal/client/gateway"
	"github.com/dmitrijs2005/cooksocial/internal/client/session"
	"github.com/dmitrijs2005/cooksocial/internal/client/validation"
	"github.com/dmitrijs2005/cooksocial/internal/logging"
)

type State int

const (
	StateAnonymous State = iota
	StateAuthenticating
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

var (
	// ErrBusy rejects an operation started while another one is running.
	ErrBusy = errors.New("operation in progress")

	ErrAlreadySignedIn = errors.New("already signed in")
)

// SessionStore is where the controller records who is signed in.
type SessionStore interface {
	Load() (session.Session, bool)
	Set(session.Session)
	Clear()
}

// FeedClearer is the feed, as far as sign-out is concerned.
type FeedClearer interface {
	Clear()
}

type AuthController struct {
	gw       gateway.Gateway
	sessions SessionStore
	feed     FeedClearer
	log      logging.Logger

	mu      sync.Mutex
	loading bool
	state   State
}

func NewAuthController(gw gateway.Gateway, sessions SessionStore, feed FeedClearer, log logging.Logger) *AuthController {
	return &AuthController{
		gw:       gw,
		sessions: sessions,
		feed:     feed,
		log:      log.With("module", "auth"),
	}
}

// SignUp registers a new account. The form is sanitized and fully validated
// before the gateway is called. Success does not sign the user in.
func (a *AuthController) SignUp(ctx context.Context, form validation.SignupForm) error {
	form = form.Sanitized()

	if err := validation.CheckConfirmation(form.Password, form.ConfirmPassword); err != nil {
		return err
	}
	if err := validation.ValidateSignup(form); err != nil {
		return err
	}
	if err := validation.ValidatePasswordStrength(form.Password); err != nil {
		return err
	}

	if err := a.begin(); err != nil {
		return err
	}
	prev := a.State()
	defer a.end(prev)
	a.setState(StateAuthenticating)

	res, err := a.gw.SignUp(ctx, gateway.SignUpInput{
		Username: form.Username,
		Password: form.Password,
		Attributes: map[string]string{
			gateway.AttrEmail:             form.Email,
			gateway.AttrBirthdate:         form.Birthdate,
			gateway.AttrGender:            form.Gender,
			gateway.AttrPreferredUsername: form.Username,
			gateway.AttrNationality:       form.Nationality,
			gateway.AttrAllergies:         form.Allergies,
		},
	})
	if err != nil {
		a.log.Warn(ctx, "sign up failed", "username", form.Username, "error", err)
		return err
	}

	a.log.Info(ctx, "sign up succeeded", "username", form.Username, "confirmed", res != nil && res.Confirmed)
	return nil
}

// SignIn authenticates and, on success, records the session. Any failure
// leaves the controller anonymous.
func (a *AuthController) SignIn(ctx context.Context, creds validation.Credentials) error {
	creds.UsernameOrEmail = validation.Sanitize(creds.UsernameOrEmail)
	if err := validation.ValidateCredentials(creds); err != nil {
		return err
	}

	if err := a.begin(); err != nil {
		return err
	}
	if a.State() == StateAuthenticated {
		a.end(StateAuthenticated)
		return ErrAlreadySignedIn
	}

	final := StateAnonymous
	defer func() { a.end(final) }()
	a.setState(StateAuthenticating)

	if err := a.gw.SignIn(ctx, creds.UsernameOrEmail, creds.Password); err != nil {
		a.log.Warn(ctx, "sign in failed", "login", creds.UsernameOrEmail, "error", err)
		return err
	}

	u, err := a.gw.CurrentUser(ctx)
	if err != nil {
		a.log.Warn(ctx, "current user lookup failed after sign in", "error", err)
		// the gateway may already hold tokens for this user
		if serr := a.gw.SignOut(ctx); serr != nil {
			a.log.Warn(ctx, "sign out after failed lookup failed", "error", serr)
		}
		return err
	}

	a.sessions.Set(session.Session{UserID: u.UserID, Username: u.Username})
	final = StateAuthenticated
	a.log.Info(ctx, "signed in", "username", u.Username)
	return nil
}

// SignOut ends the session at the provider and then drops it locally along
// with the feed. When the provider call fails nothing local changes.
func (a *AuthController) SignOut(ctx context.Context) error {
	if err := a.begin(); err != nil {
		return err
	}
	final := a.State()
	defer func() { a.end(final) }()

	if err := a.gw.SignOut(ctx); err != nil {
		a.log.Error(ctx, "sign out failed", "error", err)
		return err
	}

	a.sessions.Clear()
	a.feed.Clear()
	final = StateAnonymous
	a.log.Info(ctx, "signed out")
	return nil
}

// Restore is the startup probe: it asks the gateway for an existing session
// and reports whether one was found. Failures only mean "not signed in".
func (a *AuthController) Restore(ctx context.Context) bool {
	if err := a.begin(); err != nil {
		return false
	}
	final := StateAnonymous
	defer func() { a.end(final) }()
	a.setState(StateAuthenticating)

	u, err := a.gw.CurrentUser(ctx)
	if err != nil {
		a.log.Debug(ctx, "no session to restore", "error", err)
		a.sessions.Clear()
		return false
	}

	a.sessions.Set(session.Session{UserID: u.UserID, Username: u.Username})
	final = StateAuthenticated
	a.log.Debug(ctx, "session restored", "username", u.Username)
	return true
}

func (a *AuthController) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Loading reports whether a gateway call is in flight.
func (a *AuthController) Loading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loading
}

func (a *AuthController) Session() (session.Session, bool) {
	return a.sessions.Load()
}

func (a *AuthController) begin() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.loading {
		return ErrBusy
	}
	a.loading = true
	return nil
}

func (a *AuthController) end(final State) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.loading = false
	a.state = final
}

func (a *AuthController) setState(s State) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state = s
}

// UserMessage is the text shown for an error returned by the controller.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrBusy):
		return "Please wait for the current request to finish"
	case errors.Is(err, ErrAlreadySignedIn):
		return "There is already a signed in user."
	}
	var ve *validation.ValidationError
	if errors.As(err, &ve) {
		return ve.Reason
	}
	return gateway.Message(err)
}
