package gateway

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/cooksocial/internal/logging"
	"github.com/google/uuid"
)

type demoUser struct {
	id       string
	username string
	password string
	email    string
}

// Demo is an in-memory identity provider. Registered users and the current
// session last as long as the value does. Users may sign in with their
// username or their email address.
type Demo struct {
	log logging.Logger

	mu      sync.Mutex
	users   map[string]*demoUser // by username
	current *demoUser
}

func NewDemo(log logging.Logger) *Demo {
	return &Demo{
		log:   log.With("module", "gateway", "provider", "demo"),
		users: make(map[string]*demoUser),
	}
}

func (d *Demo) SignUp(ctx context.Context, in SignUpInput) (*SignUpResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.users[in.Username]; ok {
		return nil, newError(ErrConflict, "User already exists")
	}

	email := in.Attributes[AttrEmail]
	if email != "" && d.byEmail(email) != nil {
		return nil, newError(ErrConflict, "An account with the given email already exists.")
	}

	u := &demoUser{
		id:       uuid.NewString(),
		username: in.Username,
		password: in.Password,
		email:    email,
	}
	d.users[u.username] = u

	d.log.Info(ctx, "user signed up", "username", u.username)
	return &SignUpResult{UserID: u.id, Confirmed: true}, nil
}

func (d *Demo) SignIn(ctx context.Context, username, password string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	u, ok := d.users[username]
	if !ok {
		u = d.byEmail(username)
	}
	if u == nil || u.password != password {
		return newError(ErrNotAuthorized, "Incorrect username or password.")
	}

	d.current = u
	return nil
}

func (d *Demo) SignOut(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.current = nil
	return nil
}

func (d *Demo) CurrentUser(ctx context.Context) (*User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.current == nil {
		return nil, newError(ErrNoSession, "The user is not authenticated")
	}
	return &User{UserID: d.current.id, Username: d.current.username}, nil
}

func (d *Demo) byEmail(email string) *demoUser {
	for _, u := range d.users {
		if u.email != "" && strings.EqualFold(u.email, email) {
			return u
		}
	}
	return nil
}
