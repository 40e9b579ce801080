package profiles

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/dmitrijs2005/cooksocial/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	puts []Profile
	err  error
}

func (f *fakeRepo) Put(_ context.Context, p Profile) error {
	f.puts = append(f.puts, p)
	return f.err
}

func confirmationEvent() events.CognitoEventUserPoolsPostConfirmation {
	var ev events.CognitoEventUserPoolsPostConfirmation
	ev.Version = "1"
	ev.TriggerSource = "PostConfirmation_ConfirmSignUp"
	ev.Region = "us-east-1"
	ev.UserPoolID = "us-east-1_abc"
	ev.UserName = "3f1c9a2e-user"
	ev.Request.UserAttributes = map[string]string{
		"preferred_username": "chef_anna",
		"email":              "anna@example.com",
	}
	return ev
}

func newTestHandler(repo Repository, buf *bytes.Buffer) *Handler {
	h := NewHandler(repo, logging.NewJSONLogger(buf, "info"))
	h.now = func() time.Time { return fixedNow }
	return h
}

func TestHandler_WritesProfileAndReturnsEvent(t *testing.T) {
	repo := &fakeRepo{}
	var buf bytes.Buffer
	h := newTestHandler(repo, &buf)

	ev := confirmationEvent()
	got, err := h.Handle(context.Background(), ev)
	require.NoError(t, err)
	assert.Equal(t, ev, got)

	require.Len(t, repo.puts, 1)
	p := repo.puts[0]
	assert.Equal(t, "3f1c9a2e-user", p.UserID)
	assert.Equal(t, "chef_anna", p.Username)
	assert.Equal(t, "anna@example.com", p.Email)
	assert.Equal(t, "", p.PhoneNumber)
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)

	assert.Contains(t, buf.String(), "User profile created successfully")
	assert.Contains(t, buf.String(), `"module":"profiles"`)
}

func TestHandler_StoreFailureIsSwallowed(t *testing.T) {
	repo := &fakeRepo{err: errors.New("table not found")}
	var buf bytes.Buffer
	h := newTestHandler(repo, &buf)

	ev := confirmationEvent()
	got, err := h.Handle(context.Background(), ev)
	require.NoError(t, err)
	assert.Equal(t, ev, got)
	assert.Len(t, repo.puts, 1)

	assert.Contains(t, buf.String(), "Error creating user profile")
	assert.Contains(t, buf.String(), "table not found")
	assert.NotContains(t, buf.String(), "created successfully")
}

func TestHandler_UnavailableStoreStillConfirms(t *testing.T) {
	cause := errors.New("migration error: permission denied")
	var buf bytes.Buffer
	h := newTestHandler(NewUnavailableRepository(cause), &buf)

	ev := confirmationEvent()
	got, err := h.Handle(context.Background(), ev)
	require.NoError(t, err)
	assert.Equal(t, ev, got)
	assert.Contains(t, buf.String(), "Error creating user profile")
	assert.Contains(t, buf.String(), "profile store unavailable")
}

func TestUnavailableRepository_WrapsCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := NewUnavailableRepository(cause).Put(context.Background(), Profile{UserID: "u"})
	require.ErrorIs(t, err, cause)
}
