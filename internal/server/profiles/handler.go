package profiles

import (
	"context"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/dmitrijs2005/cooksocial/internal/logging"
)

type Handler struct {
	repo Repository
	log  logging.Logger
	now  func() time.Time
}

func NewHandler(repo Repository, log logging.Logger) *Handler {
	return &Handler{
		repo: repo,
		log:  log.With("module", "profiles"),
		now:  time.Now,
	}
}

// Handle writes the confirmed user's profile. A failed write is logged and
// swallowed: the event is always handed back with a nil error so that the
// user's confirmation is never rolled back by the profile store.
func (h *Handler) Handle(ctx context.Context, event events.CognitoEventUserPoolsPostConfirmation) (events.CognitoEventUserPoolsPostConfirmation, error) {
	p := FromAttributes(event.UserName, event.Request.UserAttributes, h.now())

	if err := h.repo.Put(ctx, p); err != nil {
		h.log.Error(ctx, "Error creating user profile", "userId", p.UserID, "error", err)
		return event, nil
	}

	h.log.Info(ctx, "User profile created successfully", "profile", p)
	return event, nil
}
