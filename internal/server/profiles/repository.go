package profiles

import (
	"context"
	"fmt"
)

// Repository stores profiles. Put overwrites an existing profile with the
// same UserID.
type Repository interface {
	Put(ctx context.Context, p Profile) error
}

// UnavailableRepository stands in for a store that could not be opened.
// Every Put fails with the original cause, so each confirmation is still
// logged by Handler and then allowed through.
type UnavailableRepository struct {
	cause error
}

func NewUnavailableRepository(cause error) *UnavailableRepository {
	return &UnavailableRepository{cause: cause}
}

func (r *UnavailableRepository) Put(context.Context, Profile) error {
	return fmt.Errorf("profile store unavailable: %w", r.cause)
}
