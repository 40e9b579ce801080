// Package tokens caches the identity provider's tokens between runs of the
// client, so a restarted client can find the previous session.
package tokens

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/cooksocial/internal/common"
)

// Tokens is what a successful sign-in leaves behind.
type Tokens struct {
	Username     string
	AccessToken  string
	IDToken      string
	RefreshToken string
}

// Empty reports whether there is nothing usable to resume a session with.
func (t Tokens) Empty() bool {
	return t.AccessToken == "" && t.RefreshToken == ""
}

// Store persists a single set of tokens. Load returns common.ErrorNotFound
// when nothing is cached.
type Store interface {
	Load(ctx context.Context) (Tokens, error)
	Save(ctx context.Context, t Tokens) error
	Clear(ctx context.Context) error
}

// MemoryStore keeps tokens for the lifetime of the process only.
type MemoryStore struct {
	mu sync.Mutex
	t  Tokens
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(ctx context.Context) (Tokens, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.t.Empty() {
		return Tokens{}, common.ErrorNotFound
	}
	return m.t, nil
}

func (m *MemoryStore) Save(ctx context.Context, t Tokens) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.t = t
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.t = Tokens{}
	return nil
}
