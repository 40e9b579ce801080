package tokens

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/cooksocial/internal/common"
	"github.com/dmitrijs2005/cooksocial/internal/dbx"
)

const (
	keyUsername     = "auth.username"
	keyAccessToken  = "auth.access_token"
	keyIDToken      = "auth.id_token"
	keyRefreshToken = "auth.refresh_token"
)

// SQLiteStore keeps tokens as rows of the metadata key/value table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Load(ctx context.Context) (Tokens, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM metadata WHERE key IN (?, ?, ?, ?)`,
		keyUsername, keyAccessToken, keyIDToken, keyRefreshToken)
	if err != nil {
		return Tokens{}, fmt.Errorf("load tokens error: %w", err)
	}
	defer rows.Close()

	var t Tokens
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return Tokens{}, fmt.Errorf("scan tokens error: %w", err)
		}
		switch key {
		case keyUsername:
			t.Username = string(value)
		case keyAccessToken:
			t.AccessToken = string(value)
		case keyIDToken:
			t.IDToken = string(value)
		case keyRefreshToken:
			t.RefreshToken = string(value)
		}
	}
	if err := rows.Err(); err != nil {
		return Tokens{}, fmt.Errorf("iterate tokens error: %w", err)
	}

	if t.Empty() {
		return Tokens{}, common.ErrorNotFound
	}
	return t, nil
}

// Save replaces the cached tokens in one transaction, so a crash never leaves
// an access token paired with someone else's refresh token.
func (s *SQLiteStore) Save(ctx context.Context, t Tokens) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		pairs := [][2]string{
			{keyUsername, t.Username},
			{keyAccessToken, t.AccessToken},
			{keyIDToken, t.IDToken},
			{keyRefreshToken, t.RefreshToken},
		}
		for _, p := range pairs {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO metadata (key, value) VALUES (?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value
			`, p[0], []byte(p[1]))
			if err != nil {
				return fmt.Errorf("save %s error: %w", p[0], err)
			}
		}
		return nil
	})
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM metadata WHERE key IN (?, ?, ?, ?)`,
		keyUsername, keyAccessToken, keyIDToken, keyRefreshToken)
	if err != nil {
		return fmt.Errorf("clear tokens error: %w", err)
	}
	return nil
}
