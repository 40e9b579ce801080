package profiles

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cooksocial/internal/dbx"
	"github.com/dmitrijs2005/cooksocial/internal/server/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

var gooseUpContext = goose.UpContext

// RunMigrations applies the embedded profile schema.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("goose dialect error: %w", err)
	}

	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	return nil
}

const upsertProfile = `
INSERT INTO user_profiles (
    user_id, username, email, birthdate, gender,
    nationality, allergies, phone_number, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (user_id) DO UPDATE SET
    username     = EXCLUDED.username,
    email        = EXCLUDED.email,
    birthdate    = EXCLUDED.birthdate,
    gender       = EXCLUDED.gender,
    nationality  = EXCLUDED.nationality,
    allergies    = EXCLUDED.allergies,
    phone_number = EXCLUDED.phone_number,
    created_at   = EXCLUDED.created_at,
    updated_at   = EXCLUDED.updated_at`

// PostgresRepository stores profiles in the user_profiles table. A second
// Put for the same user replaces the row, matching DynamoDB PutItem.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Put(ctx context.Context, p Profile) error {
	createdAt, err := time.Parse(time.RFC3339Nano, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("created_at error: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("updated_at error: %w", err)
	}

	_, err = r.db.ExecContext(ctx, upsertProfile,
		p.UserID, p.Username, p.Email, p.Birthdate, p.Gender,
		p.Nationality, p.Allergies, p.PhoneNumber, createdAt, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert profile error: %w", err)
	}
	return nil
}
