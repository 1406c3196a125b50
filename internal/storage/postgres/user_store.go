package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/denizokt/spendtrack/internal/models"
	"github.com/denizokt/spendtrack/internal/storage"
)

// Ensure Store satisfies the storage interfaces at compile time.
var _ storage.Store = (*Store)(nil)

// RegisterUser inserts the person and the user inside one transaction
// so a failed second insert leaves no orphaned person row.
func (s *Store) RegisterUser(ctx context.Context, person models.Person, user models.User) (models.User, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("begin register: %w", err)
	}
	defer tx.Rollback(ctx)

	var personID int64
	err = tx.QueryRow(ctx,
		`INSERT INTO persons (name, email) VALUES ($1, $2) RETURNING id`,
		person.Name, person.Email,
	).Scan(&personID)
	if err != nil {
		return models.User{}, fmt.Errorf("insert person: %w", err)
	}

	created := user
	created.PersonID = personID
	err = tx.QueryRow(ctx,
		`INSERT INTO users (username, password_hash, person_id) VALUES ($1, $2, $3) RETURNING id`,
		user.Username, user.PasswordHash, personID,
	).Scan(&created.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.User{}, fmt.Errorf("commit register: %w", err)
	}
	return created, nil
}

// FindByUsername fetches a user by username.
func (s *Store) FindByUsername(ctx context.Context, username string) (models.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, person_id FROM users WHERE username = $1`,
		username,
	)

	var user models.User
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.PersonID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
