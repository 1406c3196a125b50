package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/denizokt/spendtrack/internal/models"
	"github.com/denizokt/spendtrack/internal/storage"
)

// ListTransactions returns all transactions ordered by id.
func (s *Store) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, description, amount, date, person_id FROM transactions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txs := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.Description, &t.Amount, &t.Date, &t.PersonID); err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// GetTransaction fetches a transaction by id.
func (s *Store) GetTransaction(ctx context.Context, id int64) (models.Transaction, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, description, amount, date, person_id FROM transactions WHERE id = $1`, id)

	var t models.Transaction
	if err := row.Scan(&t.ID, &t.Description, &t.Amount, &t.Date, &t.PersonID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Transaction{}, storage.ErrNotFound
		}
		return models.Transaction{}, err
	}
	return t, nil
}

// CreateTransaction inserts a new transaction row and returns it with
// the generated id. A zero date defaults to now on the database side.
func (s *Store) CreateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	var err error
	if tx.Date.IsZero() {
		err = s.pool.QueryRow(ctx,
			`INSERT INTO transactions (description, amount, person_id) VALUES ($1, $2, $3) RETURNING id, date`,
			tx.Description, tx.Amount, tx.PersonID,
		).Scan(&tx.ID, &tx.Date)
	} else {
		err = s.pool.QueryRow(ctx,
			`INSERT INTO transactions (description, amount, date, person_id) VALUES ($1, $2, $3, $4) RETURNING id`,
			tx.Description, tx.Amount, tx.Date, tx.PersonID,
		).Scan(&tx.ID)
	}
	if err != nil {
		return models.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	return tx, nil
}

// UpdateTransaction follows the same write-first pattern as
// UpdatePerson.
func (s *Store) UpdateTransaction(ctx context.Context, tx models.Transaction) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE transactions SET description = $2, amount = $3, date = $4, person_id = $5 WHERE id = $1`,
		tx.ID, tx.Description, tx.Amount, tx.Date, tx.PersonID,
	)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return s.resolveZeroRowWrite(ctx, `SELECT EXISTS (SELECT 1 FROM transactions WHERE id = $1)`, tx.ID)
	}
	return nil
}

// DeleteTransaction removes a transaction by id.
func (s *Store) DeleteTransaction(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
