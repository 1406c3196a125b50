package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/denizokt/spendtrack/internal/models"
	"github.com/denizokt/spendtrack/internal/storage"
)

// ListPersons returns all persons, each with their transactions.
func (s *Store) ListPersons(ctx context.Context) ([]models.Person, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, email FROM persons ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var persons []models.Person
	index := make(map[int64]int)
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Email); err != nil {
			return nil, err
		}
		p.Transactions = []models.Transaction{}
		index[p.ID] = len(persons)
		persons = append(persons, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	txRows, err := s.pool.Query(ctx,
		`SELECT id, description, amount, date, person_id FROM transactions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer txRows.Close()

	for txRows.Next() {
		var t models.Transaction
		if err := txRows.Scan(&t.ID, &t.Description, &t.Amount, &t.Date, &t.PersonID); err != nil {
			return nil, err
		}
		if i, ok := index[t.PersonID]; ok {
			persons[i].Transactions = append(persons[i].Transactions, t)
		}
	}
	return persons, txRows.Err()
}

// GetPerson fetches a person by id, including their transactions.
func (s *Store) GetPerson(ctx context.Context, id int64) (models.Person, error) {
	row := s.pool.QueryRow(ctx, `SELECT id, name, email FROM persons WHERE id = $1`, id)

	var p models.Person
	if err := row.Scan(&p.ID, &p.Name, &p.Email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Person{}, storage.ErrNotFound
		}
		return models.Person{}, err
	}

	p.Transactions = []models.Transaction{}
	txRows, err := s.pool.Query(ctx,
		`SELECT id, description, amount, date, person_id FROM transactions WHERE person_id = $1 ORDER BY id`, id)
	if err != nil {
		return models.Person{}, err
	}
	defer txRows.Close()

	for txRows.Next() {
		var t models.Transaction
		if err := txRows.Scan(&t.ID, &t.Description, &t.Amount, &t.Date, &t.PersonID); err != nil {
			return models.Person{}, err
		}
		p.Transactions = append(p.Transactions, t)
	}
	return p, txRows.Err()
}

// CreatePerson inserts a new person row and returns it with the
// generated id.
func (s *Store) CreatePerson(ctx context.Context, person models.Person) (models.Person, error) {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO persons (name, email) VALUES ($1, $2) RETURNING id`,
		person.Name, person.Email,
	).Scan(&person.ID)
	if err != nil {
		return models.Person{}, fmt.Errorf("insert person: %w", err)
	}
	if person.Transactions == nil {
		person.Transactions = []models.Transaction{}
	}
	return person, nil
}

// UpdatePerson attempts the write first and inspects existence only
// when zero rows were touched: a missing row is ErrNotFound, a row
// that still exists is ErrConflict and surfaces to the caller.
func (s *Store) UpdatePerson(ctx context.Context, person models.Person) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE persons SET name = $2, email = $3 WHERE id = $1`,
		person.ID, person.Name, person.Email,
	)
	if err != nil {
		return fmt.Errorf("update person: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return s.resolveZeroRowWrite(ctx, `SELECT EXISTS (SELECT 1 FROM persons WHERE id = $1)`, person.ID)
	}
	return nil
}

// DeletePerson removes a person; their transactions and login identity
// go with them via the cascade constraints.
func (s *Store) DeletePerson(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM persons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete person: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// TotalSpending sums transaction amounts for a person. A person with
// no transactions, or no person at all, sums to zero.
func (s *Store) TotalSpending(ctx context.Context, personID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE person_id = $1`,
		personID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (s *Store) resolveZeroRowWrite(ctx context.Context, existsQuery string, id int64) error {
	var exists bool
	if err := s.pool.QueryRow(ctx, existsQuery, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return storage.ErrNotFound
	}
	return storage.ErrConflict
}
