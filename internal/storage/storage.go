package storage

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/denizokt/spendtrack/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// ErrConflict indicates a write touched zero rows while the record
// still exists. Callers are expected to propagate it, not recover.
var ErrConflict = errors.New("concurrent update conflict")

// UserStore captures persistence operations needed by the auth handlers.
type UserStore interface {
	// RegisterUser inserts the person and their login identity as one
	// unit; neither row is kept if the other insert fails.
	RegisterUser(ctx context.Context, person models.Person, user models.User) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
}

// PersonStore captures persistence operations over persons.
type PersonStore interface {
	ListPersons(ctx context.Context) ([]models.Person, error)
	GetPerson(ctx context.Context, id int64) (models.Person, error)
	CreatePerson(ctx context.Context, person models.Person) (models.Person, error)
	UpdatePerson(ctx context.Context, person models.Person) error
	DeletePerson(ctx context.Context, id int64) error
	// TotalSpending sums transaction amounts for the person; zero when
	// the person has no transactions or does not exist.
	TotalSpending(ctx context.Context, personID int64) (decimal.Decimal, error)
}

// TransactionStore captures persistence operations over transactions.
type TransactionStore interface {
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	GetTransaction(ctx context.Context, id int64) (models.Transaction, error)
	CreateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	UpdateTransaction(ctx context.Context, tx models.Transaction) error
	DeleteTransaction(ctx context.Context, id int64) error
}

// Store bundles the per-entity interfaces implemented by the Postgres store.
type Store interface {
	UserStore
	PersonStore
	TransactionStore
}
