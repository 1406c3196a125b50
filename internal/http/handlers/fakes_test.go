package handlers

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/denizokt/spendtrack/internal/models"
	"github.com/denizokt/spendtrack/internal/storage"
)

// fakeStore is an in-memory storage.Store with the same observable
// semantics as the Postgres implementation: cascade deletes, zero sum
// for unknown persons, write-first update conflicts.
type fakeStore struct {
	mu      sync.Mutex
	nextID  int64
	persons map[int64]models.Person
	users   map[string]models.User
	txs     map[int64]models.Transaction

	// forceConflict makes updates report zero rows affected while the
	// row still exists.
	forceConflict bool
	// failWith, when set, is returned from every operation.
	failWith error
}

var _ storage.Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		persons: make(map[int64]models.Person),
		users:   make(map[string]models.User),
		txs:     make(map[int64]models.Transaction),
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) RegisterUser(_ context.Context, person models.Person, user models.User) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return models.User{}, f.failWith
	}
	if _, exists := f.users[user.Username]; exists {
		return models.User{}, storage.ErrAlreadyExists
	}
	person.ID = f.id()
	f.persons[person.ID] = person
	user.ID = f.id()
	user.PersonID = person.ID
	f.users[user.Username] = user
	return user, nil
}

func (f *fakeStore) FindByUsername(_ context.Context, username string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return models.User{}, f.failWith
	}
	user, ok := f.users[username]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

func (f *fakeStore) transactionsOf(personID int64) []models.Transaction {
	out := []models.Transaction{}
	for _, tx := range f.txs {
		if tx.PersonID == personID {
			out = append(out, tx)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeStore) ListPersons(_ context.Context) ([]models.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := []models.Person{}
	for _, p := range f.persons {
		p.Transactions = f.transactionsOf(p.ID)
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) GetPerson(_ context.Context, id int64) (models.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return models.Person{}, f.failWith
	}
	p, ok := f.persons[id]
	if !ok {
		return models.Person{}, storage.ErrNotFound
	}
	p.Transactions = f.transactionsOf(id)
	return p, nil
}

func (f *fakeStore) CreatePerson(_ context.Context, person models.Person) (models.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return models.Person{}, f.failWith
	}
	person.ID = f.id()
	person.Transactions = []models.Transaction{}
	f.persons[person.ID] = person
	return person, nil
}

func (f *fakeStore) UpdatePerson(_ context.Context, person models.Person) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.persons[person.ID]; !ok {
		return storage.ErrNotFound
	}
	if f.forceConflict {
		return storage.ErrConflict
	}
	f.persons[person.ID] = person
	return nil
}

func (f *fakeStore) DeletePerson(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.persons[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.persons, id)
	for txID, tx := range f.txs {
		if tx.PersonID == id {
			delete(f.txs, txID)
		}
	}
	for username, user := range f.users {
		if user.PersonID == id {
			delete(f.users, username)
		}
	}
	return nil
}

func (f *fakeStore) TotalSpending(_ context.Context, personID int64) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return decimal.Zero, f.failWith
	}
	total := decimal.Zero
	for _, tx := range f.txs {
		if tx.PersonID == personID {
			total = total.Add(tx.Amount)
		}
	}
	return total, nil
}

func (f *fakeStore) ListTransactions(_ context.Context) ([]models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := []models.Transaction{}
	for _, tx := range f.txs {
		out = append(out, tx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) GetTransaction(_ context.Context, id int64) (models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return models.Transaction{}, f.failWith
	}
	tx, ok := f.txs[id]
	if !ok {
		return models.Transaction{}, storage.ErrNotFound
	}
	return tx, nil
}

func (f *fakeStore) CreateTransaction(_ context.Context, tx models.Transaction) (models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return models.Transaction{}, f.failWith
	}
	tx.ID = f.id()
	f.txs[tx.ID] = tx
	return tx, nil
}

func (f *fakeStore) UpdateTransaction(_ context.Context, tx models.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.txs[tx.ID]; !ok {
		return storage.ErrNotFound
	}
	if f.forceConflict {
		return storage.ErrConflict
	}
	f.txs[tx.ID] = tx
	return nil
}

func (f *fakeStore) DeleteTransaction(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.txs[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.txs, id)
	return nil
}
