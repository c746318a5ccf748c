// Package memstore is an in-memory stand-in for the customers and
// milk_entries tables, for tests only; no binary imports it. It reproduces
// the constraints the service relies on: unique customer ids, the entries
// foreign key and ON DELETE CASCADE. Errors carry the same SQLSTATE codes
// PostgreSQL returns.
package memstore

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
	customersModels "github.com/sangkips/dairy-collection-service/internal/domains/customers/models"
	entriesModels "github.com/sangkips/dairy-collection-service/internal/domains/entries/models"
)

type Store struct {
	mu          sync.Mutex
	customers   map[string]customersModels.Customer
	entries     []entriesModels.MilkEntry
	nextEntryID int64
	failure     error
}

func New() *Store {
	return &Store{
		customers:   make(map[string]customersModels.Customer),
		nextEntryID: 1,
	}
}

// SetFailure makes every following call return err, simulating an outage.
// Pass nil to recover.
func (s *Store) SetFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = err
}

// EntryCount returns the number of stored entries across all customers.
func (s *Store) EntryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) ListCustomers(ctx context.Context) ([]customersModels.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return nil, s.failure
	}

	items := make([]customersModels.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		items = append(items, c)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *Store) GetCustomer(ctx context.Context, id string) (customersModels.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return customersModels.Customer{}, s.failure
	}

	c, ok := s.customers[id]
	if !ok {
		return customersModels.Customer{}, sql.ErrNoRows
	}
	return c, nil
}

func (s *Store) CreateCustomer(ctx context.Context, arg customersModels.CreateCustomerParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return s.failure
	}

	if _, exists := s.customers[arg.ID]; exists {
		return &pgconn.PgError{
			Severity:       "ERROR",
			Code:           "23505",
			Message:        `duplicate key value violates unique constraint "customers_pkey"`,
			TableName:      "customers",
			ConstraintName: "customers_pkey",
		}
	}
	s.customers[arg.ID] = customersModels.Customer{ID: arg.ID, Name: arg.Name, Mobile: arg.Mobile}
	return nil
}

func (s *Store) DeleteCustomer(ctx context.Context, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return 0, s.failure
	}

	if _, ok := s.customers[id]; !ok {
		return 0, nil
	}
	delete(s.customers, id)

	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.CustomerID != id {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	return 1, nil
}

func (s *Store) CreateMilkEntry(ctx context.Context, arg entriesModels.CreateMilkEntryParams) (entriesModels.MilkEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return entriesModels.MilkEntry{}, s.failure
	}

	if _, ok := s.customers[arg.CustomerID]; !ok {
		return entriesModels.MilkEntry{}, &pgconn.PgError{
			Severity:       "ERROR",
			Code:           "23503",
			Message:        `insert or update on table "milk_entries" violates foreign key constraint "milk_entries_customer_id_fkey"`,
			TableName:      "milk_entries",
			ConstraintName: "milk_entries_customer_id_fkey",
		}
	}

	entry := entriesModels.MilkEntry{
		EntryID:    s.nextEntryID,
		CustomerID: arg.CustomerID,
		Date:       arg.Date,
		Liters:     arg.Liters,
		Fat:        arg.Fat,
		Amount:     arg.Amount,
	}
	s.nextEntryID++
	s.entries = append(s.entries, entry)
	return entry, nil
}

func (s *Store) ListMilkEntriesByCustomer(ctx context.Context, customerID string) ([]entriesModels.MilkEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return nil, s.failure
	}

	items := []entriesModels.MilkEntry{}
	for _, e := range s.entries {
		if e.CustomerID == customerID {
			items = append(items, e)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.After(items[j].Date)
		}
		return items[i].EntryID > items[j].EntryID
	})
	return items, nil
}
