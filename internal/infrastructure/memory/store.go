// Package memory is an in-process implementation of the repository ports.
// A transaction works on a copy of the state and replaces it on commit; the
// store mutex is held for the whole transaction, so it doubles as the row
// lock taken by LockByIDAndOwner.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/gst-invoicing-api/internal/application/billing"
	"github.com/jhoicas/gst-invoicing-api/internal/domain/entity"
	"github.com/jhoicas/gst-invoicing-api/internal/domain/repository"
)

// Operation names accepted by Store.FailOn.
const (
	OpCreateInvoice = "create_invoice"
	OpCreateItems   = "create_items"
	OpUpdateInvoice = "update_invoice"
	OpDeleteItems   = "delete_items"
)

type state struct {
	factories map[string]entity.Factory
	customers map[string]entity.Customer
	invoices  map[string]entity.Invoice
	items     map[string][]entity.InvoiceItem // by invoice id
	created   map[string]int64                // invoice id -> insertion sequence
	seq       int64
}

func newState() *state {
	return &state{
		factories: map[string]entity.Factory{},
		customers: map[string]entity.Customer{},
		invoices:  map[string]entity.Invoice{},
		items:     map[string][]entity.InvoiceItem{},
		created:   map[string]int64{},
	}
}

func (s *state) clone() *state {
	c := &state{
		factories: make(map[string]entity.Factory, len(s.factories)),
		customers: make(map[string]entity.Customer, len(s.customers)),
		invoices:  make(map[string]entity.Invoice, len(s.invoices)),
		items:     make(map[string][]entity.InvoiceItem, len(s.items)),
		created:   make(map[string]int64, len(s.created)),
		seq:       s.seq,
	}
	for k, v := range s.factories {
		c.factories[k] = v
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.invoices {
		c.invoices[k] = v
	}
	for k, v := range s.items {
		c.items[k] = append([]entity.InvoiceItem(nil), v...)
	}
	for k, v := range s.created {
		c.created[k] = v
	}
	return c
}

// Store holds all data in memory. The zero value is not usable; call NewStore.
type Store struct {
	mu       sync.RWMutex
	st       *state
	failures map[string]error
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{st: newState(), failures: map[string]error{}}
}

var _ billing.BillingTxRunner = (*Store)(nil)

// RunBilling runs fn against a private copy of the state and publishes it
// when fn succeeds. Transactions are serialized.
func (s *Store) RunBilling(ctx context.Context, fn func(
	factoryRepo repository.FactoryRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.st.clone()
	if err := fn(&FactoryRepository{store: s, tx: tx}, &InvoiceRepository{store: s, tx: tx}); err != nil {
		return err
	}
	s.st = tx
	return nil
}

// FailOn makes the named operation return err until cleared with a nil err.
// It lets tests exercise rollback paths.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// Factories returns a repository outside any transaction.
func (s *Store) Factories() *FactoryRepository { return &FactoryRepository{store: s} }

// Customers returns a repository outside any transaction.
func (s *Store) Customers() *CustomerRepository { return &CustomerRepository{store: s} }

// Invoices returns a repository outside any transaction.
func (s *Store) Invoices() *InvoiceRepository { return &InvoiceRepository{store: s} }

// Analytics returns the dashboard query repository.
func (s *Store) Analytics() *AnalyticsRepository { return &AnalyticsRepository{store: s} }

// read runs fn on tx, or on the committed state under a read lock.
func (s *Store) read(tx *state, fn func(st *state) error) error {
	if tx != nil {
		return fn(tx)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.st)
}

// write runs fn on tx, or on the committed state under the write lock.
// The failure registered for op, if any, is returned instead.
func (s *Store) write(tx *state, op string, fn func(st *state) error) error {
	if tx != nil {
		if err := s.failures[op]; err != nil {
			return err
		}
		return fn(tx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failures[op]; err != nil {
		return err
	}
	return fn(s.st)
}
