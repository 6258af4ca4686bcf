package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/gst-invoicing-api/internal/domain"
	"github.com/jhoicas/gst-invoicing-api/internal/domain/entity"
	"github.com/jhoicas/gst-invoicing-api/internal/domain/repository"
)

// InvoiceRepository implements repository.InvoiceRepository. Invoice numbers
// are unique per factory, as with the SQL unique index.
type InvoiceRepository struct {
	store *Store
	tx    *state
}

var _ repository.InvoiceRepository = (*InvoiceRepository)(nil)

func (r *InvoiceRepository) Create(ctx context.Context, inv *entity.Invoice) error {
	return r.store.write(r.tx, OpCreateInvoice, func(st *state) error {
		if _, ok := st.factories[inv.FactoryID]; !ok {
			return fmt.Errorf("insert invoice: factory %s does not exist", inv.FactoryID)
		}
		if _, ok := st.invoices[inv.ID]; ok {
			return fmt.Errorf("invoice %s: %w", inv.ID, domain.ErrDuplicate)
		}
		if numberTaken(st, inv.FactoryID, inv.InvoiceNo, "") {
			return fmt.Errorf("invoice number %q: %w", inv.InvoiceNo, domain.ErrDuplicate)
		}
		st.seq++
		st.invoices[inv.ID] = *inv
		st.created[inv.ID] = st.seq
		return nil
	})
}

func (r *InvoiceRepository) CreateItems(ctx context.Context, items []*entity.InvoiceItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.store.write(r.tx, OpCreateItems, func(st *state) error {
		for _, it := range items {
			if _, ok := st.invoices[it.InvoiceID]; !ok {
				return fmt.Errorf("insert items: invoice %s does not exist", it.InvoiceID)
			}
		}
		for _, it := range items {
			st.items[it.InvoiceID] = append(st.items[it.InvoiceID], *it)
		}
		return nil
	})
}

func (r *InvoiceRepository) Update(ctx context.Context, inv *entity.Invoice) error {
	return r.store.write(r.tx, OpUpdateInvoice, func(st *state) error {
		cur, ok := st.invoices[inv.ID]
		if !ok || cur.OwnerID != inv.OwnerID {
			return domain.ErrNotFound
		}
		if numberTaken(st, cur.FactoryID, inv.InvoiceNo, inv.ID) {
			return fmt.Errorf("invoice number %q: %w", inv.InvoiceNo, domain.ErrDuplicate)
		}
		cur.InvoiceNo = inv.InvoiceNo
		cur.Date = inv.Date
		cur.CustomerName = inv.CustomerName
		cur.CustomerAddress = inv.CustomerAddress
		cur.CustomerMobile = inv.CustomerMobile
		cur.CustomerTaxID = inv.CustomerTaxID
		cur.SubTotal = inv.SubTotal
		cur.GSTRate = inv.GSTRate
		cur.GSTAmount = inv.GSTAmount
		cur.TotalAmount = inv.TotalAmount
		cur.Status = inv.Status
		cur.UpdatedAt = inv.UpdatedAt
		st.invoices[inv.ID] = cur
		return nil
	})
}

func (r *InvoiceRepository) DeleteItems(ctx context.Context, invoiceID string) error {
	return r.store.write(r.tx, OpDeleteItems, func(st *state) error {
		delete(st.items, invoiceID)
		return nil
	})
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	var out *entity.Invoice
	err := r.store.read(r.tx, func(st *state) error {
		if inv, ok := st.invoices[id]; ok {
			out = &inv
		}
		return nil
	})
	return out, err
}

func (r *InvoiceRepository) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*entity.Invoice, error) {
	inv, err := r.GetByID(ctx, id)
	if err != nil || inv == nil || inv.OwnerID != ownerID {
		return nil, err
	}
	return inv, nil
}

func (r *InvoiceRepository) GetItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	var out []*entity.InvoiceItem
	err := r.store.read(r.tx, func(st *state) error {
		list := st.items[invoiceID]
		out = make([]*entity.InvoiceItem, 0, len(list))
		for i := range list {
			it := list[i]
			out = append(out, &it)
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
		return nil
	})
	return out, err
}

func (r *InvoiceRepository) GetLatestByFactory(ctx context.Context, factoryID string) (*entity.Invoice, error) {
	var out *entity.Invoice
	err := r.store.read(r.tx, func(st *state) error {
		var best int64
		for id, inv := range st.invoices {
			if inv.FactoryID != factoryID {
				continue
			}
			if seq := st.created[id]; out == nil || seq > best {
				inv := inv
				out, best = &inv, seq
			}
		}
		return nil
	})
	return out, err
}

func (r *InvoiceRepository) NumberExists(ctx context.Context, factoryID, invoiceNo, excludeID string) (bool, error) {
	var taken bool
	err := r.store.read(r.tx, func(st *state) error {
		taken = numberTaken(st, factoryID, invoiceNo, excludeID)
		return nil
	})
	return taken, err
}

func (r *InvoiceRepository) ListByFactory(ctx context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, int, error) {
	var (
		page  []*entity.Invoice
		total int
	)
	err := r.store.read(r.tx, func(st *state) error {
		var all []*entity.Invoice
		for _, inv := range st.invoices {
			if inv.FactoryID != f.FactoryID || inv.OwnerID != f.OwnerID {
				continue
			}
			if f.From != nil && inv.Date.Before(*f.From) {
				continue
			}
			if f.To != nil && inv.Date.After(*f.To) {
				continue
			}
			inv := inv
			all = append(all, &inv)
		}
		sort.Slice(all, func(i, j int) bool {
			return st.created[all[i].ID] > st.created[all[j].ID]
		})
		total = len(all)
		if f.Offset >= total {
			page = []*entity.Invoice{}
			return nil
		}
		end := total
		if f.Limit > 0 && f.Offset+f.Limit < end {
			end = f.Offset + f.Limit
		}
		page = all[f.Offset:end]
		return nil
	})
	return page, total, err
}

func numberTaken(st *state, factoryID, invoiceNo, excludeID string) bool {
	for id, inv := range st.invoices {
		if id != excludeID && inv.FactoryID == factoryID && inv.InvoiceNo == invoiceNo {
			return true
		}
	}
	return false
}
