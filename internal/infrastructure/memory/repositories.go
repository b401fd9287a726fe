package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/stock-alerts/internal/domain"
	"github.com/jhoicas/stock-alerts/internal/domain/entity"
)

type warehouseRepo struct{ s *state }

func (r warehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	if _, ok := r.s.warehouses[w.ID]; ok && w.ID != 0 {
		return domain.ErrDuplicate
	}
	w.ID = r.s.assignID(w.ID)
	r.s.warehouses[w.ID] = *w
	return nil
}

func (r warehouseRepo) GetByID(_ context.Context, id int64) (*entity.Warehouse, error) {
	w, ok := r.s.warehouses[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r warehouseRepo) ListByCompany(_ context.Context, companyID int64) ([]*entity.Warehouse, error) {
	var list []*entity.Warehouse
	for _, w := range r.s.warehouses {
		if w.CompanyID == companyID {
			w := w
			list = append(list, &w)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

type stockRepo struct{ s *state }

func (r stockRepo) ListByWarehouse(_ context.Context, warehouseID int64) ([]*entity.Stock, error) {
	var list []*entity.Stock
	for k, v := range r.s.stock {
		if k.warehouseID == warehouseID {
			v := v
			list = append(list, &v)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ProductID < list[j].ProductID })
	return list, nil
}

func (r stockRepo) Upsert(_ context.Context, st *entity.Stock) error {
	if st.Quantity < 0 {
		return domain.ErrInvalidInput
	}
	if st.UpdatedAt.IsZero() {
		st.UpdatedAt = time.Now()
	}
	r.s.stock[stockKey{productID: st.ProductID, warehouseID: st.WarehouseID}] = *st
	return nil
}

type historyRepo struct{ s *state }

func (r historyRepo) Create(_ context.Context, e *entity.InventoryHistory) error {
	e.ID = r.s.assignID(e.ID)
	r.s.history = append(r.s.history, *e)
	return nil
}

func (r historyRepo) ListByProductAndWarehouse(_ context.Context, productID, warehouseID int64, from, to time.Time) ([]*entity.InventoryHistory, error) {
	var list []*entity.InventoryHistory
	for _, h := range r.s.history {
		if h.ProductID != productID || h.WarehouseID != warehouseID {
			continue
		}
		if !h.Timestamp.After(from) || h.Timestamp.After(to) {
			continue
		}
		h := h
		list = append(list, &h)
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Timestamp.Before(list[j].Timestamp) })
	return list, nil
}

type productRepo struct{ s *state }

func (r productRepo) Create(_ context.Context, p *entity.Product) error {
	if _, ok := r.s.products[p.ID]; ok && p.ID != 0 {
		return domain.ErrDuplicate
	}
	for _, existing := range r.s.products {
		if existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	p.ID = r.s.assignID(p.ID)
	r.s.products[p.ID] = *p
	return nil
}

func (r productRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r productRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

type productTypeRepo struct{ s *state }

func (r productTypeRepo) Create(_ context.Context, pt *entity.ProductType) error {
	if _, ok := r.s.productTypes[pt.ID]; ok && pt.ID != 0 {
		return domain.ErrDuplicate
	}
	pt.ID = r.s.assignID(pt.ID)
	r.s.productTypes[pt.ID] = *pt
	return nil
}

func (r productTypeRepo) GetByID(_ context.Context, id int64) (*entity.ProductType, error) {
	pt, ok := r.s.productTypes[id]
	if !ok {
		return nil, nil
	}
	return &pt, nil
}

type supplierRepo struct{ s *state }

func (r supplierRepo) Create(_ context.Context, sp *entity.Supplier) error {
	if _, ok := r.s.suppliers[sp.ID]; ok && sp.ID != 0 {
		return domain.ErrDuplicate
	}
	sp.ID = r.s.assignID(sp.ID)
	r.s.suppliers[sp.ID] = *sp
	return nil
}

func (r supplierRepo) GetByID(_ context.Context, id int64) (*entity.Supplier, error) {
	sp, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &sp, nil
}
