// Package memory implementa los repositorios sobre un estado en memoria.
// Cada lectura trabaja sobre una copia del estado (snapshot inmutable) y cada
// escritura sobre una copia que solo se publica si la función termina sin error.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/stock-alerts/internal/application/alerts"
	"github.com/jhoicas/stock-alerts/internal/application/usecase"
	"github.com/jhoicas/stock-alerts/internal/domain/entity"
	"github.com/jhoicas/stock-alerts/internal/domain/repository"
)

var (
	_ alerts.SnapshotReader = (*Store)(nil)
	_ usecase.TxRunner      = (*Store)(nil)
)

type stockKey struct {
	productID   int64
	warehouseID int64
}

// state es el conjunto de datos; nunca se comparte entre lecturas y escrituras.
type state struct {
	warehouses   map[int64]entity.Warehouse
	products     map[int64]entity.Product
	productTypes map[int64]entity.ProductType
	suppliers    map[int64]entity.Supplier
	stock        map[stockKey]entity.Stock
	history      []entity.InventoryHistory
	nextID       int64
}

func newState() *state {
	return &state{
		warehouses:   make(map[int64]entity.Warehouse),
		products:     make(map[int64]entity.Product),
		productTypes: make(map[int64]entity.ProductType),
		suppliers:    make(map[int64]entity.Supplier),
		stock:        make(map[stockKey]entity.Stock),
		nextID:       1,
	}
}

func (s *state) clone() *state {
	c := &state{
		warehouses:   make(map[int64]entity.Warehouse, len(s.warehouses)),
		products:     make(map[int64]entity.Product, len(s.products)),
		productTypes: make(map[int64]entity.ProductType, len(s.productTypes)),
		suppliers:    make(map[int64]entity.Supplier, len(s.suppliers)),
		stock:        make(map[stockKey]entity.Stock, len(s.stock)),
		history:      make([]entity.InventoryHistory, len(s.history)),
		nextID:       s.nextID,
	}
	for k, v := range s.warehouses {
		c.warehouses[k] = v
	}
	for k, v := range s.products {
		v.SupplierID = copyID(v.SupplierID)
		v.ProductTypeID = copyID(v.ProductTypeID)
		c.products[k] = v
	}
	for k, v := range s.productTypes {
		v.LowStockThreshold = copyID(v.LowStockThreshold)
		c.productTypes[k] = v
	}
	for k, v := range s.suppliers {
		c.suppliers[k] = v
	}
	for k, v := range s.stock {
		c.stock[k] = v
	}
	copy(c.history, s.history)
	return c
}

// assignID devuelve id si no es cero, o el siguiente libre; mantiene nextID por encima del máximo.
func (s *state) assignID(id int64) int64 {
	if id == 0 {
		id = s.nextID
	}
	if id >= s.nextID {
		s.nextID = id + 1
	}
	return id
}

func (s *state) repositories() repository.Repositories {
	return repository.Repositories{
		Warehouses:   warehouseRepo{s},
		Stock:        stockRepo{s},
		History:      historyRepo{s},
		Products:     productRepo{s},
		ProductTypes: productTypeRepo{s},
		Suppliers:    supplierRepo{s},
	}
}

// Store guarda el estado actual protegido por un RWMutex.
type Store struct {
	mu    sync.RWMutex
	state *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{state: newState()}
}

// ReadSnapshot ejecuta fn sobre una copia del estado tomada bajo lock de lectura.
// Las escrituras que fn intente sobre la copia se descartan.
func (s *Store) ReadSnapshot(ctx context.Context, fn func(snap repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	snap := s.state.clone()
	s.mu.RUnlock()
	return fn(snap.repositories())
}

// Run ejecuta fn sobre una copia del estado y la publica solo si fn no falla (todo o nada).
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(work.repositories()); err != nil {
		return err
	}
	s.state = work
	return nil
}

func copyID(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
