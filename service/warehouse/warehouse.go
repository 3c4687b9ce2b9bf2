package warehouse

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	entity "qcube.GO/model/entity"
	storeRepo "qcube.GO/model/repository/store"
	"qcube.GO/service/inventory"
	"qcube.GO/service/orders"
)

var ErrCustomerNotFound = errors.New("cliente no encontrado")

// Warehouse wires the inventory ledger, the order service and the
// customer collection behind one mutex, and owns the explicit commit step
// that snapshots collections through the store repository after a
// successful mutation. HTTP handlers and jobs only ever talk to this type.
type Warehouse struct {
	mu        sync.Mutex
	ledger    *inventory.Ledger
	orders    *orders.Service
	customers []entity.Customer
	store     *storeRepo.StoreRepository
}

// Open loads all collections from the store, falling back to empty
// collections for keys that are missing or unreadable.
func Open(repo *storeRepo.StoreRepository) *Warehouse {
	var (
		skus      []entity.SKU
		movs      []entity.Movement
		ords      []entity.Order
		customers []entity.Customer
	)
	repo.Load(storeRepo.KeyInventory, &skus)
	repo.Load(storeRepo.KeyMovements, &movs)
	repo.Load(storeRepo.KeyOrders, &ords)
	repo.Load(storeRepo.KeyCustomers, &customers)

	ledger := inventory.NewLedger(skus, movs)
	return &Warehouse{
		ledger:    ledger,
		orders:    orders.NewService(ords, ledger),
		customers: customers,
		store:     repo,
	}
}

// commit snapshots the named collections. Persistence is best-effort by
// contract: a failed save is logged, never rolled back.
func (w *Warehouse) commit(keys ...string) {
	if w.store == nil {
		return
	}
	for _, key := range keys {
		var err error
		switch key {
		case storeRepo.KeyInventory:
			err = w.store.Save(key, w.ledger.SKUs())
		case storeRepo.KeyMovements:
			err = w.store.Save(key, w.ledger.Movements())
		case storeRepo.KeyOrders:
			err = w.store.Save(key, w.orders.Orders())
		case storeRepo.KeyCustomers:
			err = w.store.Save(key, w.customers)
		}
		if err != nil {
			log.Printf("warehouse: save %s failed: %v", key, err)
		}
	}
}

// --- Orders ---

func (w *Warehouse) CreateOrder(items []entity.OrderItem, clienteID, notas string) *entity.Order {
	w.mu.Lock()
	defer w.mu.Unlock()
	o := w.orders.Create(items, clienteID, notas)
	w.commit(storeRepo.KeyOrders)
	return o
}

func (w *Warehouse) DispatchOrder(orderID string) (*entity.Order, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	o, err := w.orders.Dispatch(orderID)
	if err != nil {
		return nil, err
	}
	w.commit(storeRepo.KeyInventory, storeRepo.KeyMovements, storeRepo.KeyOrders)
	return o, nil
}

func (w *Warehouse) CancelOrder(orderID string) (*entity.Order, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	o, err := w.orders.Cancel(orderID)
	if err != nil {
		return nil, err
	}
	w.commit(storeRepo.KeyOrders)
	return o, nil
}

func (w *Warehouse) Order(orderID string) (*entity.Order, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.orders.Get(orderID)
}

func (w *Warehouse) Orders(estado string) []entity.Order {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.orders.FilterByEstado(estado)
}

// --- Inventory ---

func (w *Warehouse) RegisterMovement(sku string, tipo entity.MovementType, cantidad int, razon string) (*entity.Movement, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	m, err := w.ledger.Register(sku, tipo, cantidad, razon)
	if err != nil {
		return nil, err
	}
	w.commit(storeRepo.KeyInventory, storeRepo.KeyMovements)
	return m, nil
}

func (w *Warehouse) AddSKU(s entity.SKU) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.ledger.AddSKU(s); err != nil {
		return err
	}
	w.commit(storeRepo.KeyInventory)
	return nil
}

func (w *Warehouse) UpdateSKU(s entity.SKU) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.ledger.UpdateSKU(s); err != nil {
		return err
	}
	w.commit(storeRepo.KeyInventory)
	return nil
}

func (w *Warehouse) RemoveSKU(sku string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.ledger.RemoveSKU(sku); err != nil {
		return err
	}
	w.commit(storeRepo.KeyInventory)
	return nil
}

func (w *Warehouse) SKU(sku string) (*entity.SKU, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ledger.Find(sku)
}

func (w *Warehouse) SKUs(q string, lowOnly bool) []entity.SKU {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ledger.Filter(q, lowOnly)
}

func (w *Warehouse) Movements(sku string) []entity.Movement {
	w.mu.Lock()
	defer w.mu.Unlock()
	if sku != "" {
		return w.ledger.MovementsFor(sku)
	}
	return w.ledger.Movements()
}

// Ledger exposes the read-only stock view for document rendering.
func (w *Warehouse) Ledger() orders.StockReader {
	return w.ledger
}

// --- Customers ---

func (w *Warehouse) Customers() []entity.Customer {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.customers
}

func (w *Warehouse) Customer(id string) (*entity.Customer, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range w.customers {
		if w.customers[i].ID == id {
			return &w.customers[i], true
		}
	}
	return nil, false
}

func (w *Warehouse) AddCustomer(c entity.Customer) *entity.Customer {
	w.mu.Lock()
	defer w.mu.Unlock()
	if c.ID == "" {
		c.ID = "CLI-" + strings.ToUpper(uuid.NewString()[:8])
	}
	if c.FechaRegistro == 0 {
		c.FechaRegistro = time.Now().UnixMilli()
	}
	w.customers = append([]entity.Customer{c}, w.customers...)
	w.commit(storeRepo.KeyCustomers)
	return &w.customers[0]
}

func (w *Warehouse) RemoveCustomer(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range w.customers {
		if w.customers[i].ID == id {
			w.customers = append(w.customers[:i], w.customers[i+1:]...)
			w.commit(storeRepo.KeyCustomers)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrCustomerNotFound, id)
}

// --- Dashboard ---

// Stats mirrors the figures the dashboard page shows.
type Stats struct {
	TotalOrdenes    int     `json:"total_ordenes"`
	Pendientes      int     `json:"pendientes"`
	Despachadas     int     `json:"despachadas"`
	OrdenesHoy      int     `json:"ordenes_hoy"`
	TotalSKUs       int     `json:"total_skus"`
	BajoStock       int     `json:"bajo_stock"`
	ValorInventario float64 `json:"valor_inventario"`
	TotalClientes   int     `json:"total_clientes"`
}

func (w *Warehouse) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()

	st := Stats{
		TotalSKUs:       len(w.ledger.SKUs()),
		BajoStock:       len(w.ledger.LowStock()),
		ValorInventario: w.ledger.TotalValue(),
		TotalClientes:   len(w.customers),
	}
	hoy := time.Now().Format("2006-01-02")
	for _, o := range w.orders.Orders() {
		st.TotalOrdenes++
		switch {
		case o.Estado == entity.StatusDespachada:
			st.Despachadas++
		case !o.Estado.Terminal():
			st.Pendientes++
		}
		if time.UnixMilli(o.Fecha).Format("2006-01-02") == hoy {
			st.OrdenesHoy++
		}
	}
	return st
}

// Seed replaces empty collections with fixture data. Collections that
// already hold records are left alone.
func (w *Warehouse) Seed(skus []entity.SKU, customers []entity.Customer) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.ledger.SKUs()) == 0 {
		for i := len(skus) - 1; i >= 0; i-- {
			if err := w.ledger.AddSKU(skus[i]); err != nil {
				log.Printf("warehouse: seed sku %s: %v", skus[i].SKU, err)
			}
		}
		w.commit(storeRepo.KeyInventory)
	}
	if len(w.customers) == 0 {
		w.customers = customers
		w.commit(storeRepo.KeyCustomers)
	}
}
