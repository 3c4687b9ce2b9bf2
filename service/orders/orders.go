package orders

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	entity "qcube.GO/model/entity"
)

var (
	ErrOrderNotFound = errors.New("orden no encontrada")
	ErrTerminalOrder = errors.New("la orden esta en un estado terminal")
)

// InsufficientStockError names the first SKU that failed the dispatch
// precondition, with both quantities so the caller can fix and retry.
type InsufficientStockError struct {
	SKU        string
	Disponible int
	Requerido  int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s. Disponible: %d, Requerido: %d",
		e.SKU, e.Disponible, e.Requerido)
}

// StockReader is the ledger view the evaluator and the dispatch
// precondition read from.
type StockReader interface {
	StockOf(sku string) int
}

// Ledger is the mutation surface dispatch needs from the inventory ledger.
type Ledger interface {
	StockReader
	ApplyDelta(sku string, delta int) int
	AppendMovement(m entity.Movement)
}

// Evaluate computes an order's fulfillment status from its items and the
// given stock snapshot. Pure: no side effects, stable for a fixed input.
// The first item short on stock decides FALTANTE; otherwise PREPARACION.
func Evaluate(o *entity.Order, stock StockReader) entity.Status {
	for _, it := range o.Items {
		if stock.StockOf(it.SKU) < it.Requerido {
			return entity.StatusFaltante
		}
	}
	return entity.StatusPreparacion
}

// Service owns the order collection and runs the lifecycle operations
// against an inventory ledger passed in at construction.
type Service struct {
	orders []entity.Order
	ledger Ledger
}

func NewService(orders []entity.Order, ledger Ledger) *Service {
	return &Service{orders: orders, ledger: ledger}
}

// Create builds a new order and immediately evaluates its initial status,
// so CREADA never reaches the stored collection.
func (s *Service) Create(items []entity.OrderItem, clienteID, notas string) *entity.Order {
	o := entity.Order{
		ID:        NewOrderID(),
		Fecha:     time.Now().UnixMilli(),
		Estado:    entity.StatusCreada,
		Items:     items,
		ClienteID: clienteID,
		Notas:     notas,
	}
	o.Estado = Evaluate(&o, s.ledger)
	s.orders = append([]entity.Order{o}, s.orders...)
	return &s.orders[0]
}

// Dispatch couples order, ledger and movement log under an all-or-nothing
// contract. The precondition runs over the live ledger for every item
// before anything mutates; the stored status is only a hint and may be
// stale. On success each item costs one stock decrement plus one SALIDA
// movement, then the order turns DESPACHADA with its dispatch timestamp.
func (s *Service) Dispatch(orderID string) (*entity.Order, error) {
	o, err := s.find(orderID)
	if err != nil {
		return nil, err
	}
	if o.Estado.Terminal() {
		return nil, fmt.Errorf("%w: %s (%s)", ErrTerminalOrder, o.ID, o.Estado)
	}

	// Validate everything first: a partial dispatch must be impossible.
	for _, it := range o.Items {
		disponible := s.ledger.StockOf(it.SKU)
		if disponible < it.Requerido {
			return nil, &InsufficientStockError{SKU: it.SKU, Disponible: disponible, Requerido: it.Requerido}
		}
	}

	now := time.Now().UnixMilli()
	for _, it := range o.Items {
		s.ledger.ApplyDelta(it.SKU, -it.Requerido)
		s.ledger.AppendMovement(entity.Movement{
			ID:       "MOV-" + strings.ToUpper(uuid.NewString()[:8]),
			Fecha:    now,
			Tipo:     entity.MovementSalida,
			SKU:      it.SKU,
			Cantidad: it.Requerido,
			Razon:    fmt.Sprintf("Despacho de orden %s", o.ID),
			OrdenID:  o.ID,
		})
	}

	o.Estado = entity.StatusDespachada
	o.Despachada = now
	return o, nil
}

// Cancel moves a non-terminal order to CANCELADA. No inventory effects.
func (s *Service) Cancel(orderID string) (*entity.Order, error) {
	o, err := s.find(orderID)
	if err != nil {
		return nil, err
	}
	if !o.CanTransitionTo(entity.StatusCancelada) {
		return nil, fmt.Errorf("%w: %s (%s)", ErrTerminalOrder, o.ID, o.Estado)
	}
	o.Estado = entity.StatusCancelada
	return o, nil
}

// Get returns the order by id.
func (s *Service) Get(orderID string) (*entity.Order, error) {
	return s.find(orderID)
}

// Orders returns the live order collection, most recent first.
func (s *Service) Orders() []entity.Order {
	return s.orders
}

// FilterByEstado returns orders in the given state; empty estado means all.
func (s *Service) FilterByEstado(estado string) []entity.Order {
	if estado == "" || estado == "TODAS" {
		return s.orders
	}
	var out []entity.Order
	for _, o := range s.orders {
		if string(o.Estado) == estado {
			out = append(out, o)
		}
	}
	return out
}

// Pending counts orders that are not in a terminal state.
func (s *Service) Pending() int {
	n := 0
	for _, o := range s.orders {
		if !o.Estado.Terminal() {
			n++
		}
	}
	return n
}

func (s *Service) find(orderID string) (*entity.Order, error) {
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			return &s.orders[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
}

// NewOrderID returns a fresh order identifier.
func NewOrderID() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}
