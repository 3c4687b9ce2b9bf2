package inventory

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	entity "qcube.GO/model/entity"
)

var (
	ErrInvalidQuantity = errors.New("la cantidad debe ser mayor que cero")
	ErrUnknownSKU      = errors.New("sku no encontrado en el inventario")
	ErrDuplicateSKU    = errors.New("ya existe un sku con ese codigo")
)

// Ledger owns the SKU collection and the append-only movement log. It is
// the only place current stock is mutated; callers that change stock must
// pair the change with a movement append in the same operation.
type Ledger struct {
	skus      []entity.SKU
	movements []entity.Movement
}

func NewLedger(skus []entity.SKU, movements []entity.Movement) *Ledger {
	return &Ledger{skus: skus, movements: movements}
}

// StockOf returns current stock for a SKU code, 0 when unknown.
func (l *Ledger) StockOf(sku string) int {
	for i := range l.skus {
		if l.skus[i].SKU == sku {
			return l.skus[i].Stock
		}
	}
	return 0
}

// ApplyDelta adds delta to the SKU's stock, clamping at zero, and returns
// the new stock. It records no movement; that is the caller's half of the
// ledger contract. Unknown SKUs are a no-op returning 0 (movements may
// outlive the SKU they reference).
func (l *Ledger) ApplyDelta(sku string, delta int) int {
	for i := range l.skus {
		if l.skus[i].SKU == sku {
			next := l.skus[i].Stock + delta
			if next < 0 {
				next = 0
			}
			l.skus[i].Stock = next
			return next
		}
	}
	return 0
}

// AppendMovement inserts the record at the head of the log. The log is
// append-only: nothing here or elsewhere rewrites past entries.
func (l *Ledger) AppendMovement(m entity.Movement) {
	l.movements = append([]entity.Movement{m}, l.movements...)
}

// Register is the manual adjustment operation: an operator-recorded
// ENTRADA, SALIDA or AJUSTE outside the order flow. AJUSTE sets the
// absolute stock level; the other two are deltas. Exactly one movement is
// appended, with no order reference.
func (l *Ledger) Register(sku string, tipo entity.MovementType, cantidad int, razon string) (*entity.Movement, error) {
	if cantidad <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuantity, cantidad)
	}
	if !tipo.Valid() {
		return nil, fmt.Errorf("tipo de movimiento desconocido: %q", tipo)
	}
	ref, ok := l.Find(sku)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSKU, sku)
	}

	switch tipo {
	case entity.MovementEntrada:
		l.ApplyDelta(sku, cantidad)
	case entity.MovementSalida:
		l.ApplyDelta(sku, -cantidad)
	case entity.MovementAjuste:
		// Absolute set, not delta math.
		l.ApplyDelta(sku, cantidad-ref.Stock)
	}

	mov := entity.Movement{
		ID:       NewMovementID(),
		Fecha:    time.Now().UnixMilli(),
		Tipo:     tipo,
		SKU:      sku,
		Cantidad: cantidad,
		Razon:    razon,
	}
	l.AppendMovement(mov)
	return &mov, nil
}

// Find returns the SKU record by code.
func (l *Ledger) Find(sku string) (*entity.SKU, bool) {
	for i := range l.skus {
		if l.skus[i].SKU == sku {
			return &l.skus[i], true
		}
	}
	return nil, false
}

// SKUs returns the live SKU collection.
func (l *Ledger) SKUs() []entity.SKU {
	return l.skus
}

// Movements returns the movement log, most recent first.
func (l *Ledger) Movements() []entity.Movement {
	return l.movements
}

// MovementsFor returns the movements referencing one SKU, most recent first.
func (l *Ledger) MovementsFor(sku string) []entity.Movement {
	var out []entity.Movement
	for _, m := range l.movements {
		if m.SKU == sku {
			out = append(out, m)
		}
	}
	return out
}

// AddSKU appends a new SKU record.
func (l *Ledger) AddSKU(s entity.SKU) error {
	if strings.TrimSpace(s.SKU) == "" {
		return errors.New("el codigo sku es obligatorio")
	}
	if _, ok := l.Find(s.SKU); ok {
		return fmt.Errorf("%w: %s", ErrDuplicateSKU, s.SKU)
	}
	l.skus = append([]entity.SKU{s}, l.skus...)
	return nil
}

// UpdateSKU replaces the descriptive fields of an existing SKU. Stock is
// deliberately not touched here: stock only moves through ApplyDelta.
func (l *Ledger) UpdateSKU(s entity.SKU) error {
	ref, ok := l.Find(s.SKU)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSKU, s.SKU)
	}
	ref.Nombre = s.Nombre
	ref.Ubicacion = s.Ubicacion
	ref.Categoria = s.Categoria
	ref.Precio = s.Precio
	ref.StockMin = s.StockMin
	return nil
}

// RemoveSKU deletes a SKU record. Movements referencing it stay in the
// log, and orders referencing it evaluate its stock as 0 from then on.
func (l *Ledger) RemoveSKU(sku string) error {
	for i := range l.skus {
		if l.skus[i].SKU == sku {
			l.skus = append(l.skus[:i], l.skus[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownSKU, sku)
}

// Filter returns SKUs matching a free-text filter over code, name and
// category, optionally restricted to low-stock items.
func (l *Ledger) Filter(q string, lowOnly bool) []entity.SKU {
	q = strings.ToLower(strings.TrimSpace(q))
	var out []entity.SKU
	for _, s := range l.skus {
		if q != "" &&
			!strings.Contains(strings.ToLower(s.SKU), q) &&
			!strings.Contains(strings.ToLower(s.Nombre), q) &&
			!strings.Contains(strings.ToLower(s.Categoria), q) {
			continue
		}
		if lowOnly && !s.LowStock() {
			continue
		}
		out = append(out, s)
	}
	return out
}

// LowStock returns all SKUs below their minimum threshold.
func (l *Ledger) LowStock() []entity.SKU {
	return l.Filter("", true)
}

// TotalValue sums stock*precio over the inventory.
func (l *Ledger) TotalValue() float64 {
	var total float64
	for _, s := range l.skus {
		total += float64(s.Stock) * s.Precio
	}
	return total
}

// NewMovementID returns a fresh movement identifier.
func NewMovementID() string {
	return "MOV-" + strings.ToUpper(uuid.NewString()[:8])
}
