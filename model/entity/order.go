package entity

// Status is the order lifecycle state.
type Status string

const (
	StatusCreada      Status = "CREADA"
	StatusPreparacion Status = "PREPARACION"
	StatusFaltante    Status = "FALTANTE"
	StatusDespachada  Status = "DESPACHADA"
	StatusCancelada   Status = "CANCELADA"
)

// validTransitions defines allowed state transitions. CREADA only exists
// between construction and the first evaluation; it is never stored.
var validTransitions = map[Status][]Status{
	StatusCreada:      {StatusPreparacion, StatusFaltante},
	StatusPreparacion: {StatusDespachada, StatusCancelada},
	StatusFaltante:    {StatusDespachada, StatusCancelada},
	StatusDespachada:  {}, // terminal
	StatusCancelada:   {}, // terminal
}

// Terminal reports whether no further transition is allowed.
func (s Status) Terminal() bool {
	return s == StatusDespachada || s == StatusCancelada
}

// OrderItem references a SKU and the quantity the order requires.
// Preparado is reserved for partial-fulfillment tracking; no operation
// writes it today.
type OrderItem struct {
	SKU       string `json:"sku"`
	Requerido int    `json:"requerido"`
	Preparado int    `json:"preparado,omitempty"`
}

// Order is a dispatch order. Fecha and Despachada are unix-millisecond
// timestamps, matching the erp_ordenes collection layout.
type Order struct {
	ID         string      `json:"id"`
	Fecha      int64       `json:"fecha"`
	Estado     Status      `json:"estado"`
	Items      []OrderItem `json:"items"`
	ClienteID  string      `json:"clienteId,omitempty"`
	Notas      string      `json:"notas,omitempty"`
	Despachada int64       `json:"despachada,omitempty"`
}

// CanTransitionTo checks if the order can move to the target status.
func (o *Order) CanTransitionTo(target Status) bool {
	allowed, exists := validTransitions[o.Estado]
	if !exists {
		return false
	}
	for _, s := range allowed {
		if s == target {
			return true
		}
	}
	return false
}
