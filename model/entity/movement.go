package entity

// MovementType distinguishes the three stock mutation kinds. ENTRADA and
// SALIDA are deltas; AJUSTE sets the absolute stock level.
type MovementType string

const (
	MovementEntrada MovementType = "ENTRADA"
	MovementSalida  MovementType = "SALIDA"
	MovementAjuste  MovementType = "AJUSTE"
)

// Valid reports whether t is one of the three known kinds.
func (t MovementType) Valid() bool {
	switch t {
	case MovementEntrada, MovementSalida, MovementAjuste:
		return true
	}
	return false
}

// Movement is one immutable audit record of a stock change. Once appended
// to the ledger it is never mutated or removed. Fecha is unix milliseconds.
type Movement struct {
	ID       string       `json:"id"`
	Fecha    int64        `json:"fecha"`
	Tipo     MovementType `json:"tipo"`
	SKU      string       `json:"sku"`
	Cantidad int          `json:"cantidad"`
	Razon    string       `json:"razon"`
	OrdenID  string       `json:"ordenId,omitempty"`
}
