package entity

// DefaultMinStock applies when a SKU has no stockMinimo configured.
const DefaultMinStock = 5

// SKU is one inventory item and its quantity record.
// JSON field names match the erp_inventario collection layout.
type SKU struct {
	SKU        string  `json:"sku"`
	Nombre     string  `json:"nombre"`
	Stock      int     `json:"stock"`
	Ubicacion  string  `json:"ubicacion"`
	Categoria  string  `json:"categoria,omitempty"`
	Precio     float64 `json:"precio,omitempty"`
	StockMin   int     `json:"stockMinimo,omitempty"`
}

// MinStock returns the configured minimum or the default.
func (s *SKU) MinStock() int {
	if s.StockMin > 0 {
		return s.StockMin
	}
	return DefaultMinStock
}

// LowStock reports whether current stock is below the minimum threshold.
func (s *SKU) LowStock() bool {
	return s.Stock < s.MinStock()
}
