// Package models holds the GraphQL view types. Nullable schema fields are
// pointers; timestamps travel as Float (unix milliseconds).
package models

import entity "qcube.GO/model/entity"

type SKU struct {
	SKU         string
	Nombre      string
	Stock       int32
	Ubicacion   string
	Categoria   *string
	Precio      *float64
	StockMinimo *int32
}

type OrdenItem struct {
	SKU       string
	Requerido int32
	Preparado *int32
}

type Orden struct {
	ID         string
	Fecha      float64
	Estado     string
	Items      []OrdenItem
	ClienteID  *string
	Notas      *string
	Despachada *float64
}

type Movimiento struct {
	ID       string
	Fecha    float64
	Tipo     string
	SKU      string
	Cantidad int32
	Razon    string
	OrdenID  *string
}

type Cliente struct {
	ID            string
	Nombre        string
	Email         *string
	Telefono      *string
	Direccion     *string
	FechaRegistro float64
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func FromSKU(s entity.SKU) *SKU {
	out := &SKU{
		SKU:       s.SKU,
		Nombre:    s.Nombre,
		Stock:     int32(s.Stock),
		Ubicacion: s.Ubicacion,
		Categoria: optString(s.Categoria),
	}
	if s.Precio != 0 {
		p := s.Precio
		out.Precio = &p
	}
	if s.StockMin != 0 {
		m := int32(s.StockMin)
		out.StockMinimo = &m
	}
	return out
}

func FromSKUs(skus []entity.SKU) []*SKU {
	out := make([]*SKU, 0, len(skus))
	for _, s := range skus {
		out = append(out, FromSKU(s))
	}
	return out
}

func FromOrder(o entity.Order) *Orden {
	out := &Orden{
		ID:        o.ID,
		Fecha:     float64(o.Fecha),
		Estado:    string(o.Estado),
		Items:     make([]OrdenItem, 0, len(o.Items)),
		ClienteID: optString(o.ClienteID),
		Notas:     optString(o.Notas),
	}
	if o.Despachada != 0 {
		d := float64(o.Despachada)
		out.Despachada = &d
	}
	for _, it := range o.Items {
		item := OrdenItem{SKU: it.SKU, Requerido: int32(it.Requerido)}
		if it.Preparado != 0 {
			p := int32(it.Preparado)
			item.Preparado = &p
		}
		out.Items = append(out.Items, item)
	}
	return out
}

func FromOrders(orders []entity.Order) []*Orden {
	out := make([]*Orden, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return out
}

func FromMovement(m entity.Movement) *Movimiento {
	return &Movimiento{
		ID:       m.ID,
		Fecha:    float64(m.Fecha),
		Tipo:     string(m.Tipo),
		SKU:      m.SKU,
		Cantidad: int32(m.Cantidad),
		Razon:    m.Razon,
		OrdenID:  optString(m.OrdenID),
	}
}

func FromMovements(movs []entity.Movement) []*Movimiento {
	out := make([]*Movimiento, 0, len(movs))
	for _, m := range movs {
		out = append(out, FromMovement(m))
	}
	return out
}

func FromCustomer(c entity.Customer) *Cliente {
	return &Cliente{
		ID:            c.ID,
		Nombre:        c.Nombre,
		Email:         optString(c.Email),
		Telefono:      optString(c.Telefono),
		Direccion:     optString(c.Direccion),
		FechaRegistro: float64(c.FechaRegistro),
	}
}

func FromCustomers(customers []entity.Customer) []*Cliente {
	out := make([]*Cliente, 0, len(customers))
	for _, c := range customers {
		out = append(out, FromCustomer(c))
	}
	return out
}
