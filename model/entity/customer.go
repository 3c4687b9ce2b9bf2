package entity

// Customer is referenced by orders by id only; deleting a customer does
// not cascade. FechaRegistro is unix milliseconds.
type Customer struct {
	ID            string `json:"id"`
	Nombre        string `json:"nombre"`
	Email         string `json:"email,omitempty"`
	Telefono      string `json:"telefono,omitempty"`
	Direccion     string `json:"direccion,omitempty"`
	FechaRegistro int64  `json:"fechaRegistro"`
}
