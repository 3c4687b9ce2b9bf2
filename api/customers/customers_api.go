package customers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"qcube.GO/api"
	entity "qcube.GO/model/entity"
	"qcube.GO/service/warehouse"
)

func init() {
	api.RegisterModule(RegisterCustomerRoutes)
}

func RegisterCustomerRoutes(apiGroup *echo.Group, w *warehouse.Warehouse) {
	g := apiGroup.Group("/clientes")

	g.GET("", func(c echo.Context) error {
		list := w.Customers()
		if list == nil {
			list = []entity.Customer{}
		}
		return c.JSON(http.StatusOK, list)
	})

	g.GET("/:id", func(c echo.Context) error {
		cli, ok := w.Customer(c.Param("id"))
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cliente no encontrado"})
		}
		return c.JSON(http.StatusOK, cli)
	})

	g.POST("", func(c echo.Context) error {
		var cli entity.Customer
		if err := c.Bind(&cli); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if strings.TrimSpace(cli.Nombre) == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "el nombre es obligatorio"})
		}
		created := w.AddCustomer(cli)
		return c.JSON(http.StatusCreated, created)
	})

	// Weak reference from orders: deleting a customer does not cascade.
	g.DELETE("/:id", func(c echo.Context) error {
		if err := w.RemoveCustomer(c.Param("id")); err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	})
}
