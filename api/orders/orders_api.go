package orders

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"qcube.GO/api"
	entity "qcube.GO/model/entity"
	ordersService "qcube.GO/service/orders"
	"qcube.GO/service/warehouse"
)

func init() {
	api.RegisterModule(RegisterOrderRoutes)
}

func RegisterOrderRoutes(apiGroup *echo.Group, w *warehouse.Warehouse) {
	g := apiGroup.Group("/ordenes")

	// GET /api/ordenes?estado=FALTANTE – list, optionally filtered
	g.GET("", func(c echo.Context) error {
		ords := w.Orders(c.QueryParam("estado"))
		if ords == nil {
			ords = []entity.Order{}
		}
		return c.JSON(http.StatusOK, ords)
	})

	// GET /api/ordenes/:id
	g.GET("/:id", func(c echo.Context) error {
		o, err := w.Order(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, o)
	})

	// POST /api/ordenes – create; the initial status is evaluated on the
	// spot, so the response already says PREPARACION or FALTANTE.
	g.POST("", func(c echo.Context) error {
		var body struct {
			Items     []entity.OrderItem `json:"items"`
			ClienteID string             `json:"clienteId"`
			Notas     string             `json:"notas"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		for _, it := range body.Items {
			if it.SKU == "" || it.Requerido <= 0 {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "cada item necesita sku y requerido > 0"})
			}
		}
		o := w.CreateOrder(body.Items, body.ClienteID, body.Notas)
		return c.JSON(http.StatusCreated, o)
	})

	// POST /api/ordenes/:id/despachar – the dispatch transaction
	g.POST("/:id/despachar", func(c echo.Context) error {
		o, err := w.DispatchOrder(c.Param("id"))
		if err != nil {
			return c.JSON(dispatchStatus(err), echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, o)
	})

	// POST /api/ordenes/:id/cancelar
	g.POST("/:id/cancelar", func(c echo.Context) error {
		o, err := w.CancelOrder(c.Param("id"))
		if err != nil {
			return c.JSON(dispatchStatus(err), echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, o)
	})
}

// dispatchStatus maps lifecycle errors onto HTTP codes: unknown order is
// 404, shortage and terminal-state conflicts are 409.
func dispatchStatus(err error) int {
	var short *ordersService.InsufficientStockError
	switch {
	case errors.Is(err, ordersService.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, ordersService.ErrTerminalOrder), errors.As(err, &short):
		return http.StatusConflict
	}
	return http.StatusBadRequest
}
