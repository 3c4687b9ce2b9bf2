package inventory

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"qcube.GO/api"
	entity "qcube.GO/model/entity"
	inventoryService "qcube.GO/service/inventory"
	"qcube.GO/service/warehouse"
)

func init() {
	api.RegisterModule(RegisterInventoryRoutes)
}

func RegisterInventoryRoutes(apiGroup *echo.Group, w *warehouse.Warehouse) {
	g := apiGroup.Group("/inventario")

	// GET /api/inventario?q=...&bajo_stock=1 – list with filters
	g.GET("", func(c echo.Context) error {
		skus := w.SKUs(c.QueryParam("q"), c.QueryParam("bajo_stock") == "1")
		if skus == nil {
			skus = []entity.SKU{}
		}
		return c.JSON(http.StatusOK, skus)
	})

	// GET /api/inventario/:sku – single SKU
	g.GET("/:sku", func(c echo.Context) error {
		s, ok := w.SKU(c.Param("sku"))
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "sku no encontrado"})
		}
		return c.JSON(http.StatusOK, s)
	})

	// POST /api/inventario – create SKU
	g.POST("", func(c echo.Context) error {
		var s entity.SKU
		if err := c.Bind(&s); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if err := w.AddSKU(s); err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, inventoryService.ErrDuplicateSKU) {
				status = http.StatusConflict
			}
			return c.JSON(status, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, s)
	})

	// PUT /api/inventario/:sku – update descriptive fields
	g.PUT("/:sku", func(c echo.Context) error {
		var s entity.SKU
		if err := c.Bind(&s); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		s.SKU = c.Param("sku")
		if err := w.UpdateSKU(s); err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		}
		updated, _ := w.SKU(s.SKU)
		return c.JSON(http.StatusOK, updated)
	})

	// DELETE /api/inventario/:sku
	g.DELETE("/:sku", func(c echo.Context) error {
		if err := w.RemoveSKU(c.Param("sku")); err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	})

	// POST /api/movimientos – manual ENTRADA/SALIDA/AJUSTE
	apiGroup.POST("/movimientos", func(c echo.Context) error {
		var body struct {
			SKU      string `json:"sku"`
			Tipo     string `json:"tipo"`
			Cantidad int    `json:"cantidad"`
			Razon    string `json:"razon"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		mov, err := w.RegisterMovement(body.SKU, entity.MovementType(body.Tipo), body.Cantidad, body.Razon)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, inventoryService.ErrUnknownSKU) {
				status = http.StatusNotFound
			}
			return c.JSON(status, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, mov)
	})

	// GET /api/movimientos?sku=... – movement history, most recent first
	apiGroup.GET("/movimientos", func(c echo.Context) error {
		movs := w.Movements(c.QueryParam("sku"))
		if movs == nil {
			movs = []entity.Movement{}
		}
		return c.JSON(http.StatusOK, movs)
	})
}
