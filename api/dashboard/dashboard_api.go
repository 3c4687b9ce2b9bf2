package dashboard

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"

	"qcube.GO/api"
	entity "qcube.GO/model/entity"
	"qcube.GO/service/warehouse"
)

func init() {
	api.RegisterModule(RegisterDashboardRoutes)
}

func RegisterDashboardRoutes(apiGroup *echo.Group, w *warehouse.Warehouse) {
	// GET /api/dashboard – the stats block plus the five latest orders
	apiGroup.GET("/dashboard", func(c echo.Context) error {
		ultimas := append([]entity.Order(nil), w.Orders("")...)
		sort.Slice(ultimas, func(i, j int) bool { return ultimas[i].Fecha > ultimas[j].Fecha })
		if len(ultimas) > 5 {
			ultimas = ultimas[:5]
		}
		return c.JSON(http.StatusOK, echo.Map{
			"stats":           w.Stats(),
			"ultimas_ordenes": ultimas,
			"bajo_stock":      w.SKUs("", true),
		})
	})
}
