package printing

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"qcube.GO/api"
	"qcube.GO/config"
	"qcube.GO/core/cache"
	"qcube.GO/service/document"
	"qcube.GO/service/printer"
	"qcube.GO/service/warehouse"
)

const saludCacheKey = "impresora:salud"

var (
	clientOnce sync.Once
	client     *printer.Client
)

// Client returns the shared print-server client.
func Client() *printer.Client {
	clientOnce.Do(func() {
		base := "http://localhost:8080"
		if config.AppConfig != nil && config.AppConfig.PrinterURL != "" {
			base = config.AppConfig.PrinterURL
		}
		client = printer.NewClient(base)
	})
	return client
}

// SetClient overrides the shared client (for tests).
func SetClient(c *printer.Client) {
	clientOnce.Do(func() {})
	client = c
}

func init() {
	api.RegisterModule(RegisterPrintingRoutes)
}

func RegisterPrintingRoutes(apiGroup *echo.Group, w *warehouse.Warehouse) {
	g := apiGroup.Group("/impresion")

	// GET /api/impresion/salud – cached probe of the print server
	g.GET("/salud", func(c echo.Context) error {
		if s, ok := cachedSalud(); ok {
			return c.JSON(http.StatusOK, s)
		}
		ctx, cancel := requestContext(c)
		defer cancel()
		s, err := Client().GetSalud(ctx)
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": err.Error()})
		}
		storeSalud(s)
		return c.JSON(http.StatusOK, s)
	})

	// GET /api/impresion/estado
	g.GET("/estado", func(c echo.Context) error {
		ctx, cancel := requestContext(c)
		defer cancel()
		m, err := Client().GetEstado(ctx)
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, m)
	})

	// GET /api/impresion/cola
	g.GET("/cola", func(c echo.Context) error {
		ctx, cancel := requestContext(c)
		defer cancel()
		q, err := Client().GetCola(ctx)
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, q)
	})

	// POST /api/impresion/ordenes/:id – render and submit a document
	g.POST("/ordenes/:id", func(c echo.Context) error {
		var body struct {
			Tipo string `json:"tipo"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		img, orderID, err := renderOrderDocument(w, c.Param("id"), body.Tipo)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		data, err := document.EncodePNG(img)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		ctx, cancel := requestContext(c)
		defer cancel()
		result, err := Client().ImprimirPNG(ctx, data, fmt.Sprintf("%s-%s.png", orderID, body.Tipo))
		if err != nil {
			return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, result)
	})

	// GET /api/impresion/ordenes/:id/preview?tipo=picking&format=webp
	g.GET("/ordenes/:id/preview", func(c echo.Context) error {
		img, _, err := renderOrderDocument(w, c.Param("id"), c.QueryParam("tipo"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return writeImage(c, img)
	})

	// POST /api/impresion/inventario – print the full inventory report
	g.POST("/inventario", func(c echo.Context) error {
		img := document.ReporteInventario(w.SKUs("", false))
		data, err := document.EncodePNG(img)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		ctx, cancel := requestContext(c)
		defer cancel()
		result, err := Client().ImprimirPNG(ctx, data, fmt.Sprintf("inventario-%d.png", time.Now().UnixMilli()))
		if err != nil {
			return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, result)
	})

	// GET /api/impresion/inventario/preview?format=png|webp
	g.GET("/inventario/preview", func(c echo.Context) error {
		return writeImage(c, document.ReporteInventario(w.SKUs("", false)))
	})
}

// requestContext bounds every print-server call to one slow roundtrip.
func requestContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

func renderOrderDocument(w *warehouse.Warehouse, orderID, tipo string) (image.Image, string, error) {
	o, err := w.Order(orderID)
	if err != nil {
		return nil, "", err
	}
	switch tipo {
	case "picking":
		return document.PickingList(o, w.Ledger()), o.ID, nil
	case "faltantes":
		return document.Faltantes(o, w.Ledger()), o.ID, nil
	case "despacho":
		return document.TicketDespacho(o), o.ID, nil
	}
	return nil, "", fmt.Errorf("tipo de documento desconocido: %q", tipo)
}

func writeImage(c echo.Context, img image.Image) error {
	if c.QueryParam("format") == "webp" {
		data, err := document.EncodeWebP(img)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.Blob(http.StatusOK, "image/webp", data)
	}
	data, err := document.EncodePNG(img)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.Blob(http.StatusOK, "image/png", data)
}

// RefreshSalud probes the print server and refreshes both cache layers.
// The salud cron job calls this to keep the cached probe warm.
func RefreshSalud(ctx context.Context) (*printer.Salud, error) {
	s, err := Client().GetSalud(ctx)
	if err != nil {
		return nil, err
	}
	storeSalud(s)
	return s, nil
}

// cachedSalud checks the local TTL cache first, then Redis when configured.
func cachedSalud() (*printer.Salud, bool) {
	if v, ok := cache.GetInstance().Get(saludCacheKey); ok {
		if s, ok := v.(*printer.Salud); ok {
			return s, true
		}
	}
	if config.RedisClient != nil {
		raw, err := config.RedisClient.Get(config.RedisCtx(), saludCacheKey).Result()
		if err == nil {
			var s printer.Salud
			if json.Unmarshal([]byte(raw), &s) == nil {
				return &s, true
			}
		}
	}
	return nil, false
}

// storeSalud writes the probe result to both cache layers.
func storeSalud(s *printer.Salud) {
	cache.GetInstance().Set(saludCacheKey, s, 5)
	if config.RedisClient != nil {
		if raw, err := json.Marshal(s); err == nil {
			config.RedisClient.Set(config.RedisCtx(), saludCacheKey, raw, 5*time.Second)
		}
	}
}
