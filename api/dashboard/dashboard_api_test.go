package dashboard

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	entity "qcube.GO/model/entity"
	storeRepo "qcube.GO/model/repository/store"
	"qcube.GO/service/warehouse"
)

func TestDashboard(t *testing.T) {
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("dashboard_api_test_%d.db", time.Now().UnixNano()))
	t.Cleanup(func() { os.Remove(tmpFile) })
	db, err := gorm.Open(sqlite.Open(tmpFile), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	repo, err := storeRepo.NewStoreRepository(db)
	if err != nil {
		t.Fatalf("repo: %v", err)
	}
	w := warehouse.Open(repo)
	if err := w.AddSKU(entity.SKU{SKU: "SKU-A", Nombre: "Caja chica", Stock: 2, Precio: 2.5}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 7; i++ {
		w.CreateOrder([]entity.OrderItem{{SKU: "SKU-A", Requerido: 1}}, "", "")
	}

	e := echo.New()
	apiGroup := e.Group("/api")
	apiGroup.Use(middleware.BasicAuth(func(user, pass string, c echo.Context) (bool, error) {
		return user == "admin" && pass == "secret", nil
	}))
	RegisterDashboardRoutes(apiGroup, w)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte("admin:secret")))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		Stats          warehouse.Stats `json:"stats"`
		UltimasOrdenes []entity.Order  `json:"ultimas_ordenes"`
		BajoStock      []entity.SKU    `json:"bajo_stock"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Stats.TotalOrdenes != 7 {
		t.Errorf("total_ordenes = %d, want 7", body.Stats.TotalOrdenes)
	}
	if len(body.UltimasOrdenes) != 5 {
		t.Errorf("ultimas_ordenes = %d, want 5", len(body.UltimasOrdenes))
	}
	if len(body.BajoStock) != 1 {
		t.Errorf("bajo_stock = %d, want 1", len(body.BajoStock))
	}
}
