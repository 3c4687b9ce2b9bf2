package inventory

import (
	"bytes"
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

const (
	testUser = "admin"
	testPass = "secret"
)

func testWarehouse(t *testing.T) *warehouse.Warehouse {
	t.Helper()
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("inventory_api_test_%s_%d.db", t.Name(), time.Now().UnixNano()))
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
	if err := w.AddSKU(entity.SKU{SKU: "SKU-A", Nombre: "Caja chica", Stock: 5, Categoria: "Embalaje"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return w
}

func testServer(t *testing.T, w *warehouse.Warehouse) *echo.Echo {
	t.Helper()
	e := echo.New()
	apiGroup := e.Group("/api")
	apiGroup.Use(middleware.BasicAuth(func(user, pass string, c echo.Context) (bool, error) {
		return user == testUser && pass == testPass, nil
	}))
	RegisterInventoryRoutes(apiGroup, w)
	return e
}

func basicAuth(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func doRequest(e *echo.Echo, method, path string, body interface{}, auth string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestInventory_CRUD(t *testing.T) {
	w := testWarehouse(t)
	e := testServer(t, w)
	auth := basicAuth(testUser, testPass)

	// Create
	rec := doRequest(e, http.MethodPost, "/api/inventario", entity.SKU{SKU: "SKU-B", Nombre: "Cinta", Stock: 8, StockMin: 10}, auth)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}

	// Duplicate create conflicts
	rec = doRequest(e, http.MethodPost, "/api/inventario", entity.SKU{SKU: "SKU-B"}, auth)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", rec.Code)
	}

	// Read one
	rec = doRequest(e, http.MethodGet, "/api/inventario/SKU-B", nil, auth)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var s entity.SKU
	json.NewDecoder(rec.Body).Decode(&s)
	if s.Nombre != "Cinta" || s.StockMin != 10 {
		t.Errorf("sku = %+v", s)
	}

	// Update keeps stock
	rec = doRequest(e, http.MethodPut, "/api/inventario/SKU-B", map[string]interface{}{
		"nombre": "Cinta doble", "stock": 999, "ubicacion": "B3",
	}, auth)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d", rec.Code)
	}
	json.NewDecoder(rec.Body).Decode(&s)
	if s.Nombre != "Cinta doble" || s.Stock != 8 {
		t.Errorf("updated sku = %+v (stock must stay 8)", s)
	}

	// Delete
	rec = doRequest(e, http.MethodDelete, "/api/inventario/SKU-B", nil, auth)
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", rec.Code)
	}
	rec = doRequest(e, http.MethodGet, "/api/inventario/SKU-B", nil, auth)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get deleted status = %d, want 404", rec.Code)
	}
}

func TestInventory_ListFilters(t *testing.T) {
	w := testWarehouse(t)
	e := testServer(t, w)
	auth := basicAuth(testUser, testPass)

	if err := w.AddSKU(entity.SKU{SKU: "SKU-B", Nombre: "Cinta", Stock: 2, StockMin: 10}); err != nil {
		t.Fatal(err)
	}

	rec := doRequest(e, http.MethodGet, "/api/inventario?q=caja", nil, auth)
	var list []entity.SKU
	json.NewDecoder(rec.Body).Decode(&list)
	if len(list) != 1 || list[0].SKU != "SKU-A" {
		t.Errorf("q filter = %+v", list)
	}

	rec = doRequest(e, http.MethodGet, "/api/inventario?bajo_stock=1", nil, auth)
	list = nil
	json.NewDecoder(rec.Body).Decode(&list)
	if len(list) != 1 || list[0].SKU != "SKU-B" {
		t.Errorf("bajo_stock filter = %+v", list)
	}
}

func TestMovimientos_Manual(t *testing.T) {
	w := testWarehouse(t)
	e := testServer(t, w)
	auth := basicAuth(testUser, testPass)

	rec := doRequest(e, http.MethodPost, "/api/movimientos", map[string]interface{}{
		"sku": "SKU-A", "tipo": "AJUSTE", "cantidad": 7, "razon": "Conteo fisico",
	}, auth)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	s, _ := w.SKU("SKU-A")
	if s.Stock != 7 {
		t.Errorf("stock = %d, want 7", s.Stock)
	}

	// Unknown SKU
	rec = doRequest(e, http.MethodPost, "/api/movimientos", map[string]interface{}{
		"sku": "SKU-X", "tipo": "ENTRADA", "cantidad": 1,
	}, auth)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown sku status = %d, want 404", rec.Code)
	}

	// Invalid quantity
	rec = doRequest(e, http.MethodPost, "/api/movimientos", map[string]interface{}{
		"sku": "SKU-A", "tipo": "ENTRADA", "cantidad": 0,
	}, auth)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid quantity status = %d, want 400", rec.Code)
	}

	// History, most recent first
	rec = doRequest(e, http.MethodGet, "/api/movimientos?sku=SKU-A", nil, auth)
	var movs []entity.Movement
	json.NewDecoder(rec.Body).Decode(&movs)
	if len(movs) != 1 || movs[0].Tipo != entity.MovementAjuste {
		t.Errorf("movs = %+v", movs)
	}
}
