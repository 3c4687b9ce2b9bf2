package customers

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

func testServer(t *testing.T) (*echo.Echo, *warehouse.Warehouse) {
	t.Helper()
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("customers_api_test_%s_%d.db", t.Name(), time.Now().UnixNano()))
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

	e := echo.New()
	apiGroup := e.Group("/api")
	apiGroup.Use(middleware.BasicAuth(func(user, pass string, c echo.Context) (bool, error) {
		return user == testUser && pass == testPass, nil
	}))
	RegisterCustomerRoutes(apiGroup, w)
	return e, w
}

func doRequest(e *echo.Echo, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(testUser+":"+testPass)))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCustomers_CreateAndGet(t *testing.T) {
	e, _ := testServer(t)

	rec := doRequest(e, http.MethodPost, "/api/clientes", map[string]string{
		"nombre": "Distribuidora Central",
		"email":  "ventas@distcentral.com",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var created entity.Customer
	json.NewDecoder(rec.Body).Decode(&created)
	if created.ID == "" || created.FechaRegistro == 0 {
		t.Errorf("created = %+v", created)
	}

	rec = doRequest(e, http.MethodGet, "/api/clientes/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
}

func TestCustomers_NameRequired(t *testing.T) {
	e, _ := testServer(t)
	rec := doRequest(e, http.MethodPost, "/api/clientes", map[string]string{"nombre": "  "})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCustomers_Delete(t *testing.T) {
	e, w := testServer(t)
	c := w.AddCustomer(entity.Customer{ID: "CLI-001", Nombre: "Comercial del Sur"})

	rec := doRequest(e, http.MethodDelete, "/api/clientes/"+c.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	rec = doRequest(e, http.MethodDelete, "/api/clientes/"+c.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
