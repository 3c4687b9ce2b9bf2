package graphqlserver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	gqlregistry "qcube.GO/graphql/registry"
	entity "qcube.GO/model/entity"
	storeRepo "qcube.GO/model/repository/store"
	"qcube.GO/service/warehouse"
)

func testWarehouse(t *testing.T) *warehouse.Warehouse {
	t.Helper()
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("graphql_test_%s_%d.db", t.Name(), time.Now().UnixNano()))
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
	if err := w.AddSKU(entity.SKU{SKU: "SKU-A", Nombre: "Caja chica", Stock: 5, Ubicacion: "A1", Categoria: "Embalaje"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := w.AddSKU(entity.SKU{SKU: "SKU-B", Nombre: "Cinta", Stock: 2, Ubicacion: "B3", StockMin: 10}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	w.AddCustomer(entity.Customer{ID: "CLI-001", Nombre: "Distribuidora Central"})
	return w
}

func execQuery(t *testing.T, w *warehouse.Warehouse, query string, vars map[string]interface{}) map[string]interface{} {
	t.Helper()
	schema, err := NewSchema(w)
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	res := schema.Exec(context.Background(), query, "", vars)
	if len(res.Errors) > 0 {
		t.Fatalf("errors: %v", res.Errors)
	}
	var data map[string]interface{}
	if err := json.Unmarshal(res.Data, &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return data
}

func TestQuery_Skus(t *testing.T) {
	w := testWarehouse(t)
	data := execQuery(t, w, `query { skus { sku nombre stock } }`, nil)

	skus := data["skus"].([]interface{})
	if len(skus) != 2 {
		t.Fatalf("skus = %d, want 2", len(skus))
	}
}

func TestQuery_SkusWithFilter(t *testing.T) {
	w := testWarehouse(t)
	data := execQuery(t, w, `query($f: String) { skus(filtro: $f) { sku } }`, map[string]interface{}{
		"f": `{"bajoStock": true}`,
	})

	skus := data["skus"].([]interface{})
	if len(skus) != 1 || skus[0].(map[string]interface{})["sku"] != "SKU-B" {
		t.Errorf("skus = %v", skus)
	}
}

func TestQuery_BuscarSkus_FallbackWithoutElasticsearch(t *testing.T) {
	w := testWarehouse(t)
	data := execQuery(t, w, `query { buscarSkus(query: "caja") { sku nombre } }`, nil)

	skus := data["buscarSkus"].([]interface{})
	if len(skus) != 1 || skus[0].(map[string]interface{})["sku"] != "SKU-A" {
		t.Errorf("buscarSkus = %v", skus)
	}
}

func TestQuery_Ordenes(t *testing.T) {
	w := testWarehouse(t)
	o := w.CreateOrder([]entity.OrderItem{{SKU: "SKU-A", Requerido: 2}}, "CLI-001", "")

	data := execQuery(t, w, fmt.Sprintf(`query { orden(id: %q) { id estado clienteId } }`, o.ID), nil)
	got := data["orden"].(map[string]interface{})
	if got["estado"] != "PREPARACION" || got["clienteId"] != "CLI-001" {
		t.Errorf("orden = %v", got)
	}

	data = execQuery(t, w, `query { ordenes(estado: "PREPARACION") { id } }`, nil)
	if list := data["ordenes"].([]interface{}); len(list) != 1 {
		t.Errorf("ordenes = %v", list)
	}

	// Unknown id resolves to null rather than an error.
	data = execQuery(t, w, `query { orden(id: "ORD-NOPE") { id } }`, nil)
	if data["orden"] != nil {
		t.Errorf("orden = %v, want null", data["orden"])
	}
}

func TestQuery_Clientes(t *testing.T) {
	w := testWarehouse(t)
	data := execQuery(t, w, `query { clientes { id nombre } }`, nil)
	list := data["clientes"].([]interface{})
	if len(list) != 1 || list[0].(map[string]interface{})["nombre"] != "Distribuidora Central" {
		t.Errorf("clientes = %v", list)
	}
}

func TestQuery_Extension(t *testing.T) {
	gqlregistry.Register("echoback", func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return args, nil
	})
	defer gqlregistry.Unregister("echoback")

	w := testWarehouse(t)
	data := execQuery(t, w, `query { extension(name: "echoback", args: "{\"x\":1}") }`, nil)

	raw, ok := data["extension"].(string)
	if !ok {
		t.Fatalf("extension = %v", data["extension"])
	}
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload["x"] != float64(1) {
		t.Errorf("payload = %v", payload)
	}
}
