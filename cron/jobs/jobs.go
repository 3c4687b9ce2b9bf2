// Package jobs holds the built-in cron jobs. Each registers itself in
// init(); cmd packages blank-import this package so the registrations run.
package jobs

import (
	"context"
	"log"
	"sync"
	"time"

	"qcube.GO/api/printing"
	"qcube.GO/cron"
	"qcube.GO/graphql/resolvers"
	"qcube.GO/service/warehouse"
)

var (
	mu sync.RWMutex
	wh *warehouse.Warehouse
)

// SetWarehouse hands jobs the running warehouse. Call before StartCron.
func SetWarehouse(w *warehouse.Warehouse) {
	mu.Lock()
	defer mu.Unlock()
	wh = w
}

func getWarehouse() *warehouse.Warehouse {
	mu.RLock()
	defer mu.RUnlock()
	return wh
}

func init() {
	cron.Register("printersalud", "@every 1m", PrinterSaludJob)
	cron.Register("essync", "@every 10m", EsSyncJob)
}

// PrinterSaludJob keeps the printer health cache warm so the salud
// endpoint rarely blocks on a live probe.
func PrinterSaludJob(args ...string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s, err := printing.RefreshSalud(ctx)
	if err != nil {
		log.Printf("cron printersalud: %v", err)
		return
	}
	if !s.ImpresoraDisponible {
		log.Printf("cron printersalud: impresora no disponible")
	}
}

// EsSyncJob reindexes the SKU collection into Elasticsearch. No-op when
// search is not configured.
func EsSyncJob(args ...string) {
	w := getWarehouse()
	if w == nil {
		return
	}
	svc := resolvers.GetSearchService()
	if !svc.Enabled() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	if err := svc.IndexSKUs(ctx, w.SKUs("", false)); err != nil {
		log.Printf("cron essync: %v", err)
	}
}
