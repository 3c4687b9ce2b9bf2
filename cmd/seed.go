package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	entity "qcube.GO/model/entity"
)

func seedSKUs() []entity.SKU {
	return []entity.SKU{
		{SKU: "SKU-001", Nombre: "Caja chica 10x10cm", Stock: 15, Ubicacion: "A1", Categoria: "Embalaje", Precio: 2.5, StockMin: 5},
		{SKU: "SKU-002", Nombre: "Cinta adhesiva transparente", Stock: 8, Ubicacion: "B3", Categoria: "Adhesivos", Precio: 1.8, StockMin: 10},
		{SKU: "SKU-003", Nombre: "Papel burbuja rollo", Stock: 3, Ubicacion: "C2", Categoria: "Embalaje", Precio: 15.0, StockMin: 5},
		{SKU: "SKU-004", Nombre: "Marcador permanente negro", Stock: 25, Ubicacion: "D1", Categoria: "Oficina", Precio: 0.9, StockMin: 15},
		{SKU: "SKU-005", Nombre: "Etiquetas adhesivas", Stock: 50, Ubicacion: "A2", Categoria: "Oficina", Precio: 0.5, StockMin: 20},
	}
}

func seedCustomers() []entity.Customer {
	now := time.Now().UnixMilli()
	const day = int64(24 * time.Hour / time.Millisecond)
	return []entity.Customer{
		{ID: "CLI-001", Nombre: "Distribuidora Central", Email: "ventas@distcentral.com", Telefono: "+56912345678", Direccion: "Av. Principal 123", FechaRegistro: now - day*30},
		{ID: "CLI-002", Nombre: "Comercial del Sur", Email: "contacto@comsur.cl", Telefono: "+56987654321", Direccion: "Calle Comercio 456", FechaRegistro: now - day*15},
	}
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo SKUs and customers into empty collections",
	Run: func(cmd *cobra.Command, args []string) {
		w, err := openWarehouse()
		if err != nil {
			fmt.Printf("warehouse: %v\n", err)
			os.Exit(1)
		}
		w.Seed(seedSKUs(), seedCustomers())
		fmt.Printf("Seed done: %d SKUs, %d clientes\n", len(w.SKUs("", false)), len(w.Customers()))
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
