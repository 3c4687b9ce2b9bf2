package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"qcube.GO/config"
	"qcube.GO/service/document"
	"qcube.GO/service/printer"
)

var reporteOutFile string

var reporteCmd = &cobra.Command{
	Use:   "inventario:reporte",
	Short: "Render the inventory report and print it or write it to a file",
	Run: func(cmd *cobra.Command, args []string) {
		w, err := openWarehouse()
		if err != nil {
			fmt.Printf("warehouse: %v\n", err)
			os.Exit(1)
		}

		img := document.ReporteInventario(w.SKUs("", false))
		data, err := document.EncodePNG(img)
		if err != nil {
			fmt.Printf("render: %v\n", err)
			os.Exit(1)
		}

		if reporteOutFile != "" {
			if err := os.WriteFile(reporteOutFile, data, 0o644); err != nil {
				fmt.Printf("write %s: %v\n", reporteOutFile, err)
				os.Exit(1)
			}
			fmt.Printf("Reporte escrito en %s\n", reporteOutFile)
			return
		}

		base := "http://localhost:8080"
		if config.AppConfig != nil && config.AppConfig.PrinterURL != "" {
			base = config.AppConfig.PrinterURL
		}
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		result, err := printer.NewClient(base).ImprimirPNG(ctx, data, fmt.Sprintf("inventario-%d.png", time.Now().UnixMilli()))
		if err != nil {
			fmt.Printf("impresion: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Enviado a imprimir (job %s)\n", result.JobID)
	},
}

func init() {
	reporteCmd.Flags().StringVarP(&reporteOutFile, "out", "o", "", "Write the PNG to a file instead of printing")
	rootCmd.AddCommand(reporteCmd)
}
