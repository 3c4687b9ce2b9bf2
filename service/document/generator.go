// Package document renders warehouse documents for a 58mm thermal printer
// (384px at 203dpi, monospace, fixed line height).
package document

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	entity "qcube.GO/model/entity"
)

const (
	Width      = 384 // px
	Padding    = 12  // px
	LineHeight = 22  // px
)

// StockReader is the inventory view documents are rendered against.
type StockReader interface {
	StockOf(sku string) int
}

type line struct {
	text string
	bold bool
}

func header(title string) line { return line{text: title, bold: true} }

// render rasterizes the lines onto a white canvas with dynamic height.
func render(lines []line) image.Image {
	height := len(lines)*LineHeight + Padding*2
	img := image.NewRGBA(image.Rect(0, 0, Width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	y := Padding + LineHeight
	for _, l := range lines {
		drawText(img, l.text, Padding, y, l.bold)
		y += LineHeight
	}
	return img
}

// drawText draws one line with basicfont. Bold is faked by a second pass
// shifted one pixel right, the usual bitmap-font trick.
func drawText(dst draw.Image, text string, x, y int, bold bool) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
	if bold {
		d.Dot = fixed.P(x+1, y)
		d.DrawString(text)
	}
}

func formatFecha(ms int64) string {
	return time.UnixMilli(ms).Format("02/01/2006 15:04")
}

// PickingList renders the pick sheet for one order: every item with its
// required quantity and the stock currently available.
func PickingList(o *entity.Order, stock StockReader) image.Image {
	lines := []line{
		header("Picking List"),
		{text: fmt.Sprintf("Orden: %s", o.ID)},
		{text: fmt.Sprintf("Estado: %s", o.Estado)},
		{text: fmt.Sprintf("Fecha: %s", formatFecha(o.Fecha))},
		{},
		{text: "Items:"},
	}
	for _, it := range o.Items {
		lines = append(lines, line{
			text: fmt.Sprintf("%s req:%d stock:%d", it.SKU, it.Requerido, stock.StockOf(it.SKU)),
		})
	}
	return render(lines)
}

// Faltantes renders the shortage report: only the items whose requirement
// exceeds available stock, with the missing delta.
func Faltantes(o *entity.Order, stock StockReader) image.Image {
	lines := []line{
		header("Reporte de Faltantes"),
		{text: fmt.Sprintf("Orden: %s", o.ID)},
		{text: fmt.Sprintf("Estado: %s", o.Estado)},
		{},
		{text: "Faltantes:"},
	}
	for _, it := range o.Items {
		disponible := stock.StockOf(it.SKU)
		if disponible < it.Requerido {
			lines = append(lines, line{
				text: fmt.Sprintf("%s req:%d stock:%d -> FALTA:%d",
					it.SKU, it.Requerido, disponible, it.Requerido-disponible),
			})
		}
	}
	return render(lines)
}

// TicketDespacho renders the dispatch receipt for a dispatched order.
func TicketDespacho(o *entity.Order) image.Image {
	lines := []line{
		header("Ticket de Despacho"),
		{text: fmt.Sprintf("Orden: %s", o.ID)},
		{text: "Estado: DESPACHADA"},
		{},
		{text: "Despacho:"},
	}
	for _, it := range o.Items {
		lines = append(lines, line{text: fmt.Sprintf("%s cant:%d", it.SKU, it.Requerido)})
	}
	return render(lines)
}

// ReporteInventario renders the full inventory report, two lines per SKU
// plus an ALERTA line when stock sits below the minimum.
func ReporteInventario(skus []entity.SKU) image.Image {
	lines := []line{
		header("REPORTE DE INVENTARIO"),
		{text: fmt.Sprintf("Fecha: %s", time.Now().Format("02/01/2006"))},
		{},
		{text: fmt.Sprintf("Total SKUs: %d", len(skus))},
		{},
	}
	for _, s := range skus {
		lines = append(lines, line{text: fmt.Sprintf("%s - %s", s.SKU, s.Nombre)})
		lines = append(lines, line{text: fmt.Sprintf("Stock: %d | Ubic: %s", s.Stock, s.Ubicacion)})
		if s.LowStock() {
			lines = append(lines, line{text: fmt.Sprintf("ALERTA: Stock bajo minimo (%d)", s.MinStock()), bold: true})
		}
		lines = append(lines, line{})
	}
	return render(lines)
}

// EncodePNG serializes the rendered document for the print server.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeWebP serializes the document for lightweight UI previews.
func EncodeWebP(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Lossless: true}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
