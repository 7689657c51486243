// Package pdf implementa el reporte de existencias en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + generado por / rol │ Fecha + umbral        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: bodegas | productos | unidades | valor | bajos     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Por cada bodega: nombre, ubicación, encargado, ocupación    │
//	│    TABLA: Producto | Categoría | Stock | Precio | Valor      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el resumen + leyenda                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"sort"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-bodegas/internal/application/ports"
	"github.com/jhoicas/gestion-bodegas/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// sinBodega agrupa productos cuya bodega no vino en la respuesta.
const sinBodega = "Sin bodega"

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.StockReportGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa ports.StockReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateStockReport(_ context.Context, data ports.StockReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de existencias", true).
		WithAuthor(nonEmpty(data.GeneradoPor, "gestion-bodegas"), true).
		Build()

	m := maroto.New(cfg)
	totals := summarize(data)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(totals))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	for _, group := range groupByBodega(data.Bodegas, data.Productos) {
		m.AddRows(bodegaRow(group))
		m.AddRows(tableHeaderRow())
		m.AddRows(tableDetailRows(group.productos, data.Umbral)...)
		m.AddRows(line.NewRow(3))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(data, totals))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Datos ─────────────────────────────────────────────────────────────────────

type reportTotals struct {
	bodegas   int
	productos int
	unidades  int
	valor     decimal.Decimal
	bajos     int
}

func summarize(data ports.StockReportData) reportTotals {
	t := reportTotals{bodegas: len(data.Bodegas), productos: len(data.Productos)}
	for _, p := range data.Productos {
		t.unidades += p.Stock
		t.valor = t.valor.Add(p.ValorInventario())
		if p.Stock < data.Umbral {
			t.bajos++
		}
	}
	return t
}

type bodegaGroup struct {
	bodega    entity.Bodega
	productos []entity.Producto
	unidades  int
}

// groupByBodega ordena las bodegas por nombre y agrega al final los productos huérfanos.
func groupByBodega(bodegas []entity.Bodega, productos []entity.Producto) []bodegaGroup {
	byID := make(map[int]*bodegaGroup, len(bodegas))
	groups := make([]*bodegaGroup, 0, len(bodegas)+1)
	for _, b := range bodegas {
		g := &bodegaGroup{bodega: b}
		byID[b.ID] = g
		groups = append(groups, g)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return strings.ToLower(groups[i].bodega.Nombre) < strings.ToLower(groups[j].bodega.Nombre)
	})

	var orphans *bodegaGroup
	for _, p := range productos {
		var g *bodegaGroup
		if p.Bodega != nil {
			g = byID[p.Bodega.ID]
		}
		if g == nil {
			if orphans == nil {
				orphans = &bodegaGroup{bodega: entity.Bodega{Nombre: sinBodega}}
			}
			g = orphans
		}
		g.productos = append(g.productos, p)
		g.unidades += p.Stock
	}
	if orphans != nil {
		groups = append(groups, orphans)
	}

	out := make([]bodegaGroup, len(groups))
	for i, g := range groups {
		sort.SliceStable(g.productos, func(a, b int) bool { return g.productos[a].Nombre < g.productos[b].Nombre })
		out[i] = *g
	}
	return out
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + autor (izq) y fecha + umbral (der).
func headerRow(data ports.StockReportData) core.Row {
	autor := nonEmpty(data.GeneradoPor, "—")
	if data.Rol != "" {
		autor += " (" + data.Rol.String() + ")"
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New("REPORTE DE EXISTENCIAS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado por: "+autor, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Fecha: "+data.Fecha.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(fmt.Sprintf("Stock bajo: menos de %d unidades", data.Umbral), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// summaryRow: cinco indicadores en una fila.
func summaryRow(t reportTotals) core.Row {
	cell := func(label, value string, c *props.Color) core.Col {
		return col.New(2).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Center, Color: c, Top: 5}),
		)
	}
	bajosColor := colorPrimary
	if t.bajos > 0 {
		bajosColor = colorAlert
	}
	return row.New(14).Add(
		cell("Bodegas", fmt.Sprint(t.bodegas), colorPrimary),
		cell("Productos", fmt.Sprint(t.productos), colorPrimary),
		cell("Unidades", formatMoney(fmt.Sprint(t.unidades)), colorPrimary),
		col.New(4).Add(
			text.New("Valor del inventario", props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New("$"+formatMoney(t.valor.StringFixed(0)), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Center, Color: colorPrimary, Top: 5,
			}),
		),
		cell("Stock bajo", fmt.Sprint(t.bajos), bajosColor),
	)
}

// bodegaRow: datos de la bodega y su ocupación.
func bodegaRow(g bodegaGroup) core.Row {
	detalle := nonEmpty(g.bodega.Ubicacion, "—")
	if g.bodega.Encargado != nil {
		detalle += "   |   Encargado: " + nonEmpty(g.bodega.Encargado.NombreCompleto, g.bodega.Encargado.Username)
	}
	if g.bodega.Capacidad > 0 {
		pct := decimal.NewFromInt(int64(g.unidades)).
			Div(decimal.NewFromInt(int64(g.bodega.Capacidad))).
			Mul(decimal.NewFromInt(100)).Round(1)
		detalle += fmt.Sprintf("   |   Ocupación: %d/%d (%s%%)", g.unidades, g.bodega.Capacidad, pct.String())
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New(strings.ToUpper(g.bodega.Nombre), props.Text{
				Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 1,
			}),
			text.New(detalle, props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de productos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 4, align.Left),
		h("Categoría", 3, align.Left),
		h("Stock", 1, align.Center),
		h("Precio", 2, align.Right),
		h("Valor", 2, align.Right),
	)
}

// tableDetailRows: una fila por producto; el stock bajo se resalta.
func tableDetailRows(productos []entity.Producto, umbral int) []core.Row {
	if len(productos) == 0 {
		return []core.Row{row.New(6).Add(col.New(12).Add(
			text.New("Sin productos registrados", props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
		))}
	}
	result := make([]core.Row, 0, len(productos))
	for _, p := range productos {
		stockProps := props.Text{Size: 8, Align: align.Center, Top: 1}
		if p.Stock < umbral {
			stockProps.Style = fontstyle.Bold
			stockProps.Color = colorAlert
		}
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(p.Nombre, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(3).Add(text.New(nonEmpty(p.Categoria, "—"), props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(1).Add(text.New(fmt.Sprint(p.Stock), stockProps)),
			col.New(2).Add(text.New(
				"$"+formatMoney(p.Precio.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(p.ValorInventario().StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// footerRow: QR con el resumen del reporte + leyenda.
func footerRow(data ports.StockReportData, t reportTotals) core.Row {
	qr := fmt.Sprintf("gestion-bodegas|stock|%s|%s|bodegas=%d|productos=%d|unidades=%d|valor=%s|bajos=%d",
		data.Fecha.Format("2006-01-02T15:04"), data.GeneradoPor,
		t.bodegas, t.productos, t.unidades, t.valor.StringFixed(2), t.bajos)
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(qr, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Resumen verificable del reporte codificado en el QR.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Las existencias reflejan el estado del backend al momento de la generación.", props.Text{
				Size: 7, Top: 12, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "-1000000" → "-1.000.000"
func formatMoney(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
