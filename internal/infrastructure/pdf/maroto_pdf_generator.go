// Package pdf exporta la tabla de productos a PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha        │  N productos / N filtrados │
//	│  FILTROS: categorías · estados · orden                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | SKU | Categoría | Estado | Cant | Precio │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: unidades en stock / valor del inventario          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
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

	apptable "github.com/jhoicas/bsgoods-inventory/internal/application/table"
	"github.com/jhoicas/bsgoods-inventory/internal/domain/entity"
	dtable "github.com/jhoicas/bsgoods-inventory/internal/domain/table"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ apptable.ReportGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa table.ReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	author string
}

// NewMarotoPDFGenerator construye el generador; author va en los metadatos del PDF.
func NewMarotoPDFGenerator(author string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{author: author}
}

// TableReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) TableReport(_ context.Context, r apptable.Report) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(r.Title, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(filtersRow(r.Query))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(r.Rows) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin resultados para los filtros aplicados.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	m.AddRows(tableDetailRows(r.Rows)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(r.Rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + fecha (izq) y conteos (der).
func headerRow(r apptable.Report) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(r.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("%d productos", r.TotalProducts), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New(fmt.Sprintf("%d en el reporte", len(r.Rows)), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// filtersRow: resumen de filtros y orden activos.
func filtersRow(q dtable.Query) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(describeQuery(q), props.Text{Size: 8, Top: 2, Color: colorGray}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 3, align.Left),
		h("SKU", 2, align.Left),
		h("Categoría", 2, align.Left),
		h("Estado", 1, align.Left),
		h("Cant.", 1, align.Right),
		h("Precio", 1, align.Right),
		h("Proveedor", 2, align.Left),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por producto, con fondo alterno.
func tableDetailRows(products []entity.Product) []core.Row {
	result := make([]core.Row, 0, len(products))
	for i, p := range products {
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{
				Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
			}))
		}
		r := row.New(7).Add(
			cell(p.Name, 3, align.Left),
			cell(p.SKU, 2, align.Left),
			cell(string(p.Category), 2, align.Left),
			cell(string(p.Status), 1, align.Left),
			cell(fmt.Sprint(p.QuantityInStock), 1, align.Right),
			cell("$"+p.Price.StringFixed(entity.PriceScale), 1, align.Right),
			cell(p.Supplier, 2, align.Left),
		)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, r)
	}
	return result
}

// totalsRow: unidades en stock y valor (precio × cantidad) de las filas exportadas.
func totalsRow(products []entity.Product) core.Row {
	units, value := Totals(products)
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	return row.New(14).Add(
		col.New(6),
		col.New(3).Add(
			label("Unidades en stock:"),
			text.New("Valor del inventario:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2, Top: 6,
			}),
		),
		col.New(3).Add(
			text.New(fmt.Sprint(units), props.Text{Size: 9, Align: align.Right, Right: 1}),
			text.New("$"+value.StringFixed(entity.PriceScale), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 1, Top: 6,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// Totals suma unidades y valor del inventario de products.
func Totals(products []entity.Product) (int, decimal.Decimal) {
	units := 0
	value := decimal.Zero
	for _, p := range products {
		units += p.QuantityInStock
		value = value.Add(p.Price.Mul(decimal.NewFromInt(int64(p.QuantityInStock))))
	}
	return units, value
}

func describeQuery(q dtable.Query) string {
	parts := []string{
		"Categorías: " + joinOr(q.Categories, "todas"),
		"Estados: " + joinOr(q.Statuses, "todos"),
	}
	if q.Sort != nil {
		parts = append(parts, fmt.Sprintf("Orden: %s %s", q.Sort.Column, q.Sort.Direction))
	}
	return strings.Join(parts, "   |   ")
}

func joinOr[T ~string](values []T, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	s := make([]string, len(values))
	for i, v := range values {
		s[i] = string(v)
	}
	return strings.Join(s, ", ")
}
