package table

import (
	"context"
	"time"

	"github.com/jhoicas/bsgoods-inventory/internal/domain/entity"
	dtable "github.com/jhoicas/bsgoods-inventory/internal/domain/table"
)

// Report datos para exportar la tabla: todas las filas filtradas y ordenadas, sin paginar.
type Report struct {
	Title         string
	GeneratedAt   time.Time
	Query         dtable.Query
	Rows          []entity.Product
	TotalProducts int
}

// ReportGenerator renderiza un Report (PDF u otro formato).
type ReportGenerator interface {
	TableReport(ctx context.Context, r Report) ([]byte, error)
}

// Report arma el reporte de products con el estado actual de filtros y orden.
func (t *Table) Report(title string, products []entity.Product, now time.Time) Report {
	q := t.Query()
	return Report{
		Title:         title,
		GeneratedAt:   now,
		Query:         q,
		Rows:          dtable.Arrange(products, q),
		TotalProducts: len(products),
	}
}
