package table_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bsgoods-inventory/internal/application/table"
	"github.com/jhoicas/bsgoods-inventory/internal/domain"
	"github.com/jhoicas/bsgoods-inventory/internal/domain/entity"
	dtable "github.com/jhoicas/bsgoods-inventory/internal/domain/table"
)

func products(n int) []entity.Product {
	out := make([]entity.Product, 0, n)
	for i := 0; i < n; i++ {
		cat := entity.CategoryElectronics
		if i%2 == 1 {
			cat = entity.CategoryBooks
		}
		out = append(out, entity.Product{
			ID:        string(rune('A' + i)),
			Name:      "item",
			SKU:       "SKU",
			Supplier:  "ACME",
			Category:  cat,
			Status:    entity.StatusPublished,
			Price:     decimal.NewFromInt(int64(n - i)),
			CreatedAt: time.Unix(int64(i), 0),
		})
	}
	return out
}

func newTable(t *testing.T, size int) *table.Table {
	t.Helper()
	tb, err := table.New(size)
	require.NoError(t, err)
	return tb
}

// ──────────────────────────────────────────────────────────────────────────────
// Controladores de filtro
// ──────────────────────────────────────────────────────────────────────────────

func TestSetFilter_ToggleAgregaYQuita(t *testing.T) {
	var f table.SetFilter[entity.Category]

	f.Toggle(entity.CategoryBooks)
	f.Toggle(entity.CategoryToys)
	assert.Equal(t, []entity.Category{entity.CategoryBooks, entity.CategoryToys}, f.Values())
	assert.True(t, f.Contains(entity.CategoryBooks))

	f.Toggle(entity.CategoryBooks)
	assert.Equal(t, []entity.Category{entity.CategoryToys}, f.Values())
	assert.Equal(t, 1, f.Len())

	f.Clear()
	assert.Equal(t, 0, f.Len())
	assert.Empty(t, f.Values())
}

func TestSetFilter_ValuesEsUnaCopia(t *testing.T) {
	var f table.SetFilter[entity.Status]
	f.Toggle(entity.StatusDraft)

	vals := f.Values()
	vals[0] = entity.StatusPublished

	assert.True(t, f.Contains(entity.StatusDraft))
}

func TestTable_ResetFiltersLimpiaAmbos(t *testing.T) {
	tb := newTable(t, 10)
	tb.ToggleCategory(entity.CategoryBooks)
	tb.ToggleStatus(entity.StatusDraft)

	tb.ResetFilters()

	st := tb.State()
	assert.Empty(t, st.Categories)
	assert.Empty(t, st.Statuses)
}

func TestTable_ViewAplicaFiltro(t *testing.T) {
	tb := newTable(t, 10)
	tb.ToggleCategory(entity.CategoryBooks)

	res := tb.View(products(6))

	assert.Equal(t, 3, res.TotalFiltered)
	for _, p := range res.Rows {
		assert.Equal(t, entity.CategoryBooks, p.Category)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Controlador de orden
// ──────────────────────────────────────────────────────────────────────────────

func TestSortController_ReemplazaElOrdenPrevio(t *testing.T) {
	var c table.SortController
	c.Set(dtable.ColumnName, dtable.Asc)
	c.Set(dtable.ColumnPrice, dtable.Desc)

	require.NotNil(t, c.Spec())
	assert.Equal(t, dtable.SortSpec{Column: dtable.ColumnPrice, Direction: dtable.Desc}, *c.Spec())

	c.Clear()
	assert.Nil(t, c.Spec())
}

func TestTable_SortYLuegoToggleDireccion(t *testing.T) {
	tb := newTable(t, 10)
	data := products(3)

	tb.SetSort(dtable.ColumnPrice, dtable.Asc)
	asc := tb.View(data).Rows
	tb.SetSort(dtable.ColumnPrice, dtable.Desc)
	desc := tb.View(data).Rows

	require.Len(t, asc, 3)
	require.Len(t, desc, 3)
	for i := range asc {
		assert.Equal(t, asc[i].ID, desc[len(desc)-1-i].ID)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Controlador de paginación
// ──────────────────────────────────────────────────────────────────────────────

func TestPagination_CambiarTamanoVuelveALaPaginaCero(t *testing.T) {
	tb := newTable(t, 10)
	require.NoError(t, tb.SetPageIndex(1))

	require.NoError(t, tb.SetPageSize(5))

	assert.Equal(t, dtable.Page{Index: 0, Size: 5}, tb.State().Page)
}

func TestPagination_MismoTamanoConservaElIndice(t *testing.T) {
	tb := newTable(t, 10)
	require.NoError(t, tb.SetPageIndex(2))

	require.NoError(t, tb.SetPageSize(10))

	assert.Equal(t, 2, tb.State().Page.Index)
}

func TestPagination_TamanoNoPermitido(t *testing.T) {
	tb := newTable(t, 10)

	err := tb.SetPageSize(7)
	assert.ErrorIs(t, err, domain.ErrInvalidQuery)
	assert.Equal(t, 10, tb.State().Page.Size)

	_, err = table.New(0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuery)
}

func TestPagination_IndiceNegativo(t *testing.T) {
	tb := newTable(t, 10)
	assert.ErrorIs(t, tb.SetPageIndex(-1), domain.ErrInvalidQuery)
}

func TestPagination_NextYPrev(t *testing.T) {
	tb := newTable(t, 5)
	data := products(12)

	res := tb.View(data)
	assert.Equal(t, 3, res.TotalPages)
	assert.True(t, res.CanNext)
	assert.False(t, res.CanPrev)

	tb.NextPage(data)
	tb.NextPage(data)
	tb.NextPage(data) // ya en la última: no avanza
	res = tb.View(data)
	assert.Equal(t, 2, res.PageIndex)
	assert.Len(t, res.Rows, 2)
	assert.False(t, res.CanNext)

	tb.PrevPage()
	tb.PrevPage()
	tb.PrevPage() // en la 0: no retrocede
	assert.Equal(t, 0, tb.State().Page.Index)
}

func TestTable_RecalculaTrasCambioDeColeccion(t *testing.T) {
	tb := newTable(t, 5)
	data := products(4)
	assert.Equal(t, 4, tb.View(data).TotalFiltered)

	data = append(data, products(3)...)
	assert.Equal(t, 7, tb.View(data).TotalFiltered, "la vista no debe quedar cacheada")
}

func TestTable_ReportNoPagina(t *testing.T) {
	tb := newTable(t, 5)
	tb.ToggleCategory(entity.CategoryElectronics)
	tb.SetSort(dtable.ColumnPrice, dtable.Asc)
	data := products(12)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	r := tb.Report("Inventario", data, now)

	assert.Len(t, r.Rows, 6, "incluye todas las filas filtradas, no solo la página")
	assert.Equal(t, 12, r.TotalProducts)
	assert.Equal(t, now, r.GeneratedAt)
	for i := 1; i < len(r.Rows); i++ {
		assert.True(t, r.Rows[i-1].Price.LessThanOrEqual(r.Rows[i].Price))
	}
}
