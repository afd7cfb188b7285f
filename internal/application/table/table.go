// Package table agrupa los controladores del estado de consulta de la tabla de productos
// (filtros, orden y paginación) de una sesión y deriva la vista con el pipeline de dominio.
package table

import (
	"sync"

	"github.com/jhoicas/bsgoods-inventory/internal/domain/entity"
	dtable "github.com/jhoicas/bsgoods-inventory/internal/domain/table"
)

// State foto del estado de consulta (para pintar filtros, orden y selector de página).
type State struct {
	Categories []entity.Category
	Statuses   []entity.Status
	Sort       *dtable.SortSpec
	Page       dtable.Page
}

// Result vista derivada más los flags de navegación.
type Result struct {
	dtable.View
	CanNext bool
	CanPrev bool
}

// Table estado de consulta de una sesión. Seguro para uso concurrente; el estado no se
// persiste y se descarta junto con la sesión.
type Table struct {
	mu         sync.Mutex
	categories SetFilter[entity.Category]
	statuses   SetFilter[entity.Status]
	sort       SortController
	pagination *PaginationController
}

// New construye la tabla con el tamaño de página inicial.
func New(pageSize int) (*Table, error) {
	p, err := NewPaginationController(pageSize)
	if err != nil {
		return nil, err
	}
	return &Table{pagination: p}, nil
}

// ToggleCategory marca o desmarca una categoría.
func (t *Table) ToggleCategory(c entity.Category) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.categories.Toggle(c)
}

// ClearCategories quita el filtro de categorías.
func (t *Table) ClearCategories() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.categories.Clear()
}

// ToggleStatus marca o desmarca un estado.
func (t *Table) ToggleStatus(s entity.Status) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.statuses.Toggle(s)
}

// ClearStatuses quita el filtro de estados.
func (t *Table) ClearStatuses() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.statuses.Clear()
}

// ResetFilters limpia ambos filtros (botón "Reset").
func (t *Table) ResetFilters() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.categories.Clear()
	t.statuses.Clear()
}

// SetSort reemplaza el orden activo.
func (t *Table) SetSort(column dtable.Column, direction dtable.Direction) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sort.Set(column, direction)
}

// ClearSort vuelve al orden de inserción.
func (t *Table) ClearSort() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sort.Clear()
}

// SetPageSize cambia el tamaño y, si cambió, vuelve a la página 0.
func (t *Table) SetPageSize(size int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pagination.SetPageSize(size)
}

// SetPageIndex salta a una página.
func (t *Table) SetPageIndex(index int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pagination.SetPageIndex(index)
}

// NextPage avanza una página sobre la vista de products.
func (t *Table) NextPage(products []entity.Product) {
	t.mu.Lock()
	defer t.mu.Unlock()
	view := dtable.Derive(products, t.query())
	t.pagination.Next(view.TotalPages)
}

// PrevPage retrocede una página.
func (t *Table) PrevPage() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pagination.Prev()
}

// State devuelve una copia del estado de consulta.
func (t *Table) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	q := t.query()
	return State{Categories: q.Categories, Statuses: q.Statuses, Sort: q.Sort, Page: q.Page}
}

// Query estado actual en la forma que consume el pipeline.
func (t *Table) Query() dtable.Query {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.query()
}

// View deriva la vista de products con el estado actual. Debe llamarse en cada
// cambio de la colección o de la consulta; no se cachea.
func (t *Table) View(products []entity.Product) Result {
	t.mu.Lock()
	defer t.mu.Unlock()
	view := dtable.Derive(products, t.query())
	return Result{
		View:    view,
		CanNext: t.pagination.CanNext(view.TotalPages),
		CanPrev: t.pagination.CanPrev(),
	}
}

// Arranged filas filtradas y ordenadas sin paginar (exportación).
func (t *Table) Arranged(products []entity.Product) []entity.Product {
	return dtable.Arrange(products, t.Query())
}

func (t *Table) query() dtable.Query {
	return dtable.Query{
		Categories: t.categories.Values(),
		Statuses:   t.statuses.Values(),
		Sort:       t.sort.Spec(),
		Page:       t.pagination.Page(),
	}
}
