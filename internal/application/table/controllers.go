package table

import (
	"fmt"
	"slices"

	"github.com/jhoicas/bsgoods-inventory/internal/domain"
	dtable "github.com/jhoicas/bsgoods-inventory/internal/domain/table"
)

// SetFilter selección múltiple de valores de un campo (categorías o estados).
// Guarda el orden en que se marcaron para poder pintarlos como badges.
type SetFilter[T comparable] struct {
	values []T
}

// Toggle quita v si ya estaba seleccionado y lo agrega en caso contrario.
func (f *SetFilter[T]) Toggle(v T) {
	if i := slices.Index(f.values, v); i >= 0 {
		f.values = slices.Delete(f.values, i, i+1)
		return
	}
	f.values = append(f.values, v)
}

// Clear vacía la selección (sin filtro).
func (f *SetFilter[T]) Clear() {
	f.values = nil
}

// Contains indica si v está seleccionado.
func (f *SetFilter[T]) Contains(v T) bool {
	return slices.Contains(f.values, v)
}

// Len cantidad de valores seleccionados.
func (f *SetFilter[T]) Len() int {
	return len(f.values)
}

// Values copia de la selección actual.
func (f *SetFilter[T]) Values() []T {
	return slices.Clone(f.values)
}

// SortController mantiene como máximo una columna de orden activa.
type SortController struct {
	spec *dtable.SortSpec
}

// Set reemplaza cualquier orden previo por (column, direction).
func (c *SortController) Set(column dtable.Column, direction dtable.Direction) {
	c.spec = &dtable.SortSpec{Column: column, Direction: direction}
}

// Clear vuelve al orden de inserción.
func (c *SortController) Clear() {
	c.spec = nil
}

// Spec copia del orden activo o nil.
func (c *SortController) Spec() *dtable.SortSpec {
	if c.spec == nil {
		return nil
	}
	s := *c.spec
	return &s
}

// PaginationController índice y tamaño de página.
type PaginationController struct {
	index int
	size  int
}

// NewPaginationController arranca en la página 0 con el tamaño indicado.
func NewPaginationController(size int) (*PaginationController, error) {
	if !dtable.IsAllowedPageSize(size) {
		return nil, fmt.Errorf("%w: tamaño de página %d no permitido", domain.ErrInvalidQuery, size)
	}
	return &PaginationController{size: size}, nil
}

// SetPageSize cambia el tamaño de página. Si el tamaño cambia, el índice vuelve a 0
// para no quedar en una página que ya no existe.
func (c *PaginationController) SetPageSize(size int) error {
	if !dtable.IsAllowedPageSize(size) {
		return fmt.Errorf("%w: tamaño de página %d no permitido", domain.ErrInvalidQuery, size)
	}
	if size != c.size {
		c.size = size
		c.index = 0
	}
	return nil
}

// SetPageIndex mueve a la página index. No se ajusta contra el total: el pipeline
// devuelve una página vacía si index está fuera de rango.
func (c *PaginationController) SetPageIndex(index int) error {
	if index < 0 {
		return fmt.Errorf("%w: índice de página negativo", domain.ErrInvalidQuery)
	}
	c.index = index
	return nil
}

// Next avanza una página si existe.
func (c *PaginationController) Next(totalPages int) {
	if c.CanNext(totalPages) {
		c.index++
	}
}

// Prev retrocede una página; en la página 0 no hace nada.
func (c *PaginationController) Prev() {
	if c.CanPrev() {
		c.index--
	}
}

func (c *PaginationController) CanNext(totalPages int) bool { return c.index+1 < totalPages }
func (c *PaginationController) CanPrev() bool               { return c.index > 0 }

// Page estado actual para el pipeline.
func (c *PaginationController) Page() dtable.Page {
	return dtable.Page{Index: c.index, Size: c.size}
}
