package table

import (
	"fmt"
	"strings"

	"github.com/jhoicas/bsgoods-inventory/internal/domain/entity"
)

// Column columna por la que se puede ordenar la tabla.
type Column string

// Columnas ordenables (mismos nombres que los campos del producto en JSON).
const (
	ColumnName            Column = "name"
	ColumnSKU             Column = "sku"
	ColumnCreatedAt       Column = "createdAt"
	ColumnPrice           Column = "price"
	ColumnCategory        Column = "category"
	ColumnStatus          Column = "status"
	ColumnQuantityInStock Column = "quantityInStock"
	ColumnSupplier        Column = "supplier"
)

var sortableColumns = []Column{
	ColumnName,
	ColumnSKU,
	ColumnCreatedAt,
	ColumnPrice,
	ColumnCategory,
	ColumnStatus,
	ColumnQuantityInStock,
	ColumnSupplier,
}

// SortableColumns devuelve las columnas en el orden de la tabla.
func SortableColumns() []Column {
	out := make([]Column, len(sortableColumns))
	copy(out, sortableColumns)
	return out
}

// ParseColumn acepta "createdAt", "created_at" o "CREATEDAT".
func ParseColumn(s string) (Column, error) {
	key := strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	for _, c := range sortableColumns {
		if strings.EqualFold(string(c), key) {
			return c, nil
		}
	}
	return "", fmt.Errorf("columna desconocida: %q", s)
}

// Direction sentido del orden.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection normaliza el sentido; vacío equivale a asc.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc":
		return Asc, nil
	case "desc":
		return Desc, nil
	default:
		return "", fmt.Errorf("sentido de orden desconocido: %q", s)
	}
}

// SortSpec única columna activa de ordenamiento.
type SortSpec struct {
	Column    Column
	Direction Direction
}

// Tamaños de página permitidos por el selector "Rows per page".
var allowedPageSizes = []int{5, 10, 15, 20, 30, 50}

// DefaultPageSize tamaño usado cuando no se indica otro.
const DefaultPageSize = 10

// AllowedPageSizes devuelve los tamaños válidos en orden ascendente.
func AllowedPageSizes() []int {
	out := make([]int, len(allowedPageSizes))
	copy(out, allowedPageSizes)
	return out
}

// IsAllowedPageSize indica si size pertenece al conjunto permitido.
func IsAllowedPageSize(size int) bool {
	for _, s := range allowedPageSizes {
		if s == size {
			return true
		}
	}
	return false
}

// Page índice (desde 0) y tamaño de la página pedida.
type Page struct {
	Index int
	Size  int
}

// Query estado de consulta que combina filtros, orden y paginación.
// Un conjunto de filtros vacío deja pasar todos los registros.
type Query struct {
	Categories []entity.Category
	Statuses   []entity.Status
	Sort       *SortSpec
	Page       Page
}

// View proyección que se muestra: filas de la página y metadatos de paginación.
type View struct {
	Rows          []entity.Product
	TotalFiltered int
	TotalPages    int
	PageIndex     int
	PageSize      int
}
