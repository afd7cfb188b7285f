// Package table contiene el pipeline puro que deriva la vista de la tabla de productos:
//
//	colección completa ──Filter──▶ filtrados ──Sort──▶ ordenados ──Paginate──▶ filas visibles
//
// Ninguna función modifica el slice de entrada ni guarda estado; la capa que muestra la
// tabla debe volver a llamar a Derive cada vez que cambie la colección o la consulta.
package table

import (
	"cmp"
	"slices"
	"strings"

	"github.com/jhoicas/bsgoods-inventory/internal/domain/entity"
	"golang.org/x/text/cases"
)

// Derive aplica filtro, orden y paginación y devuelve la vista resultante.
func Derive(products []entity.Product, q Query) View {
	arranged := Arrange(products, q)
	size := q.Page.Size
	if size <= 0 {
		size = DefaultPageSize
	}
	rows, totalPages := Paginate(arranged, Page{Index: q.Page.Index, Size: size})
	return View{
		Rows:          rows,
		TotalFiltered: len(arranged),
		TotalPages:    totalPages,
		PageIndex:     q.Page.Index,
		PageSize:      size,
	}
}

// Arrange devuelve los productos filtrados y ordenados, sin paginar (usado también por la exportación).
func Arrange(products []entity.Product, q Query) []entity.Product {
	return Sort(Filter(products, q), q.Sort)
}

// Filter conserva los productos cuya categoría está en q.Categories Y cuyo estado está
// en q.Statuses. Dentro de un mismo campo la selección es un OR.
func Filter(products []entity.Product, q Query) []entity.Product {
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if len(q.Categories) > 0 && !slices.Contains(q.Categories, p.Category) {
			continue
		}
		if len(q.Statuses) > 0 && !slices.Contains(q.Statuses, p.Status) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Sort ordena una copia de products. El orden es estable: los empates conservan el
// orden de entrada en ambos sentidos. Con spec nil se devuelve la copia tal cual.
func Sort(products []entity.Product, spec *SortSpec) []entity.Product {
	out := entity.CloneAll(products)
	if spec == nil {
		return out
	}
	compare := comparator(spec.Column)
	if compare == nil {
		return out
	}
	if spec.Direction == Desc {
		asc := compare
		compare = func(a, b entity.Product) int { return -asc(a, b) }
	}
	slices.SortStableFunc(out, compare)
	return out
}

// Paginate corta products en páginas de page.Size y devuelve la página page.Index junto
// con el total de páginas. Un índice fuera de rango devuelve una página vacía; el índice
// no se ajusta.
func Paginate(products []entity.Product, page Page) ([]entity.Product, int) {
	if page.Size <= 0 {
		return []entity.Product{}, 0
	}
	total := (len(products) + page.Size - 1) / page.Size
	if page.Index < 0 || page.Index >= total {
		return []entity.Product{}, total
	}
	start := page.Index * page.Size
	end := min(start+page.Size, len(products))
	return entity.CloneAll(products[start:end]), total
}

func comparator(col Column) func(a, b entity.Product) int {
	switch col {
	case ColumnName:
		return textComparator(func(p entity.Product) string { return p.Name })
	case ColumnSKU:
		return textComparator(func(p entity.Product) string { return p.SKU })
	case ColumnSupplier:
		return textComparator(func(p entity.Product) string { return p.Supplier })
	case ColumnCategory:
		return textComparator(func(p entity.Product) string { return string(p.Category) })
	case ColumnStatus:
		return textComparator(func(p entity.Product) string { return string(p.Status) })
	case ColumnPrice:
		return func(a, b entity.Product) int { return a.Price.Cmp(b.Price) }
	case ColumnQuantityInStock:
		return func(a, b entity.Product) int { return cmp.Compare(a.QuantityInStock, b.QuantityInStock) }
	case ColumnCreatedAt:
		return func(a, b entity.Product) int { return a.CreatedAt.Compare(b.CreatedAt) }
	default:
		return nil
	}
}

// textComparator compara sin distinguir mayúsculas ("apple" y "Apple" empatan).
// cases.Caser no es seguro entre goroutines, por eso se crea uno por ordenamiento.
func textComparator(key func(entity.Product) string) func(a, b entity.Product) int {
	folder := cases.Fold()
	return func(a, b entity.Product) int {
		return strings.Compare(folder.String(key(a)), folder.String(key(b)))
	}
}
