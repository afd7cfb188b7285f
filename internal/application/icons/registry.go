// Package icons es el catálogo estático del selector de iconos. El dominio solo guarda
// el identificador; aquí se decide cuáles son válidos y cuál se usa por defecto.
package icons

import (
	"slices"

	"github.com/jhoicas/bsgoods-inventory/internal/domain/entity"
)

// Icon entrada del catálogo.
type Icon struct {
	ID    entity.IconID
	Label string
}

// Registry catálogo inmutable; seguro para uso concurrente.
type Registry struct {
	icons []Icon
	def   entity.IconID
}

var builtin = []Icon{
	{"Package", "Paquete"},
	{"Laptop", "Portátil"},
	{"Smartphone", "Teléfono"},
	{"Headphones", "Audífonos"},
	{"Camera", "Cámara"},
	{"Watch", "Reloj"},
	{"Tv", "Televisor"},
	{"Sofa", "Sofá"},
	{"Lamp", "Lámpara"},
	{"Shirt", "Camisa"},
	{"Book", "Libro"},
	{"Gamepad", "Control"},
	{"Puzzle", "Rompecabezas"},
	{"Sparkles", "Belleza"},
	{"Dumbbell", "Pesas"},
	{"Bike", "Bicicleta"},
	{"ShoppingBag", "Bolsa"},
}

// Default catálogo incorporado; el icono por defecto es "Package".
func Default() *Registry {
	r, _ := New(builtin, "Package")
	return r
}

// New construye un catálogo. def debe estar entre icons; si no, se usa el primero.
func New(icons []Icon, def entity.IconID) (*Registry, bool) {
	r := &Registry{icons: slices.Clone(icons), def: def}
	if !r.Contains(def) {
		if len(icons) > 0 {
			r.def = icons[0].ID
		}
		return r, false
	}
	return r, true
}

// All devuelve el catálogo en orden de presentación.
func (r *Registry) All() []Icon {
	return slices.Clone(r.icons)
}

// DefaultIcon icono preseleccionado en el formulario de alta.
func (r *Registry) DefaultIcon() entity.IconID {
	return r.def
}

// Contains indica si id está en el catálogo.
func (r *Registry) Contains(id entity.IconID) bool {
	return slices.ContainsFunc(r.icons, func(i Icon) bool { return i.ID == id })
}

// Resolve devuelve id si es válido, o el icono por defecto si viene vacío.
func (r *Registry) Resolve(id entity.IconID) (entity.IconID, bool) {
	if id == "" {
		return r.def, true
	}
	return id, r.Contains(id)
}
