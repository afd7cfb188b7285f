package entity

import (
	"fmt"
	"strings"
)

// Category categoría cerrada de un producto.
type Category string

// Categorías válidas.
const (
	CategoryElectronics Category = "Electronics"
	CategoryFurniture   Category = "Furniture"
	CategoryClothing    Category = "Clothing"
	CategoryBooks       Category = "Books"
	CategoryToys        Category = "Toys"
	CategoryBeauty      Category = "Beauty"
	CategorySports      Category = "Sports"
	CategoryOthers      Category = "Others"
)

var allCategories = []Category{
	CategoryElectronics,
	CategoryFurniture,
	CategoryClothing,
	CategoryBooks,
	CategoryToys,
	CategoryBeauty,
	CategorySports,
	CategoryOthers,
}

// AllCategories devuelve las categorías en el orden en que se muestran en el filtro.
func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// ParseCategory acepta el nombre sin distinguir mayúsculas ("electronics" == "Electronics").
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range allCategories {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("categoría desconocida: %q", s)
}

// Valid indica si la categoría pertenece al conjunto cerrado.
func (c Category) Valid() bool {
	for _, cat := range allCategories {
		if cat == c {
			return true
		}
	}
	return false
}

// Status estado de publicación de un producto.
type Status string

// Estados válidos.
const (
	StatusPublished Status = "Published"
	StatusInactive  Status = "Inactive"
	StatusDraft     Status = "Draft"
)

var allStatuses = []Status{StatusPublished, StatusInactive, StatusDraft}

// AllStatuses devuelve los estados en orden de presentación.
func AllStatuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// ParseStatus acepta el nombre sin distinguir mayúsculas.
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	for _, st := range allStatuses {
		if strings.EqualFold(string(st), s) {
			return st, nil
		}
	}
	return "", fmt.Errorf("estado desconocido: %q", s)
}

// Valid indica si el estado pertenece al conjunto cerrado.
func (s Status) Valid() bool {
	for _, st := range allStatuses {
		if st == s {
			return true
		}
	}
	return false
}
