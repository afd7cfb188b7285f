package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceScale número de decimales con que se guarda el precio.
const PriceScale = 2

// Límites del registro de producto.
const (
	MaxNameLength     = 100
	MaxSupplierLength = 100
)

// IconID identificador del icono elegido para el producto. El dominio solo guarda
// la referencia; el dibujo se resuelve en la capa de presentación.
type IconID string

// Product representa un producto del inventario.
// ID y CreatedAt se asignan al crear y no cambian en ninguna actualización.
type Product struct {
	ID              string
	Name            string
	SKU             string
	Supplier        string
	Category        Category
	Status          Status
	QuantityInStock int
	Price           decimal.Decimal // siempre redondeado a PriceScale
	Icon            IconID
	CreatedAt       time.Time
}

// RoundPrice redondea el precio a dos decimales (equivalente a toFixed(2)).
func RoundPrice(p decimal.Decimal) decimal.Decimal {
	return p.Round(PriceScale)
}

// CloneAll copia un slice de productos. Product no tiene campos por referencia,
// así que la copia superficial es suficiente.
func CloneAll(products []Product) []Product {
	out := make([]Product, len(products))
	copy(out, products)
	return out
}
