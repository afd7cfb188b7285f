package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductInput formulario de alta/edición. Price acepta número o texto ("12.5" o 12.5);
// QuantityInStock y Price son punteros para distinguir "ausente" de cero.
type ProductInput struct {
	Name            string           `json:"name" validate:"required,max=100"`
	SKU             string           `json:"sku" validate:"required,sku"`
	Supplier        string           `json:"supplier" validate:"required,max=100"`
	Category        string           `json:"category" validate:"required,category"`
	Status          string           `json:"status" validate:"required,status"`
	QuantityInStock *int             `json:"quantityInStock" validate:"required,gte=0"`
	Price           *decimal.Decimal `json:"price" validate:"required,gte=0" swaggertype:"string" example:"19.99"`
	Icon            string           `json:"icon" validate:"omitempty,icon"`
}

// ProductResponse salida de un producto. Price va con dos decimales fijos.
type ProductResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	SKU             string    `json:"sku"`
	Supplier        string    `json:"supplier"`
	Category        string    `json:"category"`
	Status          string    `json:"status"`
	QuantityInStock int       `json:"quantityInStock"`
	Price           string    `json:"price" example:"19.99"`
	Icon            string    `json:"icon"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ProductListResponse colección completa en orden de inserción.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// SelectionRequest abre el diálogo de edición ("edit") o de borrado ("delete") de un producto.
type SelectionRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Dialog    string `json:"dialog" validate:"required,oneof=edit delete"`
}

// SelectionResponse producto seleccionado y diálogos abiertos.
type SelectionResponse struct {
	Selected          *ProductResponse `json:"selected"`
	ProductDialogOpen bool             `json:"product_dialog_open"`
	DeleteDialogOpen  bool             `json:"delete_dialog_open"`
	Loading           bool             `json:"loading"`
}
