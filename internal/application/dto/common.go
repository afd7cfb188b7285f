package dto

import "github.com/jhoicas/bsgoods-inventory/internal/domain"

// ErrorResponse cuerpo de error HTTP. Fields solo viene en errores de validación.
type ErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

// MessageResponse respuesta simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}

// NotificationResponse aviso (toast) pendiente de mostrar.
type NotificationResponse struct {
	Level     string `json:"level" example:"success"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

// IconResponse icono disponible en el selector.
type IconResponse struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Default bool   `json:"default,omitempty"`
}
