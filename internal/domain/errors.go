package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrDuplicateID  = errors.New("ya existe un producto con ese id")
	ErrLoadFailure  = errors.New("no se pudieron cargar los productos")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrInvalidQuery = errors.New("parámetros de consulta inválidos")
	ErrBusy         = errors.New("hay una operación en curso")
	ErrUnauthorized = errors.New("no autorizado")
)

// FieldError describe un error de validación sobre un campo del formulario.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError agrupa los errores por campo que devuelve el validador.
// errors.Is(err, ErrInvalidInput) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidInput.Error()
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return ErrInvalidInput.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
