package repository

import (
	"context"

	"github.com/jhoicas/bsgoods-inventory/internal/domain/entity"
)

// ProductSource es el origen de datos del que el store carga la colección completa (DIP).
// Cualquier error devuelto se trata como fallo de carga.
type ProductSource interface {
	FetchAll(ctx context.Context) ([]entity.Product, error)
}
