package repository

import "github.com/jhoicas/bsgoods-inventory/internal/domain/entity"

// UserRepository define el puerto de lectura de usuarios para el login (DIP).
// Ambos métodos devuelven (nil, nil) si el usuario no existe.
type UserRepository interface {
	FindByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
