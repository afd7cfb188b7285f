// Package idgen genera identificadores de producto.
package idgen

import "github.com/google/uuid"

// UUIDGenerator genera UUID v4 en texto.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.New().String()
}
