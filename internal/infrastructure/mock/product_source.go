// Package mock origen de datos simulado: productos de ejemplo embebidos y latencia artificial.
package mock

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bsgoods-inventory/internal/domain/entity"
	"github.com/jhoicas/bsgoods-inventory/internal/domain/repository"
)

//go:embed seed_products.json
var seedJSON []byte

// DefaultFetchLatency retardo de la carga inicial del backend simulado.
const DefaultFetchLatency = 1200 * time.Millisecond

var _ repository.ProductSource = (*ProductSource)(nil)

type seedProduct struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	SKU             string          `json:"sku"`
	Supplier        string          `json:"supplier"`
	Category        string          `json:"category"`
	Status          string          `json:"status"`
	QuantityInStock int             `json:"quantityInStock"`
	Price           decimal.Decimal `json:"price"`
	Icon            string          `json:"icon"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ProductSource devuelve siempre la misma colección tras la latencia configurada.
// Con FailNext la próxima llamada falla (para probar el manejo de errores de carga).
type ProductSource struct {
	products []entity.Product
	latency  time.Duration

	mu      sync.Mutex
	failErr error
}

// NewProductSource usa los productos embebidos.
func NewProductSource(latency time.Duration) (*ProductSource, error) {
	products, err := ParseSeed(seedJSON)
	if err != nil {
		return nil, err
	}
	return NewProductSourceWith(products, latency), nil
}

// NewProductSourceWith usa products en lugar de los embebidos.
func NewProductSourceWith(products []entity.Product, latency time.Duration) *ProductSource {
	return &ProductSource{products: entity.CloneAll(products), latency: latency}
}

// FailNext hace que la próxima FetchAll devuelva err (o un error genérico si es nil).
func (s *ProductSource) FailNext(err error) {
	if err == nil {
		err = errors.New("backend simulado no disponible")
	}
	s.mu.Lock()
	s.failErr = err
	s.mu.Unlock()
}

// FetchAll espera la latencia (cancelable por ctx) y devuelve una copia de la colección.
func (s *ProductSource) FetchAll(ctx context.Context) ([]entity.Product, error) {
	if s.latency > 0 {
		t := time.NewTimer(s.latency)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	s.mu.Lock()
	err := s.failErr
	s.failErr = nil
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return entity.CloneAll(s.products), nil
}

// ParseSeed decodifica y valida un fixture JSON de productos.
func ParseSeed(data []byte) ([]entity.Product, error) {
	var raw []seedProduct
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("seed de productos: %w", err)
	}
	out := make([]entity.Product, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		if _, dup := seen[r.ID]; dup || r.ID == "" {
			return nil, fmt.Errorf("seed de productos: id %q vacío o repetido", r.ID)
		}
		seen[r.ID] = struct{}{}
		cat, err := entity.ParseCategory(r.Category)
		if err != nil {
			return nil, fmt.Errorf("seed de productos %s: %w", r.ID, err)
		}
		st, err := entity.ParseStatus(r.Status)
		if err != nil {
			return nil, fmt.Errorf("seed de productos %s: %w", r.ID, err)
		}
		if r.QuantityInStock < 0 || r.Price.IsNegative() {
			return nil, fmt.Errorf("seed de productos %s: cantidad o precio negativo", r.ID)
		}
		out = append(out, entity.Product{
			ID:              r.ID,
			Name:            r.Name,
			SKU:             r.SKU,
			Supplier:        r.Supplier,
			Category:        cat,
			Status:          st,
			QuantityInStock: r.QuantityInStock,
			Price:           entity.RoundPrice(r.Price),
			Icon:            entity.IconID(r.Icon),
			CreatedAt:       r.CreatedAt,
		})
	}
	return out, nil
}
