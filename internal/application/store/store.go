// Package store guarda en memoria la colección de productos de una sesión y es la única
// autoridad sobre ella. Expone además el estado transitorio que la pantalla asocia a la
// colección (producto seleccionado y diálogos abiertos).
package store

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jhoicas/bsgoods-inventory/internal/domain"
	"github.com/jhoicas/bsgoods-inventory/internal/domain/entity"
	"github.com/jhoicas/bsgoods-inventory/internal/domain/repository"
)

// Latency retardo simulado del backend por operación de escritura.
type Latency struct {
	Add    time.Duration
	Update time.Duration
	Delete time.Duration
}

// DefaultLatency retardos por defecto del backend simulado.
var DefaultLatency = Latency{
	Add:    789 * time.Millisecond,
	Update: 1500 * time.Millisecond,
	Delete: 1500 * time.Millisecond,
}

// UIState foto del estado transitorio ligado a la colección.
type UIState struct {
	Loading           bool
	Selected          *entity.Product
	ProductDialogOpen bool
	DeleteDialogOpen  bool
}

// Option configura el Store.
type Option func(*Store)

// WithLatency reemplaza los retardos simulados.
func WithLatency(l Latency) Option {
	return func(s *Store) { s.latency = l }
}

// Store colección en memoria con indicador de operación en curso.
//
// Las operaciones se ejecutan de a una (op); las que llegan mientras otra corre esperan
// su turno. inFlight cuenta las que están corriendo o esperando, de modo que IsLoading
// es verdadero desde que se invoca la primera hasta que termina la última.
type Store struct {
	source  repository.ProductSource
	latency Latency

	op       sync.Mutex
	inFlight atomic.Int32

	mu            sync.RWMutex
	products      []entity.Product
	selected      *entity.Product
	productDialog bool
	deleteDialog  bool
}

// New crea un store vacío; la colección se llena con Load.
func New(source repository.ProductSource, opts ...Option) *Store {
	s := &Store{source: source, latency: DefaultLatency}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// begin marca la operación como en curso y espera el turno. El func devuelto libera
// ambos y debe llamarse siempre (defer).
func (s *Store) begin() func() {
	s.inFlight.Add(1)
	s.op.Lock()
	return func() {
		s.op.Unlock()
		s.inFlight.Add(-1)
	}
}

// Load reemplaza la colección completa con lo que devuelve el origen de datos.
// Si falla, la colección previa queda intacta.
func (s *Store) Load(ctx context.Context) ([]entity.Product, error) {
	return s.BeginLoad().Run(ctx)
}

// PendingLoad carga ya reservada: el store figura ocupado desde BeginLoad hasta que
// Run termina.
type PendingLoad struct {
	s    *Store
	done func()
	once sync.Once
}

// BeginLoad toma el turno de una carga y levanta el indicador de ocupado sin esperar
// al origen de datos. Run debe llamarse exactamente una vez.
func (s *Store) BeginLoad() *PendingLoad {
	return &PendingLoad{s: s, done: s.begin()}
}

// Run ejecuta la carga reservada. La cancelación de ctx no la interrumpe: una carga
// que empezó siempre termina.
func (l *PendingLoad) Run(ctx context.Context) ([]entity.Product, error) {
	defer l.once.Do(l.done)
	s := l.s

	fetched, err := s.source.FetchAll(context.WithoutCancel(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLoadFailure, err)
	}
	products := entity.CloneAll(fetched)
	for i := range products {
		products[i].Price = entity.RoundPrice(products[i].Price)
	}

	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
	return entity.CloneAll(products), nil
}

// Add agrega p al final de la colección. El producto ya debe venir validado y con ID
// y CreatedAt asignados.
func (s *Store) Add(ctx context.Context, p entity.Product) error {
	done := s.begin()
	defer done()

	wait(s.latency.Add)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(p.ID) >= 0 {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateID, p.ID)
	}
	p.Price = entity.RoundPrice(p.Price)
	s.products = append(s.products, p)
	return nil
}

// Update reemplaza en su lugar el producto con p.ID conservando su CreatedAt.
// Al terminar, con éxito o no, cierra el diálogo de edición y limpia la selección.
func (s *Store) Update(ctx context.Context, p entity.Product) error {
	done := s.begin()
	defer done()

	wait(s.latency.Update)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() {
		s.productDialog = false
		s.selected = nil
	}()

	i := s.indexOf(p.ID)
	if i < 0 {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, p.ID)
	}
	p.CreatedAt = s.products[i].CreatedAt
	p.Price = entity.RoundPrice(p.Price)
	s.products[i] = p
	return nil
}

// Delete quita el producto id. Al terminar, con éxito o no, cierra el diálogo de
// confirmación y limpia la selección.
func (s *Store) Delete(ctx context.Context, id string) error {
	done := s.begin()
	defer done()

	wait(s.latency.Delete)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() {
		s.deleteDialog = false
		s.selected = nil
	}()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	s.products = slices.Delete(s.products, i, i+1)
	return nil
}

// IsLoading indica si hay alguna operación corriendo o en espera.
func (s *Store) IsLoading() bool {
	return s.inFlight.Load() > 0
}

// Products copia de la colección en orden de inserción.
func (s *Store) Products() []entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return entity.CloneAll(s.products)
}

// Get busca un producto por id.
func (s *Store) Get(id string) (entity.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.products[i], true
	}
	return entity.Product{}, false
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// Select fija (o limpia con nil) el producto seleccionado.
func (s *Store) Select(p *entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p == nil {
		s.selected = nil
		return
	}
	cp := *p
	s.selected = &cp
}

// Selected copia del producto seleccionado, o nil.
func (s *Store) Selected() *entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return nil
	}
	cp := *s.selected
	return &cp
}

func (s *Store) SetProductDialogOpen(open bool) {
	s.mu.Lock()
	s.productDialog = open
	s.mu.Unlock()
}

func (s *Store) SetDeleteDialogOpen(open bool) {
	s.mu.Lock()
	s.deleteDialog = open
	s.mu.Unlock()
}

// DismissProductDialog cierra el diálogo de edición y limpia la selección sin pasar
// por el backend simulado.
func (s *Store) DismissProductDialog() {
	s.mu.Lock()
	s.productDialog = false
	s.selected = nil
	s.mu.Unlock()
}

// DismissDeleteDialog cierra el diálogo de borrado y limpia la selección.
func (s *Store) DismissDeleteDialog() {
	s.mu.Lock()
	s.deleteDialog = false
	s.selected = nil
	s.mu.Unlock()
}

// UIState devuelve el estado transitorio actual.
func (s *Store) UIState() UIState {
	st := UIState{Loading: s.IsLoading(), Selected: s.Selected()}
	s.mu.RLock()
	st.ProductDialogOpen = s.productDialog
	st.DeleteDialogOpen = s.deleteDialog
	s.mu.RUnlock()
	return st
}

// indexOf requiere s.mu tomado.
func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.products, func(p entity.Product) bool { return p.ID == id })
}

// wait simula la latencia del backend. No se interrumpe con el contexto: una
// operación que empezó siempre termina.
func wait(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}
