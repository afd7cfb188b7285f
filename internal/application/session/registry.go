// Package session mantiene el estado de pantalla de cada usuario autenticado: su propio
// store de productos y su propio estado de tabla. No se comparte nada entre usuarios.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/bsgoods-inventory/internal/application/icons"
	"github.com/jhoicas/bsgoods-inventory/internal/application/notify"
	"github.com/jhoicas/bsgoods-inventory/internal/application/store"
	"github.com/jhoicas/bsgoods-inventory/internal/application/table"
	"github.com/jhoicas/bsgoods-inventory/internal/application/usecase"
	"github.com/jhoicas/bsgoods-inventory/internal/application/validation"
	"github.com/jhoicas/bsgoods-inventory/internal/domain/repository"
	"github.com/jhoicas/bsgoods-inventory/pkg/logger"
)

// Session estado de un usuario.
type Session struct {
	UserID   string
	OpenedAt time.Time
	Store    *store.Store
	Table    *table.Table
	Products *usecase.ProductUseCase
	Feed     notify.Feed
}

// Config parámetros de cada sesión nueva.
type Config struct {
	Latency         store.Latency
	DefaultPageSize int
}

// Deps colaboradores compartidos por todas las sesiones.
type Deps struct {
	Source    repository.ProductSource
	Validator *validation.Validator
	IDs       usecase.IDGenerator
	Icons     *icons.Registry
	// NewFeed crea la cola de avisos de una sesión.
	NewFeed func() notify.Feed
	// NewNotifier arma el destino de avisos de la sesión a partir de su cola
	// (por ejemplo cola + log). Si es nil los avisos solo van a la cola.
	NewNotifier func(feed notify.Feed) notify.Notifier
}

// Registry sesiones abiertas por userID.
type Registry struct {
	deps Deps
	cfg  Config
	root *logger.Logger
	log  *logger.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry(deps Deps, cfg Config, log *logger.Logger) *Registry {
	if log == nil {
		log = logger.Nop()
	}
	return &Registry{
		deps:     deps,
		cfg:      cfg,
		root:     log,
		log:      log.Component("session"),
		sessions: make(map[string]*Session),
	}
}

// Open devuelve la sesión de userID, creándola si no existe. Una sesión nueva carga la
// colección una única vez; si la carga falla la sesión queda abierta con la colección
// vacía y el aviso de error en su cola.
func (r *Registry) Open(ctx context.Context, userID string) (*Session, error) {
	r.mu.Lock()
	if s, ok := r.sessions[userID]; ok {
		r.mu.Unlock()
		return s, nil
	}
	s, err := r.newSession(userID)
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}
	// la sesión se publica ya ocupada: nadie escribe antes de la carga inicial
	pending := s.Store.BeginLoad()
	r.sessions[userID] = s
	r.mu.Unlock()

	r.log.Info().Str("user_id", userID).Msg("sesión abierta")
	if err := s.Products.RunLoad(ctx, pending); err != nil {
		r.log.Warn().Err(err).Str("user_id", userID).Msg("carga inicial fallida")
	}
	return s, nil
}

// Get sesión abierta de userID.
func (r *Registry) Get(userID string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[userID]
	return s, ok
}

// Close descarta la sesión de userID (logout). Devuelve false si no existía.
func (r *Registry) Close(userID string) bool {
	r.mu.Lock()
	_, ok := r.sessions[userID]
	delete(r.sessions, userID)
	r.mu.Unlock()
	if ok {
		r.log.Info().Str("user_id", userID).Msg("sesión cerrada")
	}
	return ok
}

// CloseAll descarta todas las sesiones (apagado) y devuelve cuántas había.
func (r *Registry) CloseAll() int {
	r.mu.Lock()
	n := len(r.sessions)
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()
	r.log.Info().Int("count", n).Msg("sesiones cerradas")
	return n
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) newSession(userID string) (*Session, error) {
	tb, err := table.New(r.cfg.DefaultPageSize)
	if err != nil {
		return nil, err
	}
	feed := r.deps.NewFeed()
	st := store.New(r.deps.Source, store.WithLatency(r.cfg.Latency))
	var n notify.Notifier = feed
	if r.deps.NewNotifier != nil {
		n = r.deps.NewNotifier(feed)
	}
	sessionLog := logger.FromZerolog(r.root.With().Str("user_id", userID).Logger())
	products := usecase.NewProductUseCase(st, r.deps.Validator, r.deps.IDs, r.deps.Icons, n, sessionLog)
	return &Session{
		UserID:   userID,
		OpenedAt: time.Now(),
		Store:    st,
		Table:    tb,
		Products: products,
		Feed:     feed,
	}, nil
}
