package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bsgoods-inventory/internal/application/dto"
	"github.com/jhoicas/bsgoods-inventory/internal/application/notify"
	"github.com/jhoicas/bsgoods-inventory/internal/application/session"
	"github.com/jhoicas/bsgoods-inventory/internal/application/store"
	"github.com/jhoicas/bsgoods-inventory/internal/application/validation"
	"github.com/jhoicas/bsgoods-inventory/internal/domain"
	"github.com/jhoicas/bsgoods-inventory/internal/domain/entity"
	"github.com/jhoicas/bsgoods-inventory/internal/infrastructure/idgen"
	"github.com/jhoicas/bsgoods-inventory/internal/infrastructure/mock"
	infranotify "github.com/jhoicas/bsgoods-inventory/internal/infrastructure/notify"
	"github.com/jhoicas/bsgoods-inventory/pkg/logger"
)

func newRegistry(t *testing.T, src *mock.ProductSource, pageSize int) *session.Registry {
	t.Helper()
	return session.NewRegistry(session.Deps{
		Source:    src,
		Validator: validation.New(nil),
		IDs:       idgen.UUIDGenerator{},
		NewFeed:   func() notify.Feed { return infranotify.NewFeed(10) },
	}, session.Config{Latency: store.Latency{}, DefaultPageSize: pageSize}, logger.Nop())
}

func seededSource(t *testing.T) *mock.ProductSource {
	t.Helper()
	src, err := mock.NewProductSource(0)
	require.NoError(t, err)
	return src
}

func TestOpen_CargaLaColeccionUnaVez(t *testing.T) {
	r := newRegistry(t, seededSource(t), 10)

	s1, err := r.Open(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, 15, s1.Store.Len())
	require.NoError(t, s1.Store.Delete(context.Background(), "1"))

	s2, err := r.Open(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Same(t, s1, s2)
	assert.Equal(t, 14, s2.Store.Len(), "reabrir no recarga")
}

func TestOpen_SesionesAisladasPorUsuario(t *testing.T) {
	r := newRegistry(t, seededSource(t), 10)

	a, err := r.Open(context.Background(), "a")
	require.NoError(t, err)
	b, err := r.Open(context.Background(), "b")
	require.NoError(t, err)

	require.NoError(t, a.Store.Delete(context.Background(), "1"))
	a.Table.ToggleCategory(entity.CategoryBooks)

	assert.Equal(t, 15, b.Store.Len())
	assert.Empty(t, b.Table.State().Categories)
	assert.Equal(t, 2, r.Len())
}

func TestOpen_CargaFallidaDejaSesionVaciaConAviso(t *testing.T) {
	src := seededSource(t)
	src.FailNext(errors.New("caído"))
	r := newRegistry(t, src, 10)

	s, err := r.Open(context.Background(), "u-1")

	require.NoError(t, err)
	assert.Equal(t, 0, s.Store.Len())
	msgs := s.Feed.Drain()
	require.Len(t, msgs, 1)
	assert.Equal(t, notify.LevelError, msgs[0].Level)
}

func TestOpen_SesionVisibleDuranteLaCargaYaEstaOcupada(t *testing.T) {
	src, err := mock.NewProductSource(300 * time.Millisecond)
	require.NoError(t, err)
	r := newRegistry(t, src, 10)

	opened := make(chan error, 1)
	go func() {
		_, err := r.Open(context.Background(), "u-1")
		opened <- err
	}()

	var s *session.Session
	require.Eventually(t, func() bool {
		var ok bool
		s, ok = r.Get("u-1")
		return ok
	}, time.Second, time.Millisecond)

	assert.True(t, s.Products.IsLoading(), "la sesión aparece con la carga inicial en curso")
	qty := 1
	price := decimal.RequireFromString("5")
	_, err = s.Products.Create(context.Background(), dto.ProductInput{
		Name: "Taza", SKU: "TAZ-1", Supplier: "Cerámicas", Category: "Others",
		Status: "Draft", QuantityInStock: &qty, Price: &price,
	})
	assert.ErrorIs(t, err, domain.ErrBusy)

	require.NoError(t, <-opened)
	assert.Equal(t, 15, s.Store.Len())
	assert.False(t, s.Products.IsLoading())
}

func TestOpen_TamanoDePaginaInvalido(t *testing.T) {
	r := newRegistry(t, seededSource(t), 7)

	_, err := r.Open(context.Background(), "u-1")

	assert.Error(t, err)
	assert.Equal(t, 0, r.Len())
}

func TestOpen_ConcurrenteCreaUnaSolaSesion(t *testing.T) {
	r := newRegistry(t, seededSource(t), 10)

	var wg sync.WaitGroup
	got := make([]*session.Session, 8)
	for i := range got {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := r.Open(context.Background(), "u-1")
			assert.NoError(t, err)
			got[i] = s
		}()
	}
	wg.Wait()

	for _, s := range got {
		assert.Same(t, got[0], s)
	}
}

func TestCloseYCloseAll(t *testing.T) {
	r := newRegistry(t, seededSource(t), 10)
	_, _ = r.Open(context.Background(), "a")
	_, _ = r.Open(context.Background(), "b")

	assert.True(t, r.Close("a"))
	assert.False(t, r.Close("a"))
	_, ok := r.Get("a")
	assert.False(t, ok)

	assert.Equal(t, 1, r.CloseAll())
	assert.Equal(t, 0, r.Len())
}
