package notify

import (
	"context"
	"sync"

	"github.com/jhoicas/bsgoods-inventory/internal/application/notify"
)

var (
	_ notify.Notifier = (*Feed)(nil)
	_ notify.Notifier = Multi(nil)
)

// Feed cola acotada de avisos de una sesión; el cliente la vacía con Drain.
// Al llenarse se descartan los más antiguos.
type Feed struct {
	mu    sync.Mutex
	size  int
	items []notify.Notification
}

// NewFeed crea una cola de como máximo size avisos (mínimo 1).
func NewFeed(size int) *Feed {
	if size < 1 {
		size = 1
	}
	return &Feed{size: size}
}

func (f *Feed) Notify(_ context.Context, n notify.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, n)
	if over := len(f.items) - f.size; over > 0 {
		f.items = append(f.items[:0:0], f.items[over:]...)
	}
}

// Drain devuelve los avisos pendientes en orden de llegada y vacía la cola.
func (f *Feed) Drain() []notify.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.items
	f.items = nil
	if out == nil {
		return []notify.Notification{}
	}
	return out
}

func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

// Multi reenvía cada aviso a todos sus destinos, en orden.
type Multi []notify.Notifier

func (m Multi) Notify(ctx context.Context, n notify.Notification) {
	for _, t := range m {
		if t != nil {
			t.Notify(ctx, n)
		}
	}
}
