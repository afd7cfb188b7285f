// Package notify define el puerto de avisos al usuario (los "toasts" de la pantalla).
package notify

import (
	"context"
	"time"
)

// Level gravedad del aviso.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notification aviso a mostrar.
type Notification struct {
	Level     Level
	Message   string
	CreatedAt time.Time
}

// Notifier entrega avisos. Las implementaciones no devuelven error: un aviso perdido
// nunca debe hacer fallar la operación que lo generó.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Success construye un aviso de éxito con la hora actual.
func Success(msg string) Notification {
	return Notification{Level: LevelSuccess, Message: msg, CreatedAt: time.Now()}
}

// Error construye un aviso de error con la hora actual.
func Error(msg string) Notification {
	return Notification{Level: LevelError, Message: msg, CreatedAt: time.Now()}
}

// Nop descarta todos los avisos.
type Nop struct{}

func (Nop) Notify(context.Context, Notification) {}

// Feed cola de avisos que el cliente consulta y vacía.
type Feed interface {
	Notifier
	Drain() []Notification
}
