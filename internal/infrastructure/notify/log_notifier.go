// Package notify implementa notify.Notifier: log estructurado, cola por sesión y fan-out.
package notify

import (
	"context"

	"github.com/jhoicas/bsgoods-inventory/internal/application/notify"
	"github.com/jhoicas/bsgoods-inventory/pkg/logger"
)

var _ notify.Notifier = (*LogNotifier)(nil)

// LogNotifier escribe cada aviso en el log. Los errores salen en nivel warn.
type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log.Component("notify")}
}

func (n *LogNotifier) Notify(_ context.Context, msg notify.Notification) {
	ev := n.log.Info()
	if msg.Level == notify.LevelError {
		ev = n.log.Warn()
	}
	ev.Str("level_ui", string(msg.Level)).Time("at", msg.CreatedAt).Msg(msg.Message)
}
