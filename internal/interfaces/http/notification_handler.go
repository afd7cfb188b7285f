package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bsgoods-inventory/internal/application/dto"
)

// NotificationHandler avisos (toasts) pendientes de la sesión.
type NotificationHandler struct{}

func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{}
}

// Drain godoc
// @Summary      Avisos pendientes
// @Description  Devuelve y vacía la cola de avisos de la sesión, del más antiguo al más reciente.
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.NotificationResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) Drain(c *fiber.Ctx) error {
	pending := GetSession(c).Feed.Drain()
	out := make([]dto.NotificationResponse, 0, len(pending))
	for _, n := range pending {
		out = append(out, dto.NotificationResponse{
			Level:     string(n.Level),
			Message:   n.Message,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(out)
}
