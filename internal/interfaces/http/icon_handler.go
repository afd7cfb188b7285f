package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bsgoods-inventory/internal/application/dto"
	"github.com/jhoicas/bsgoods-inventory/internal/application/icons"
)

// IconHandler catálogo de iconos del formulario.
type IconHandler struct {
	icons *icons.Registry
}

func NewIconHandler(reg *icons.Registry) *IconHandler {
	return &IconHandler{icons: reg}
}

// List godoc
// @Summary      Iconos disponibles
// @Tags         icons
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.IconResponse
// @Router       /api/icons [get]
func (h *IconHandler) List(c *fiber.Ctx) error {
	def := h.icons.DefaultIcon()
	all := h.icons.All()
	out := make([]dto.IconResponse, 0, len(all))
	for _, i := range all {
		out = append(out, dto.IconResponse{ID: string(i.ID), Label: i.Label, Default: i.ID == def})
	}
	return c.JSON(out)
}
