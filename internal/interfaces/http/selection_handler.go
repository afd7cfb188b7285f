package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bsgoods-inventory/internal/application/dto"
	"github.com/jhoicas/bsgoods-inventory/internal/application/usecase"
	"github.com/jhoicas/bsgoods-inventory/internal/application/validation"
)

// SelectionHandler producto seleccionado y diálogos de edición/borrado.
type SelectionHandler struct {
	validator *validation.Validator
}

func NewSelectionHandler(v *validation.Validator) *SelectionHandler {
	return &SelectionHandler{validator: v}
}

// Get godoc
// @Summary      Selección actual
// @Tags         selection
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SelectionResponse
// @Router       /api/selection [get]
func (h *SelectionHandler) Get(c *fiber.Ctx) error {
	return c.JSON(GetSession(c).Products.Selection())
}

// Put godoc
// @Summary      Seleccionar producto
// @Description  Selecciona un producto y abre el diálogo "edit" o "delete".
// @Tags         selection
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SelectionRequest  true  "product_id, dialog"
// @Success      200   {object}  dto.SelectionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/selection [put]
func (h *SelectionHandler) Put(c *fiber.Ctx) error {
	var in dto.SelectionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.validator.Struct(in); err != nil {
		return respondError(c, err)
	}
	out, err := GetSession(c).Products.Select(in.ProductID, usecase.Dialog(in.Dialog))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Cancelar selección
// @Description  Cierra los diálogos y limpia la selección.
// @Tags         selection
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SelectionResponse
// @Router       /api/selection [delete]
func (h *SelectionHandler) Delete(c *fiber.Ctx) error {
	products := GetSession(c).Products
	products.ClearSelection()
	return c.JSON(products.Selection())
}

// ConfirmDelete godoc
// @Summary      Confirmar borrado
// @Description  Elimina el producto seleccionado (botón de confirmación del diálogo).
// @Tags         selection
// @Security     Bearer
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/selection/delete [post]
func (h *SelectionHandler) ConfirmDelete(c *fiber.Ctx) error {
	if err := GetSession(c).Products.DeleteSelected(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
