package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bsgoods-inventory/internal/application/auth"
	"github.com/jhoicas/bsgoods-inventory/internal/application/dto"
	"github.com/jhoicas/bsgoods-inventory/internal/application/session"
)

// AuthHandler maneja login y logout.
type AuthHandler struct {
	uc       *auth.AuthUseCase
	sessions *session.Registry
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, sessions *session.Registry) *AuthHandler {
	return &AuthHandler{uc: uc, sessions: sessions}
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Verifica el usuario, abre la sesión y carga los productos.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return respondError(c, err)
	}
	if _, err := h.sessions.Open(c.UserContext(), out.User.ID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Description  Descarta la colección y el estado de tabla de la sesión.
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.sessions.Close(GetUserID(c))
	return c.JSON(dto.MessageResponse{Message: "sesión cerrada"})
}

// Me godoc
// @Summary      Usuario actual
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
