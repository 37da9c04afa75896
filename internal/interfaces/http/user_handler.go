package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ephone-api/internal/application/dto"
	"github.com/jhoicas/ephone-api/internal/application/usecase"
)

// UserHandler administración de usuarios y configuración general (solo admin).
type UserHandler struct {
	users    *usecase.UserUseCase
	settings *usecase.SettingsUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(users *usecase.UserUseCase, settings *usecase.SettingsUseCase) *UserHandler {
	return &UserHandler{users: users, settings: settings}
}

// List GET /api/users
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.users.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear usuario
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "usuario"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.users.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update PUT /api/users/:id. Password vacío conserva el actual.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.users.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetSettings GET /api/settings
func (h *UserHandler) GetSettings(c *fiber.Ctx) error {
	out, err := h.settings.Get(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateSettings PUT /api/settings
func (h *UserHandler) UpdateSettings(c *fiber.Ctx) error {
	var in dto.SettingsDTO
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.settings.Update(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
