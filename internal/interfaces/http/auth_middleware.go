package http

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ephone-api/internal/application/dto"
	"github.com/jhoicas/ephone-api/internal/domain"
	"github.com/jhoicas/ephone-api/internal/domain/entity"
	"github.com/jhoicas/ephone-api/pkg/jwt"
)

// Locals keys cargadas por AuthMiddleware.
const (
	LocalUserID    = "user_id"
	LocalRole      = "role"
	LocalSectorIDs = "sector_ids"
)

// AuthMiddleware valida el Bearer Token JWT y carga usuario, rol y sectores en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)
		c.Locals(LocalSectorIDs, claims.SectorIDs)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(LocalUserID).(int64)
	return id
}

// GetRole devuelve el rol del token.
func GetRole(c *fiber.Ctx) string {
	role, _ := c.Locals(LocalRole).(string)
	return role
}

// GetSectorIDs devuelve los sectores asignados a un usuario de rol sector.
func GetSectorIDs(c *fiber.Ctx) []int64 {
	ids, _ := c.Locals(LocalSectorIDs).([]int64)
	return ids
}

// RequireRole deja pasar solo a los roles indicados. Debe ir después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no contiene rol"})
		}
		if !slices.Contains(roles, role) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para este recurso"})
		}
		return c.Next()
	}
}

// UserLookup relee el usuario del token; lo implementa *usecase.UserUseCase.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*dto.UserResponse, error)
}

// RequireSectorAccess verifica que el usuario pueda operar sobre el sector :id.
// admin y finance acceden a todos; el rol sector solo a los suyos.
// Con users != nil el rol y los sectores se releen del almacenamiento, así un cambio
// de asignación rige de inmediato y no recién al vencer el token. Con nil se usan los claims.
func RequireSectorAccess(param string, users UserLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sectorID, err := paramInt64(c, param)
		if err != nil {
			return writeError(c, err)
		}
		u := entity.User{Role: GetRole(c), SectorIDs: GetSectorIDs(c)}
		if u.Role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no contiene rol"})
		}
		if users != nil {
			current, err := users.GetByID(c.UserContext(), GetUserID(c))
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "usuario inexistente"})
				}
				return writeError(c, err)
			}
			u.Role, u.SectorIDs = current.Role, current.SectorIDs
		}
		if !u.CanAccessSector(sectorID) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sin acceso a este sector"})
		}
		return c.Next()
	}
}
