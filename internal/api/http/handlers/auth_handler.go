package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/soporte360/internal/api/dto"
	"github.com/spec-kit/soporte360/internal/auth"
	"github.com/spec-kit/soporte360/internal/domain"
	"github.com/spec-kit/soporte360/internal/service"
	apperrors "github.com/spec-kit/soporte360/pkg/util"
)

// AuthHandler exposes login, identity and account registration endpoints.
type AuthHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, userService *service.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username y password requeridos", nil)
	}

	user, token, exp, err := h.authService.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{
		Token:     token,
		ExpiresAt: exp,
		User:      dto.UserFromDomain(user),
	})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(dto.UserFromDomain(actor))
}

// Campaigns handles GET /auth/campaigns.
func (h *AuthHandler) Campaigns(c *fiber.Ctx) error {
	return c.JSON(domain.Campanas)
}

// SupportGroups handles GET /auth/support-groups.
func (h *AuthHandler) SupportGroups(c *fiber.Ctx) error {
	return c.JSON(domain.GruposSoporte)
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.userService.Create(c.Context(), actor, service.UserCreateInput{
		Username:     req.Username,
		Email:        req.Email,
		FullName:     req.FullName,
		Password:     req.Password,
		Role:         domain.Role(req.Role),
		GrupoSoporte: req.GrupoSoporte,
		Campana:      req.Campana,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.UserFromDomain(user))
}
