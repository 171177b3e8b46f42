package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/soporte360/internal/auth"
	"github.com/spec-kit/soporte360/internal/domain"
	"github.com/spec-kit/soporte360/internal/repository"
	apperrors "github.com/spec-kit/soporte360/pkg/util"
)

// UserService is the user directory: account CRUD under role-creation and
// role-edit permission rules.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// UserCreateInput describes a registration payload.
type UserCreateInput struct {
	Username     string
	Email        string
	FullName     string
	Password     string
	Role         domain.Role
	GrupoSoporte *string
	Campana      *string
}

// UserPatch describes a partial account update. Nil fields are left untouched.
type UserPatch struct {
	Email        *string
	FullName     *string
	Password     *string
	Role         *domain.Role
	GrupoSoporte *string
	Campana      *string
	Active       *bool
}

// Create registers an account. Granting MASTER_ADMIN or ADMIN requires a
// MASTER_ADMIN actor.
func (s *UserService) Create(ctx context.Context, actor *domain.User, input UserCreateInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	if username == "" || email == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("username, email y password requeridos", nil)
	}
	if !input.Role.Valid() {
		return nil, apperrors.NewValidationError("rol inválido", map[string]any{"role": input.Role})
	}
	if input.Role.IsPrivileged() && actor.Role != domain.RoleMasterAdmin {
		return nil, apperrors.NewForbidden("solo master admin puede crear cuentas privilegiadas")
	}
	if err := input.Role.ValidateScope(input.GrupoSoporte, input.Campana); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}

	if err := s.checkAvailable(ctx, username, email); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		FullName:     strings.TrimSpace(input.FullName),
		Role:         input.Role,
		GrupoSoporte: input.GrupoSoporte,
		Campana:      input.Campana,
		Active:       true,
		CreatedBy:    &actor.ID,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Update applies a partial edit to an account. Touching a privileged account,
// or granting a privileged role, requires a MASTER_ADMIN actor. Role changes
// clear the scope attribute that no longer applies.
func (s *UserService) Update(ctx context.Context, actor *domain.User, id string, patch UserPatch) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("usuario", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}

	if user.Role.IsPrivileged() && actor.Role != domain.RoleMasterAdmin {
		return nil, apperrors.NewForbidden("solo master admin puede editar cuentas privilegiadas")
	}
	if patch.Role != nil {
		if !patch.Role.Valid() {
			return nil, apperrors.NewValidationError("rol inválido", map[string]any{"role": *patch.Role})
		}
		if patch.Role.IsPrivileged() && actor.Role != domain.RoleMasterAdmin {
			return nil, apperrors.NewForbidden("solo master admin puede otorgar roles privilegiados")
		}
		if *patch.Role != user.Role {
			if user.Role == domain.RoleUsuarioFinal {
				user.Campana = nil
			}
			if user.Role == domain.RoleSoporte {
				user.GrupoSoporte = nil
			}
			user.Role = *patch.Role
		}
	}

	if patch.Email != nil {
		user.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.FullName != nil {
		user.FullName = strings.TrimSpace(*patch.FullName)
	}
	if patch.GrupoSoporte != nil {
		user.GrupoSoporte = patch.GrupoSoporte
	}
	if patch.Campana != nil {
		user.Campana = patch.Campana
	}
	if patch.Active != nil {
		user.Active = *patch.Active
	}
	if patch.Password != nil && *patch.Password != "" {
		hash, err := auth.HashPassword(*patch.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		user.PasswordHash = hash
	}

	if err := user.Role.ValidateScope(user.GrupoSoporte, user.Campana); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("usuario", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Delete removes an account. Self-deletion is forbidden regardless of role.
func (s *UserService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if id == actor.ID {
		return apperrors.NewValidationError("no puedes eliminar tu propia cuenta", nil)
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("usuario", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	if user.Role.IsPrivileged() && actor.Role != domain.RoleMasterAdmin {
		return apperrors.NewForbidden("solo master admin puede eliminar cuentas privilegiadas")
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("usuario", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// List returns every account for the admin directory view.
func (s *UserService) List(ctx context.Context, actor *domain.User) ([]domain.User, error) {
	if !actor.Role.CanManageUsers() {
		return nil, apperrors.NewForbidden("insufficient role")
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

func (s *UserService) checkAvailable(ctx context.Context, username, email string) error {
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return apperrors.NewConflict("username ya registrado", map[string]any{"username": username})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return apperrors.MapError(err)
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return apperrors.NewConflict("email ya registrado", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return apperrors.MapError(err)
	}
	return nil
}
