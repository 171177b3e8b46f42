package dto

import (
	"time"

	"github.com/spec-kit/soporte360/internal/domain"
)

// UserResponse is the wire shape for accounts. The password hash never leaves
// the persistence layer.
type UserResponse struct {
	ID           string      `json:"id"`
	Username     string      `json:"username"`
	Email        string      `json:"email"`
	FullName     string      `json:"nombre_completo"`
	Role         domain.Role `json:"role"`
	GrupoSoporte *string     `json:"grupo_soporte,omitempty"`
	Campana      *string     `json:"campana,omitempty"`
	Active       bool        `json:"active"`
	CreatedBy    *string     `json:"created_by,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// UserFromDomain maps a domain user onto the wire shape, synthesizing the
// display name from the username when the full name is missing.
func UserFromDomain(user *domain.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		FullName:     user.DisplayName(),
		Role:         user.Role,
		GrupoSoporte: user.GrupoSoporte,
		Campana:      user.Campana,
		Active:       user.Active,
		CreatedBy:    user.CreatedBy,
		CreatedAt:    user.CreatedAt,
	}
}

// UserPatchRequest payload for account edits.
type UserPatchRequest struct {
	Email        *string `json:"email"`
	FullName     *string `json:"nombre_completo"`
	Password     *string `json:"password"`
	Role         *string `json:"role"`
	GrupoSoporte *string `json:"grupo_soporte"`
	Campana      *string `json:"campana"`
	Active       *bool   `json:"active"`
}
