package dto

import "time"

// LoginRequest payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse carries the issued bearer token and the authenticated account.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// RegisterRequest payload for admin-driven account creation.
type RegisterRequest struct {
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	FullName     string  `json:"nombre_completo"`
	Password     string  `json:"password"`
	Role         string  `json:"role"`
	GrupoSoporte *string `json:"grupo_soporte"`
	Campana      *string `json:"campana"`
}
