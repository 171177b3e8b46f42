package domain

import "time"

// User is the domain model for every account: end users submitting tickets,
// support staff triaging them, and the administrators managing accounts.
type User struct {
	ID           string
	Username     string
	Email        string
	FullName     string
	Role         Role
	GrupoSoporte *string
	Campana      *string
	Active       bool
	CreatedBy    *string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName returns the full name, falling back to the username when the
// account was created without one.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}
