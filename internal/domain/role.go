package domain

import "fmt"

// Role enumerates the closed set of account roles. Every mutating endpoint is
// gated on one of these values.
type Role string

const (
	RoleMasterAdmin  Role = "MASTER_ADMIN"
	RoleAdmin        Role = "ADMIN"
	RoleSoporte      Role = "SOPORTE"
	RoleUsuarioFinal Role = "USUARIO_FINAL"
)

// Roles lists all valid values.
var Roles = []Role{RoleMasterAdmin, RoleAdmin, RoleSoporte, RoleUsuarioFinal}

// Valid reports whether the role is one of the known variants.
func (r Role) Valid() bool {
	switch r {
	case RoleMasterAdmin, RoleAdmin, RoleSoporte, RoleUsuarioFinal:
		return true
	}
	return false
}

// IsPrivileged reports whether the role is MASTER_ADMIN or ADMIN. Creating or
// editing an account with a privileged role requires a MASTER_ADMIN actor.
func (r Role) IsPrivileged() bool {
	return r == RoleMasterAdmin || r == RoleAdmin
}

// IsStaff reports whether the role may triage tickets and read metrics.
func (r Role) IsStaff() bool {
	return r == RoleMasterAdmin || r == RoleAdmin || r == RoleSoporte
}

// CanManageUsers reports whether the role may list, register, edit and delete
// accounts.
func (r Role) CanManageUsers() bool {
	return r == RoleMasterAdmin || r == RoleAdmin
}

// CanSeeAllTickets reports whether ticket listings are unscoped for the role.
// End users only ever see their own tickets.
func (r Role) CanSeeAllTickets() bool {
	return r.IsStaff()
}

// ValidateScope checks the role-scoped attributes: a support group belongs only
// to SOPORTE accounts and a campaign only to USUARIO_FINAL accounts, and the
// matching attribute is mandatory for those two roles.
func (r Role) ValidateScope(grupoSoporte, campana *string) error {
	switch r {
	case RoleSoporte:
		if grupoSoporte == nil || *grupoSoporte == "" {
			return fmt.Errorf("grupo_soporte requerido para rol %s", r)
		}
		if campana != nil && *campana != "" {
			return fmt.Errorf("campana no aplica para rol %s", r)
		}
	case RoleUsuarioFinal:
		if campana == nil || *campana == "" {
			return fmt.Errorf("campana requerida para rol %s", r)
		}
		if grupoSoporte != nil && *grupoSoporte != "" {
			return fmt.Errorf("grupo_soporte no aplica para rol %s", r)
		}
	default:
		if grupoSoporte != nil && *grupoSoporte != "" {
			return fmt.Errorf("grupo_soporte no aplica para rol %s", r)
		}
		if campana != nil && *campana != "" {
			return fmt.Errorf("campana no aplica para rol %s", r)
		}
	}
	return nil
}
