package domain

import "testing"

func strPtr(s string) *string { return &s }

func TestRole_Capabilities(t *testing.T) {
	t.Parallel()

	if !RoleMasterAdmin.IsPrivileged() || !RoleAdmin.IsPrivileged() {
		t.Error("master admin and admin should be privileged")
	}
	if RoleSoporte.IsPrivileged() || RoleUsuarioFinal.IsPrivileged() {
		t.Error("soporte and usuario final should not be privileged")
	}

	if !RoleSoporte.IsStaff() {
		t.Error("soporte should be staff")
	}
	if RoleUsuarioFinal.IsStaff() {
		t.Error("usuario final should not be staff")
	}

	if RoleSoporte.CanManageUsers() {
		t.Error("soporte should not manage users")
	}
	if !RoleAdmin.CanManageUsers() {
		t.Error("admin should manage users")
	}

	if RoleUsuarioFinal.CanSeeAllTickets() {
		t.Error("usuario final should only see own tickets")
	}
}

func TestRole_Valid(t *testing.T) {
	t.Parallel()

	for _, role := range Roles {
		if !role.Valid() {
			t.Errorf("role %s should be valid", role)
		}
	}
	if Role("GERENTE").Valid() {
		t.Error("unknown role should be invalid")
	}
}

func TestRole_ValidateScope_Soporte(t *testing.T) {
	t.Parallel()

	if err := RoleSoporte.ValidateScope(strPtr("Nivel 1"), nil); err != nil {
		t.Errorf("soporte with grupo should be valid, got %v", err)
	}
	if err := RoleSoporte.ValidateScope(nil, nil); err == nil {
		t.Error("soporte without grupo should fail")
	}
	if err := RoleSoporte.ValidateScope(strPtr("Nivel 1"), strPtr("SXM")); err == nil {
		t.Error("soporte with campana should fail")
	}
}

func TestRole_ValidateScope_UsuarioFinal(t *testing.T) {
	t.Parallel()

	if err := RoleUsuarioFinal.ValidateScope(nil, strPtr("SXM")); err != nil {
		t.Errorf("usuario final with campana should be valid, got %v", err)
	}
	if err := RoleUsuarioFinal.ValidateScope(nil, nil); err == nil {
		t.Error("usuario final without campana should fail")
	}
	if err := RoleUsuarioFinal.ValidateScope(strPtr("Nivel 1"), strPtr("SXM")); err == nil {
		t.Error("usuario final with grupo should fail")
	}
}

func TestRole_ValidateScope_Admin(t *testing.T) {
	t.Parallel()

	if err := RoleAdmin.ValidateScope(nil, nil); err != nil {
		t.Errorf("admin without scope attributes should be valid, got %v", err)
	}
	if err := RoleAdmin.ValidateScope(strPtr("Nivel 1"), nil); err == nil {
		t.Error("admin with grupo should fail")
	}
	if err := RoleMasterAdmin.ValidateScope(nil, strPtr("SXM")); err == nil {
		t.Error("master admin with campana should fail")
	}
}

func TestUser_DisplayName(t *testing.T) {
	t.Parallel()

	user := &User{Username: "ana", FullName: "Ana García"}
	if got := user.DisplayName(); got != "Ana García" {
		t.Errorf("DisplayName = %s, want Ana García", got)
	}

	user.FullName = ""
	if got := user.DisplayName(); got != "ana" {
		t.Errorf("DisplayName = %s, want ana", got)
	}
}
