package domain

// Campanas lists the business campaigns an end user can belong to.
var Campanas = []string{
	"SXM",
	"Televentas",
	"Retencion",
	"Corporativo",
}

// GruposSoporte lists the support team assignments for SOPORTE accounts.
var GruposSoporte = []string{
	"Nivel 1",
	"Nivel 2",
	"Infraestructura",
	"Seguridad",
}
