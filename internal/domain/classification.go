package domain

// Classification is the structured triage result produced by the external
// classifier for a ticket's title and description.
type Classification struct {
	Prioridad      TicketPrioridad
	Categoria      TicketCategoria
	Departamento   TicketDepartamento
	TiempoEstimado string
}

// FallbackClassification is the fixed result used whenever the external
// classifier fails. Classification failure must never block ticket creation.
func FallbackClassification() Classification {
	return Classification{
		Prioridad:      PrioridadMedia,
		Categoria:      CategoriaSoftware,
		Departamento:   DepartamentoSoporte,
		TiempoEstimado: "2-4 horas",
	}
}
