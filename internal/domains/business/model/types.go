package model

// Type is a business category from the fixed taxonomy.
type Type string

const (
	TypeBarberia    Type = "barberia"
	TypePeluqueria  Type = "peluqueria"
	TypeSpa         Type = "spa"
	TypeTatuajes    Type = "tatuajes"
	TypeClinica     Type = "clinica"
	TypeDental      Type = "dental"
	TypeGym         Type = "gym"
	TypeVeterinaria Type = "veterinaria"
)

type TypeConfig struct {
	Name            string   `json:"name"`
	Icon            string   `json:"icon"`
	Color           string   `json:"color"`
	Services        []string `json:"services"`
	Features        []string `json:"features"`
	DefaultDuration int      `json:"defaultDuration"`
}

var typeOrder = []Type{
	TypeBarberia, TypePeluqueria, TypeSpa, TypeTatuajes,
	TypeClinica, TypeDental, TypeGym, TypeVeterinaria,
}

var typeConfigs = map[Type]TypeConfig{
	TypeBarberia: {
		Name:            "Barbería",
		Icon:            "bi-scissors",
		Color:           "#2C3E50",
		Services:        []string{"Corte de Cabello", "Barba", "Afeitado", "Coloración"},
		Features:        []string{"Galería de estilos", "Historial de clientes", "Productos"},
		DefaultDuration: 30,
	},
	TypePeluqueria: {
		Name:            "Peluquería",
		Icon:            "bi-brush",
		Color:           "#E91E63",
		Services:        []string{"Corte", "Tinte", "Mechas", "Tratamiento", "Peinado"},
		Features:        []string{"Catálogo de servicios", "Productos de belleza", "Membresías"},
		DefaultDuration: 45,
	},
	TypeSpa: {
		Name:            "Spa",
		Icon:            "bi-flower1",
		Color:           "#00BCD4",
		Services:        []string{"Masaje", "Facial", "Corporal", "Manicure", "Pedicure"},
		Features:        []string{"Paquetes", "Cabinas", "Terapeutas especializados"},
		DefaultDuration: 60,
	},
	TypeTatuajes: {
		Name:            "Estudio de Tatuajes",
		Icon:            "bi-palette",
		Color:           "#9C27B0",
		Services:        []string{"Tatuaje", "Diseño Personalizado", "Cover Up", "Retoque"},
		Features:        []string{"Portafolio de artistas", "Consulta previa", "Cuidados post-tatuaje"},
		DefaultDuration: 120,
	},
	TypeClinica: {
		Name:            "Clínica Médica",
		Icon:            "bi-hospital",
		Color:           "#4CAF50",
		Services:        []string{"Consulta General", "Especialidades", "Laboratorio", "Imagenología"},
		Features:        []string{"Historial médico", "Recetas", "Recordatorios"},
		DefaultDuration: 30,
	},
	TypeDental: {
		Name:            "Clínica Dental",
		Icon:            "bi-tooth",
		Color:           "#03A9F4",
		Services:        []string{"Limpieza", "Ortodoncia", "Endodoncia", "Implantes"},
		Features:        []string{"Expediente dental", "Planes de tratamiento", "Radiografías"},
		DefaultDuration: 45,
	},
	TypeGym: {
		Name:            "Gimnasio",
		Icon:            "bi-trophy",
		Color:           "#FF5722",
		Services:        []string{"Entrenamiento Personal", "Clases Grupales", "Nutrición", "Evaluación"},
		Features:        []string{"Rutinas personalizadas", "Seguimiento de progreso", "Planes"},
		DefaultDuration: 60,
	},
	TypeVeterinaria: {
		Name:            "Veterinaria",
		Icon:            "bi-heart-pulse",
		Color:           "#8BC34A",
		Services:        []string{"Consulta", "Vacunación", "Cirugía", "Estética Canina"},
		Features:        []string{"Historial de mascotas", "Recordatorios de vacunas", "Recetas"},
		DefaultDuration: 30,
	},
}

func (t Type) Valid() bool {
	_, ok := typeConfigs[t]

	return ok
}

// Types returns the taxonomy in display order.
func Types() []Type {
	out := make([]Type, len(typeOrder))
	copy(out, typeOrder)

	return out
}

// LookupType returns a copy of the configuration for t.
func LookupType(t Type) (TypeConfig, bool) {
	cfg, ok := typeConfigs[t]
	if !ok {
		return TypeConfig{}, false
	}

	cfg.Services = append([]string(nil), cfg.Services...)
	cfg.Features = append([]string(nil), cfg.Features...)

	return cfg, true
}
