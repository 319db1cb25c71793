package pets

import "time"

// Status define el estado de la mascota tal como lo ve el finder.
// @Enum ACTIVE, LOST
type Status string

const (
	StatusActive Status = "ACTIVE"
	StatusLost   Status = "LOST"
)

func ValidStatus(s Status) bool {
	return s == StatusActive || s == StatusLost
}

// ContactVisibility indica qué canal de contacto quiere exponer el dueño
// en la página pública de escaneo.
// @Enum phone, form, both
type ContactVisibility string

const (
	VisibilityPhone ContactVisibility = "phone"
	VisibilityForm  ContactVisibility = "form"
	VisibilityBoth  ContactVisibility = "both"
)

func ValidVisibility(v ContactVisibility) bool {
	return v == VisibilityPhone || v == VisibilityForm || v == VisibilityBoth
}

// Pet es el perfil de una mascota registrada.
type Pet struct {
	ID      string
	OwnerID string

	Name  string
	Breed string
	Color string

	// URLs de fotos en orden de preferencia.
	Photos []string

	MedicalNotes string
	Allergies    string

	Status            Status
	ContactVisibility ContactVisibility

	CreatedAt time.Time
	UpdatedAt time.Time
}
