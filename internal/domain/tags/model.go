package tags

import "time"

// Model distingue el hardware físico del tag.
// @Enum smart_tag, smart_case
type Model string

const (
	ModelSmartTag  Model = "smart_tag"
	ModelSmartCase Model = "smart_case"
)

func ValidModel(m Model) bool {
	return m == ModelSmartTag || m == ModelSmartCase
}

// Tag es el identificador físico (QR/NFC) que escanea un finder.
// Un tag nace sin dueño ni mascota; la activación lo ata a un User y
// el link lo ata a un Pet, ambos pasos independientes.
type Tag struct {
	ID   string
	Code string // único a nivel global

	OwnerID string // vacío hasta la activación
	PetID   string // vacío hasta el link

	Activated bool
	Model     Model

	CreatedAt time.Time
	UpdatedAt time.Time
}
