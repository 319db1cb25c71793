package scans

import "time"

// Geo es una lectura GPS del finder. Cada coordenada es nullable por
// separado: hay browsers que mandan lat/lng sin accuracy.
type Geo struct {
	Lat      *float64
	Lng      *float64
	Accuracy *float64
}

// ScanEvent es el registro de auditoría de un escaneo. Es append-only:
// se escribe una vez y este flujo nunca lo vuelve a leer (lo consumen
// analytics aparte).
type ScanEvent struct {
	ID   string
	Code string

	// Snapshot desnormalizado de tag/pet/owner al momento del escaneo.
	PetID   string
	OwnerID string

	Timestamp time.Time

	Geo Geo

	UserAgent string
	Referrer  string
}

// ScanResult es el payload público que ve el finder en la página urgente.
type ScanResult struct {
	Status  string
	Pet     PetCard
	Contact ContactCard
	Offer   Offer

	// Solo para dueños premium; nil en basic o sin dueño resuelto.
	PremiumAlert *PremiumAlert
}

type PetCard struct {
	Name    *string
	Photos  []string
	Medical MedicalCard
}

type MedicalCard struct {
	Notes     *string
	Allergies *string
}

// ContactCard expone el canal configurado por el dueño. El resolver NO
// aplica la visibilidad (devuelve el phone aunque visibility sea "form");
// filtrar es responsabilidad de la capa de presentación.
type ContactCard struct {
	Visibility string
	Phone      *string
}

type Offer struct {
	Headline string
	Copy     string
}

type PremiumAlert struct {
	Type      string
	Delivered bool
	Channel   string
	GPS       Geo
}
