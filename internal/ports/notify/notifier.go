package notify

import "context"

// ScanAlert es lo que se le manda al canal de avisos cuando un tag de un
// dueño premium es escaneado. La entrega real (email/push) vive fuera de
// este servicio.
type ScanAlert struct {
	Code    string
	OwnerID string
	PetID   string

	Lat      *float64
	Lng      *float64
	Accuracy *float64
}

// Notifier despacha alertas de escaneo a un collaborator externo.
type Notifier interface {
	SendScanAlert(ctx context.Context, a ScanAlert) error
}
