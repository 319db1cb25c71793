package scans

import "context"

type Repository interface {
	Create(ctx context.Context, e ScanEvent) error

	// ListByCode existe para el consumo analytics/auditoría; el flujo de
	// escaneo nunca lo usa.
	ListByCode(ctx context.Context, code string) ([]ScanEvent, error)
}
