package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"whoofsy-server/internal/domain/scans"
)

type scanRepo struct {
	mu   sync.RWMutex
	byID map[string]scans.ScanEvent
}

func NewScanRepo() scans.Repository {
	return &scanRepo{
		byID: make(map[string]scans.ScanEvent),
	}
}

func (r *scanRepo) Create(ctx context.Context, e scans.ScanEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("scan event id required")
	}
	// append-only: nunca se pisa un evento existente
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("scan event already exists")
	}
	r.byID[e.ID] = e
	return nil
}

func (r *scanRepo) ListByCode(ctx context.Context, code string) ([]scans.ScanEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scans.ScanEvent, 0)
	for _, e := range r.byID {
		if e.Code == code {
			out = append(out, e)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})

	return out, nil
}
