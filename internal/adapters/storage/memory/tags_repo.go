package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"whoofsy-server/internal/domain/tags"
)

type tagRepo struct {
	mu     sync.RWMutex
	byCode map[string]tags.Tag
}

func NewTagRepo() tags.Repository {
	return &tagRepo{
		byCode: make(map[string]tags.Tag),
	}
}

func (r *tagRepo) Create(ctx context.Context, t tags.Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(t.ID) == "" || strings.TrimSpace(t.Code) == "" {
		return errors.New("tag id and code required")
	}
	// code único a nivel global
	if _, exists := r.byCode[t.Code]; exists {
		return errors.New("tag code already exists")
	}
	r.byCode[t.Code] = t
	return nil
}

func (r *tagRepo) Update(ctx context.Context, t tags.Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byCode[t.Code]; !exists {
		return tags.ErrNotFound
	}
	r.byCode[t.Code] = t
	return nil
}

func (r *tagRepo) GetByCode(ctx context.Context, code string) (tags.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byCode[code]
	if !ok {
		return tags.Tag{}, tags.ErrNotFound
	}
	return t, nil
}
