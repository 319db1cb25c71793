package tags

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("tag not found")

type Repository interface {
	Create(ctx context.Context, t Tag) error
	Update(ctx context.Context, t Tag) error
	GetByCode(ctx context.Context, code string) (Tag, error)
}
