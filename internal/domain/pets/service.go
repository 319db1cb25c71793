package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name              string
	Breed             string
	Color             string
	Photos            []string
	MedicalNotes      string
	Allergies         string
	ContactVisibility string
}

func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}

	vis := ContactVisibility(strings.TrimSpace(in.ContactVisibility))
	if vis == "" {
		vis = VisibilityPhone
	}
	if !ValidVisibility(vis) {
		return Pet{}, ErrInvalidInput
	}

	photos := in.Photos
	if photos == nil {
		photos = []string{}
	}

	now := s.now()
	p := Pet{
		ID:                uuid.NewString(),
		OwnerID:           ownerID,
		Name:              strings.TrimSpace(in.Name),
		Breed:             strings.TrimSpace(in.Breed),
		Color:             strings.TrimSpace(in.Color),
		Photos:            photos,
		MedicalNotes:      strings.TrimSpace(in.MedicalNotes),
		Allergies:         strings.TrimSpace(in.Allergies),
		Status:            StatusActive,
		ContactVisibility: vis,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// SetStatus cambia ACTIVE/LOST. Un status inválido no toca nada.
func (s *Service) SetStatus(ctx context.Context, id string, status Status) (Pet, error) {
	if !ValidStatus(status) {
		return Pet{}, ErrInvalidInput
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	p.Status = status
	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}
