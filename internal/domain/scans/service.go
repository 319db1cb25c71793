package scans

import (
	"context"
	"errors"
	"strings"
	"time"

	"whoofsy-server/internal/domain/pets"
	"whoofsy-server/internal/domain/tags"
	"whoofsy-server/internal/domain/users"
	"whoofsy-server/internal/platform/logger"
	"whoofsy-server/internal/ports/notify"

	"github.com/google/uuid"
)

// ErrTagNotActive cubre a la vez "el code no existe" y "existe pero nunca
// se activó". Es deliberado: si el finder pudiera distinguir los dos casos
// podría enumerar el inventario pre-provisionado. No separar en dos errores.
var ErrTagNotActive = errors.New("tag not active")

const (
	offerHeadline = "Thank you for helping!"
	offerCopy     = "Get 50% off your first Whoofsy tag."
)

// Service es el resolver de escaneos: transforma un code escaneado en un
// registro de auditoría durable más el payload público del finder.
type Service struct {
	tags    tags.Repository
	pets    pets.Repository
	users   users.Repository
	repo    Repository
	alerter notify.Notifier
	log     logger.Logger
	now     func() time.Time
}

func NewService(
	tagsRepo tags.Repository,
	petsRepo pets.Repository,
	usersRepo users.Repository,
	repo Repository,
	alerter notify.Notifier,
	log logger.Logger,
) *Service {
	return &Service{
		tags:    tagsRepo,
		pets:    petsRepo,
		users:   usersRepo,
		repo:    repo,
		alerter: alerter,
		log:     log,
		now:     time.Now,
	}
}

type ResolveInput struct {
	Code string
	Geo  Geo

	UserAgent string
	Referrer  string
}

// Resolve ejecuta el flujo completo de escaneo.
// Efectos: exactamente UNA escritura durable (el ScanEvent); cero writes
// sobre tag/pet/user. El único error de negocio es ErrTagNotActive; pet u
// owner ausentes degradan a defaults, nunca fallan.
func (s *Service) Resolve(ctx context.Context, in ResolveInput) (ScanResult, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" {
		return ScanResult{}, ErrTagNotActive
	}

	tag, err := s.tags.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, tags.ErrNotFound) {
			return ScanResult{}, ErrTagNotActive
		}
		return ScanResult{}, err
	}
	if !tag.Activated {
		return ScanResult{}, ErrTagNotActive
	}

	// Pet y owner se resuelven con tolerancia: un tag activado puede no
	// tener mascota todavía, o el documento pudo haber desaparecido.
	var pet *pets.Pet
	if tag.PetID != "" {
		if p, err := s.pets.GetByID(ctx, tag.PetID); err == nil {
			pet = &p
		} else if !errors.Is(err, pets.ErrNotFound) {
			return ScanResult{}, err
		}
	}

	var owner *users.User
	if tag.OwnerID != "" {
		if u, err := s.users.GetByID(ctx, tag.OwnerID); err == nil {
			owner = &u
		} else if !errors.Is(err, users.ErrNotFound) {
			return ScanResult{}, err
		}
	}

	// Auditoría write-once. Si esto falla, falla todo el escaneo: no hay
	// compensación que devuelva el payload sin registro.
	event := ScanEvent{
		ID:        uuid.NewString(),
		Code:      code,
		Timestamp: s.now(),
		Geo:       in.Geo,
		UserAgent: in.UserAgent,
		Referrer:  in.Referrer,
	}
	if pet != nil {
		event.PetID = pet.ID
	}
	if owner != nil {
		event.OwnerID = owner.ID
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return ScanResult{}, err
	}

	tier := users.TierBasic
	if owner != nil {
		tier = owner.Tier
	}

	var alert *PremiumAlert
	if tier == users.TierPremium {
		alert = &PremiumAlert{
			Type:      "scan_alert",
			Delivered: true,
			Channel:   "email",
			GPS:       in.Geo,
		}

		// La entrega es best-effort: un canal caído no puede tumbar la
		// página urgente del finder.
		if s.alerter != nil {
			a := notify.ScanAlert{
				Code:     code,
				OwnerID:  owner.ID,
				Lat:      in.Geo.Lat,
				Lng:      in.Geo.Lng,
				Accuracy: in.Geo.Accuracy,
			}
			if pet != nil {
				a.PetID = pet.ID
			}
			if err := s.alerter.SendScanAlert(ctx, a); err != nil && s.log != nil {
				s.log.Warn("scan alert delivery failed", map[string]any{
					"code":  code,
					"error": err.Error(),
				})
			}
		}
	}

	return s.compose(pet, owner, alert), nil
}

func (s *Service) compose(pet *pets.Pet, owner *users.User, alert *PremiumAlert) ScanResult {
	res := ScanResult{
		Status: string(pets.StatusActive),
		Pet: PetCard{
			Photos: []string{},
		},
		Contact: ContactCard{
			Visibility: string(pets.VisibilityPhone),
		},
		Offer: Offer{
			Headline: offerHeadline,
			Copy:     offerCopy,
		},
		PremiumAlert: alert,
	}

	if pet != nil {
		res.Status = string(pet.Status)
		res.Pet.Name = nullable(pet.Name)
		if pet.Photos != nil {
			res.Pet.Photos = pet.Photos
		}
		res.Pet.Medical.Notes = nullable(pet.MedicalNotes)
		res.Pet.Medical.Allergies = nullable(pet.Allergies)
		res.Contact.Visibility = string(pet.ContactVisibility)
	}
	if owner != nil {
		res.Contact.Phone = nullable(owner.Phone)
	}

	return res
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
