package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))

		// Cambia ACTIVE/LOST vía query param, como el backend original.
		pr.Patch("/{petID}/status", setStatusHandler(svc))
	})
}

type createPetRequest struct {
	OwnerID           string   `json:"owner_id"`
	Name              string   `json:"name"`
	Breed             string   `json:"breed"`
	Color             string   `json:"color"`
	Photos            []string `json:"photos"`
	MedicalNotes      string   `json:"medical_notes"`
	Allergies         string   `json:"allergies"`
	ContactVisibility string   `json:"contact_visibility"`
}

type petResponse struct {
	ID                string    `json:"id"`
	OwnerID           string    `json:"owner_id"`
	Name              string    `json:"name"`
	Breed             *string   `json:"breed"`
	Color             *string   `json:"color"`
	Photos            []string  `json:"photos"`
	MedicalNotes      *string   `json:"medical_notes"`
	Allergies         *string   `json:"allergies"`
	Status            string    `json:"status"`
	ContactVisibility string    `json:"contact_visibility"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), req.OwnerID, CreateInput{
			Name:              req.Name,
			Breed:             req.Breed,
			Color:             req.Color,
			Photos:            req.Photos,
			MedicalNotes:      req.MedicalNotes,
			Allergies:         req.Allergies,
			ContactVisibility: req.ContactVisibility,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID := strings.TrimSpace(r.URL.Query().Get("owner_id"))
		if ownerID == "" {
			http.Error(w, "owner_id required", http.StatusBadRequest)
			return
		}

		items, err := svc.ListByOwner(r.Context(), ownerID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func setStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		status := Status(r.URL.Query().Get("status"))

		p, err := svc.SetStatus(r.Context(), petID, status)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "invalid status", http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "pet not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:                p.ID,
		OwnerID:           p.OwnerID,
		Name:              p.Name,
		Breed:             nullable(p.Breed),
		Color:             nullable(p.Color),
		Photos:            p.Photos,
		MedicalNotes:      nullable(p.MedicalNotes),
		Allergies:         nullable(p.Allergies),
		Status:            string(p.Status),
		ContactVisibility: string(p.ContactVisibility),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// (users/pets/tags/scans/coupons) para no crear helpers compartidos
// antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
