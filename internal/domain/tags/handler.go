package tags

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"whoofsy-server/internal/domain/pets"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Post("/tags/activate", activateHandler(svc))
	r.Post("/tags/link", linkHandler(svc, petsSvc))
}

type activateRequest struct {
	Code   string `json:"code"`
	UserID string `json:"user_id"`
	Model  string `json:"model"`
}

type tagResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	OwnerID   *string   `json:"owner_id"`
	PetID     *string   `json:"pet_id"`
	Activated bool      `json:"activated"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type linkRequest struct {
	Code  string `json:"code"`
	PetID string `json:"pet_id"`
}

type linkResponse struct {
	Success bool `json:"success"`
	Tag     struct {
		Code string `json:"code"`
	} `json:"tag"`
	Pet struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"pet"`
}

func activateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req activateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		t, err := svc.Activate(r.Context(), req.Code, req.UserID, Model(req.Model))
		if err != nil {
			switch {
			case errors.Is(err, ErrAlreadyActivated):
				http.Error(w, "tag already activated", http.StatusBadRequest)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toTagResponse(t))
	}
}

func linkHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req linkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		t, err := svc.Link(r.Context(), req.Code, req.PetID)
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				http.Error(w, "tag not found", http.StatusNotFound)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		// Confirmación: re-lee el pet recién linkeado. Ojo: si no existe,
		// este 404 llega DESPUÉS de que el link ya se escribió.
		p, err := petsSvc.GetByID(r.Context(), t.PetID)
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		var resp linkResponse
		resp.Success = true
		resp.Tag.Code = t.Code
		resp.Pet.ID = p.ID
		resp.Pet.Name = p.Name

		writeJSON(w, http.StatusOK, resp)
	}
}

func toTagResponse(t Tag) tagResponse {
	return tagResponse{
		ID:        t.ID,
		Code:      t.Code,
		OwnerID:   nullable(t.OwnerID),
		PetID:     nullable(t.PetID),
		Activated: t.Activated,
		Model:     string(t.Model),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
