package scans

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"whoofsy-server/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Escaneo real de un finder (la página pública manda geo + headers).
	r.Post("/scan", scanHandler(svc))

	// "Test My Tag" del dashboard del dueño: mismo flujo, sin geo y con
	// contexto de request sintético.
	r.Post("/scan/test", scanTestHandler(svc))
}

type scanRequest struct {
	Code     string   `json:"code"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
	Accuracy *float64 `json:"accuracy"`
}

type scanResponse struct {
	Status string  `json:"status"`
	Pet    petCard `json:"pet"`
	Contact struct {
		Visibility string  `json:"visibility"`
		Phone      *string `json:"phone"`
	} `json:"contact"`
	GoodSamaritanOffer struct {
		Headline string `json:"headline"`
		Copy     string `json:"copy"`
	} `json:"good_samaritan_offer"`
	PremiumAlert *premiumAlert `json:"premium_alert"`
}

type petCard struct {
	Name    *string  `json:"name"`
	Photos  []string `json:"photos"`
	Medical struct {
		Notes     *string `json:"notes"`
		Allergies *string `json:"allergies"`
	} `json:"medical"`
}

type premiumAlert struct {
	Type      string `json:"type"`
	Delivered bool   `json:"delivered"`
	Channel   string `json:"channel"`
	GPS       struct {
		Lat      *float64 `json:"lat"`
		Lng      *float64 `json:"lng"`
		Accuracy *float64 `json:"accuracy"`
	} `json:"gps"`
}

func scanHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req scanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		meta, _ := middleware.GetClientMeta(r.Context())

		res, err := svc.Resolve(r.Context(), ResolveInput{
			Code:      req.Code,
			Geo:       Geo{Lat: req.Lat, Lng: req.Lng, Accuracy: req.Accuracy},
			UserAgent: meta.UserAgent,
			Referrer:  meta.Referrer,
		})
		if err != nil {
			writeResolveError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toScanResponse(res))
	}
}

func scanTestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := strings.TrimSpace(r.URL.Query().Get("code"))
		if code == "" {
			http.Error(w, "code required", http.StatusBadRequest)
			return
		}

		// Sin geo y sin metadata del cliente: simula lo que vería un
		// finder anónimo con un request pelado.
		res, err := svc.Resolve(r.Context(), ResolveInput{Code: code})
		if err != nil {
			writeResolveError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toScanResponse(res))
	}
}

func writeResolveError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrTagNotActive) {
		// 404 tanto para "no existe" como para "no activado".
		http.Error(w, "tag not active", http.StatusNotFound)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func toScanResponse(res ScanResult) scanResponse {
	var out scanResponse
	out.Status = res.Status
	out.Pet.Name = res.Pet.Name
	out.Pet.Photos = res.Pet.Photos
	out.Pet.Medical.Notes = res.Pet.Medical.Notes
	out.Pet.Medical.Allergies = res.Pet.Medical.Allergies
	out.Contact.Visibility = res.Contact.Visibility
	out.Contact.Phone = res.Contact.Phone
	out.GoodSamaritanOffer.Headline = res.Offer.Headline
	out.GoodSamaritanOffer.Copy = res.Offer.Copy

	if res.PremiumAlert != nil {
		a := &premiumAlert{
			Type:      res.PremiumAlert.Type,
			Delivered: res.PremiumAlert.Delivered,
			Channel:   res.PremiumAlert.Channel,
		}
		a.GPS.Lat = res.PremiumAlert.GPS.Lat
		a.GPS.Lng = res.PremiumAlert.GPS.Lng
		a.GPS.Accuracy = res.PremiumAlert.GPS.Accuracy
		out.PremiumAlert = a
	}

	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
