package coupons

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/reunion", reunionHandler(svc))
	r.Post("/coupons/{couponID}/redeem", redeemHandler(svc))
}

type reunionRequest struct {
	Code string `json:"code"`
}

type couponResponse struct {
	ID         string     `json:"id"`
	Code       string     `json:"code"`
	Offer      string     `json:"offer"`
	Redeemed   bool       `json:"redeemed"`
	CreatedAt  time.Time  `json:"created_at"`
	RedeemedAt *time.Time `json:"redeemed_at"`
}

func reunionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reunionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.MarkReunion(r.Context(), req.Code)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "code required", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toCouponResponse(c))
	}
}

func redeemHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.Redeem(r.Context(), chi.URLParam(r, "couponID"))
		if err != nil {
			switch {
			case errors.Is(err, ErrAlreadyRedeemed):
				http.Error(w, "coupon already redeemed", http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "coupon not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toCouponResponse(c))
	}
}

func toCouponResponse(c Coupon) couponResponse {
	return couponResponse{
		ID:         c.ID,
		Code:       c.Code,
		Offer:      c.Offer,
		Redeemed:   c.Redeemed,
		CreatedAt:  c.CreatedAt,
		RedeemedAt: c.RedeemedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
