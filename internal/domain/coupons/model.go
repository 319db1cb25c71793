package coupons

import "time"

// DefaultOffer es el incentivo fijo del programa good samaritan.
const DefaultOffer = "50% off your first Whoofsy tag"

// Coupon es el cupón one-time que se emite tras una reunión, keyed por el
// code del tag. No hay foreign key hacia ScanEvent ni Pet: la asociación
// con la reunión es solo por code.
type Coupon struct {
	ID   string
	Code string

	Offer    string
	Redeemed bool

	CreatedAt  time.Time
	RedeemedAt *time.Time
}
