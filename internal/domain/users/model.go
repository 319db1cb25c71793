package users

import "time"

// Tier determina si el dueño recibe alertas premium en cada escaneo.
type Tier string

const (
	TierBasic   Tier = "basic"
	TierPremium Tier = "premium"
)

func ValidTier(t Tier) bool {
	return t == TierBasic || t == TierPremium
}

type User struct {
	ID         string
	Provider   string
	ExternalID string
	Email      string
	Name       string
	Phone      string
	Tier       Tier
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
