package domain

// Tier classifies a customer for discount and loyalty purposes
type Tier string

const (
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
	TierVIP      Tier = "vip"
)

// Valid reports whether the tier is one of the known values.
func (t Tier) Valid() bool {
	switch t {
	case TierStandard, TierPremium, TierVIP:
		return true
	}
	return false
}

// Customer represents the owning customer of an order
type Customer struct {
	ID             string  `db:"id"              json:"id"`
	Email          string  `db:"email"           json:"email"`
	Tier           Tier    `db:"tier"            json:"tier"`
	TotalPurchases float64 `db:"total_purchases" json:"total_purchases"`
}
