package domain

// DiscountRule grants a percentage discount to a tier above a purchase threshold.
// Rules are evaluated in the order the pricing store returns them; the first
// rule matching the customer's tier with threshold <= subtotal wins.
type DiscountRule struct {
	Tier        Tier    `db:"tier"         json:"tier"`
	MinPurchase float64 `db:"min_purchase" json:"min_purchase"`
	Percent     float64 `db:"percent"      json:"percent"`
}

// Applies reports whether the rule matches the given tier and subtotal.
func (r DiscountRule) Applies(tier Tier, subtotal float64) bool {
	return r.Tier == tier && r.MinPurchase <= subtotal
}
