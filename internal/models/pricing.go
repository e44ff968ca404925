package models

import (
	"math"
	"net/url"
)

// PriceTier selects which of a gift's two prices applies to a request
type PriceTier string

const (
	TierDefault PriceTier = "default"
	TierPremium PriceTier = "premium"
)

// PriceListParam is the query parameter guests can use to force the
// premium list (?lista=premium), matching the shared premium link format.
const PriceListParam = "lista"

// ResolvedGift is a gift projected onto a single price tier. Value is the
// one price a guest sees, adds to the cart, and is ultimately charged.
type ResolvedGift struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	Value       float64 `json:"value"`
}

// ResolveTier determines the price tier for a page request. The tier is
// premium when the page was reached through the premium slug, or when the
// query string asks for the premium list explicitly.
func ResolveTier(isPremiumAccess bool, query url.Values) PriceTier {
	if isPremiumAccess || query.Get(PriceListParam) == "premium" {
		return TierPremium
	}
	return TierDefault
}

// ApplyTier projects gifts onto a single tier. Under the premium tier a
// gift's premium value applies only when it is positive; otherwise the
// default value is used. Gifts whose resolved value is not positive are
// dropped entirely. Input order is preserved.
func ApplyTier(gifts []*Gift, tier PriceTier) []ResolvedGift {
	resolved := make([]ResolvedGift, 0, len(gifts))
	for _, gift := range gifts {
		value := gift.ValueDefault
		if tier == TierPremium && gift.ValuePremium > 0 {
			value = gift.ValuePremium
		}
		if value <= 0 {
			continue
		}
		resolved = append(resolved, ResolvedGift{
			ID:          gift.ID,
			Title:       gift.Title,
			Description: gift.Description,
			ImageURL:    gift.ImageURL,
			Value:       Round2(value),
		})
	}
	return resolved
}

// Round2 rounds a currency amount to two decimal places. Every amount that
// reaches a display or a payment request goes through this first.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
