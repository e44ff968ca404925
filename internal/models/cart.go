package models

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Cart is the guest's page-session gift selection. It is a view model: the
// server never trusts its values at checkout, prices are re-resolved from
// the gift records then.
type Cart struct {
	EventID int            `json:"event_id"`
	Tier    PriceTier      `json:"tier"`
	Items   []CartLineItem `json:"items"`
}

// CartLineItem is one selected gift. CartItemID is unique per line so the
// same gift added twice yields two independently removable lines.
type CartLineItem struct {
	CartItemID string  `json:"cart_item_id"`
	GiftID     int     `json:"gift_id"`
	Title      string  `json:"title"`
	ImageURL   string  `json:"image_url"`
	Value      float64 `json:"value"`
}

// NewCart creates an empty cart bound to one event page and price tier
func NewCart(eventID int, tier PriceTier) *Cart {
	return &Cart{EventID: eventID, Tier: tier}
}

// Add appends a resolved gift as a new line item and returns the line
func (c *Cart) Add(gift ResolvedGift) CartLineItem {
	item := CartLineItem{
		CartItemID: uuid.NewString(),
		GiftID:     gift.ID,
		Title:      gift.Title,
		ImageURL:   gift.ImageURL,
		Value:      gift.Value,
	}
	c.Items = append(c.Items, item)
	return item
}

// Remove deletes the single line with the given cart item id. Removing an
// unknown id is a no-op and returns false.
func (c *Cart) Remove(cartItemID string) bool {
	for i, item := range c.Items {
		if item.CartItemID == cartItemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Count returns the number of line items
func (c *Cart) Count() int {
	return len(c.Items)
}

// IsEmpty returns true when the cart holds no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Total sums all line values, rounded to the two-decimal currency
// convention.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Value
	}
	return Round2(total)
}

// GiftSortMode orders the browsable gift list; sorting never touches the
// cart itself.
type GiftSortMode string

const (
	SortDefault   GiftSortMode = "default"
	SortPriceAsc  GiftSortMode = "price-asc"
	SortPriceDesc GiftSortMode = "price-desc"
	SortTitleAZ   GiftSortMode = "az"
	SortTitleZA   GiftSortMode = "za"
)

// SortGifts returns a sorted copy of the displayed gift list. The default
// mode is a stable order by gift id.
func SortGifts(gifts []ResolvedGift, mode GiftSortMode) []ResolvedGift {
	sorted := make([]ResolvedGift, len(gifts))
	copy(sorted, gifts)

	switch mode {
	case SortPriceAsc:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Value < sorted[j].Value })
	case SortPriceDesc:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Value > sorted[j].Value })
	case SortTitleAZ:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Title) < strings.ToLower(sorted[j].Title)
		})
	case SortTitleZA:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Title) > strings.ToLower(sorted[j].Title)
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	}

	return sorted
}
