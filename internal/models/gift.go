package models

import (
	"errors"
	"strings"
	"time"
)

// Gift is a purchasable registry item belonging to exactly one event. It
// carries two price tiers: the default value shown to every guest and an
// optional premium override used for premium-list access.
type Gift struct {
	ID           int       `json:"id" db:"id"`
	EventID      int       `json:"event_id" db:"event_id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	ImageURL     string    `json:"image_url" db:"image_url"`
	ValueDefault float64   `json:"value_default" db:"value_default"`
	ValuePremium float64   `json:"value_premium" db:"value_premium"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// GiftInput is one gift row as submitted by the owner editor. ID zero means
// a new gift; a non-zero ID updates the existing row so past references to
// the gift stay stable across saves.
type GiftInput struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	ImageURL     string  `json:"image_url"`
	ValueDefault float64 `json:"value_default"`
	ValuePremium float64 `json:"value_premium"`
}

// Validate validates a gift editor row
func (g *GiftInput) Validate() error {
	if strings.TrimSpace(g.Title) == "" {
		return errors.New("gift title is required")
	}
	if len(g.Title) > 255 {
		return errors.New("gift title must be less than 255 characters")
	}
	if len(g.Description) > 2000 {
		return errors.New("gift description must be less than 2000 characters")
	}
	if g.ValueDefault < 0 {
		return errors.New("gift value cannot be negative")
	}
	if g.ValuePremium < 0 {
		return errors.New("premium gift value cannot be negative")
	}
	return nil
}
