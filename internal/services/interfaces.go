package services

import (
	"context"
	"database/sql"
	"io"

	"gift-registry-platform/internal/models"
)

// PaymentProvider abstracts the hosted-checkout payment gateway. The real
// implementation talks to Mercado Pago; tests substitute a mock.
type PaymentProvider interface {
	// AuthorizationURL builds the OAuth consent URL an owner visits to
	// link their merchant account. state round-trips the owner identity.
	AuthorizationURL(state string) string

	// ExchangeCode trades an OAuth authorization code for the owner's
	// credential bundle.
	ExchangeCode(ctx context.Context, code string) (*models.MPCredentials, error)

	// CreatePreference registers a checkout preference on the owner's
	// account and returns the hosted checkout data.
	CreatePreference(ctx context.Context, accessToken string, req *PreferenceRequest) (*PreferenceResponse, error)

	// GetBalance fetches the owner's available and pending balance.
	GetBalance(ctx context.Context, accessToken string, userID int64) (*AccountBalance, error)
}

// StorageService abstracts image blob storage (R2 in production, local disk
// as a fallback).
type StorageService interface {
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	GetPublicURL(key string) string
}

// IdempotencyStore remembers recently used checkout tokens so a retried
// submission does not create a second payment preference.
type IdempotencyStore interface {
	// Claim records the token and returns true if this is its first use
	// within the retention window.
	Claim(ctx context.Context, token string) (bool, error)

	// Lookup returns the checkout URL stored for an already claimed token,
	// or "" when none was stored.
	Lookup(ctx context.Context, token string) (string, error)

	// Store associates the checkout URL with a claimed token
	Store(ctx context.Context, token string, initPoint string) error
}

// EventRepository is the persistence surface the services need for events
type EventRepository interface {
	GetByID(ctx context.Context, id int) (*models.Event, error)
	GetBySlug(ctx context.Context, slug string) (*models.Event, error)
	GetBySlugPremium(ctx context.Context, slug string) (*models.Event, error)
	GetByUserID(ctx context.Context, userID string) (*models.Event, error)
	Upsert(ctx context.Context, tx *sql.Tx, event *models.Event) error
	SlugTaken(ctx context.Context, slug string, excludeEventID int) (bool, error)
	UpdateCredentials(ctx context.Context, eventID int, creds *models.MPCredentials) error
	ClearCredentials(ctx context.Context, eventID int) error
	InTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

// GiftRepository is the persistence surface for gifts
type GiftRepository interface {
	GetByEventID(ctx context.Context, eventID int) ([]*models.Gift, error)
	GetByID(ctx context.Context, id int) (*models.Gift, error)
	ReplaceForEvent(ctx context.Context, tx *sql.Tx, eventID int, gifts []models.GiftInput) error
}

// RSVPRepository is the persistence surface for guest confirmations
type RSVPRepository interface {
	Create(ctx context.Context, rsvp *models.RSVP) error
	ListByEventID(ctx context.Context, eventID int) ([]*models.RSVP, error)
}

// UserRepository is the persistence surface for owner accounts
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateEmail(ctx context.Context, id, email string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// SettingsRepository is the persistence surface for platform settings
type SettingsRepository interface {
	Get(ctx context.Context) (*models.PlatformSettings, error)
	Update(ctx context.Context, settings *models.PlatformSettings) error
	SetCustomFee(ctx context.Context, eventID int, fee *float64) error
}
