package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// LayoutTheme identifies one of the available page themes
type LayoutTheme string

const (
	ThemeClassic LayoutTheme = "padrao"
	ThemeModern  LayoutTheme = "moderno"
)

// MPCredentials is the OAuth token bundle linking an event owner to their
// Mercado Pago account. It is stored as an opaque JSON blob on the event
// row and never exposed to guests.
type MPCredentials struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	Scope        string `json:"scope,omitempty"`
	UserID       int64  `json:"user_id"`
	RefreshToken string `json:"refresh_token,omitempty"`
	PublicKey    string `json:"public_key,omitempty"`
	LiveMode     bool   `json:"live_mode,omitempty"`
}

// Event represents one owner's configured registry page. Each owner account
// has at most one event (1:1 on UserID).
type Event struct {
	ID                  int            `json:"id" db:"id"`
	UserID              string         `json:"user_id" db:"user_id"`
	Slug                string         `json:"slug" db:"slug"`
	SlugPremium         string         `json:"slug_premium" db:"slug_premium"`
	LayoutTheme         LayoutTheme    `json:"layout_theme" db:"layout_theme"`
	MainTitle           string         `json:"main_title" db:"main_title"`
	EventDate           string         `json:"event_date" db:"event_date"`
	IntroText           string         `json:"intro_text" db:"intro_text"`
	EventDescription    string         `json:"event_description" db:"event_description"`
	CoupleSignature     string         `json:"couple_signature" db:"couple_signature"`
	PrimaryColor        string         `json:"primary_color" db:"primary_color"`
	TitleColor          string         `json:"title_color" db:"title_color"`
	HeroTitleColor      string         `json:"hero_title_color" db:"hero_title_color"`
	HeroImageURL        string         `json:"hero_image_url" db:"hero_image_url"`
	GalleryPhotos       []string       `json:"gallery_photos" db:"gallery_photos"`
	StoryImages1        []string       `json:"story_images_1" db:"story_images_1"`
	StoryImages2        []string       `json:"story_images_2" db:"story_images_2"`
	RSVPEnabled         bool           `json:"rsvp_enabled" db:"rsvp_enabled"`
	StorySectionEnabled bool           `json:"story_section_enabled" db:"story_section_enabled"`
	GallerySection      bool           `json:"gallery_section_enabled" db:"gallery_section_enabled"`
	MPCredentials       *MPCredentials `json:"-" db:"mp_credentials"`
	CustomFeePercentage *float64       `json:"-" db:"custom_fee_percentage"`
	CreatedAt           time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at" db:"updated_at"`

	// Related data
	Gifts []*Gift `json:"gifts,omitempty"`
}

// EventSaveRequest carries the owner editor state for a full page save
type EventSaveRequest struct {
	Slug                string      `json:"slug"`
	SlugPremium         string      `json:"slug_premium"`
	LayoutTheme         LayoutTheme `json:"layout_theme"`
	MainTitle           string      `json:"main_title"`
	EventDate           string      `json:"event_date"`
	IntroText           string      `json:"intro_text"`
	EventDescription    string      `json:"event_description"`
	CoupleSignature     string      `json:"couple_signature"`
	PrimaryColor        string      `json:"primary_color"`
	TitleColor          string      `json:"title_color"`
	HeroTitleColor      string      `json:"hero_title_color"`
	HeroImageURL        string      `json:"hero_image_url"`
	GalleryPhotos       []string    `json:"gallery_photos"`
	StoryImages1        []string    `json:"story_images_1"`
	StoryImages2        []string    `json:"story_images_2"`
	RSVPEnabled         bool        `json:"rsvp_enabled"`
	StorySectionEnabled bool        `json:"story_section_enabled"`
	GallerySection      bool        `json:"gallery_section_enabled"`
	Gifts               []GiftInput `json:"gifts"`
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ReservedSlugs are path segments the catch-all slug route must never claim
var ReservedSlugs = []string{
	"login",
	"dashboard",
	"mp-callback",
	"casamento",
	"evento",
	"api",
	"static",
	"uploads",
}

// IsReservedSlug reports whether s collides with a fixed route
func IsReservedSlug(s string) bool {
	for _, reserved := range ReservedSlugs {
		if s == reserved {
			return true
		}
	}
	return false
}

// HasPaymentCredentials returns true if the owner has linked a payment
// account capable of receiving checkout settlements.
func (e *Event) HasPaymentCredentials() bool {
	return e.MPCredentials != nil && e.MPCredentials.AccessToken != ""
}

// EffectiveFeePercentage returns the platform fee fraction applied to this
// event's checkouts: the per-event override when set, else the platform
// default.
func (e *Event) EffectiveFeePercentage(platformDefault float64) float64 {
	if e.CustomFeePercentage != nil {
		return *e.CustomFeePercentage
	}
	return platformDefault
}

// PublicPath returns the guest-facing path for this event: the slug route
// when a slug is configured, otherwise the legacy numeric route.
func (e *Event) PublicPath() string {
	if e.Slug != "" {
		return "/" + e.Slug
	}
	return fmt.Sprintf("/casamento/%d", e.ID)
}

// Validate validates the editor save request
func (req *EventSaveRequest) Validate() error {
	if err := validateSlugField(req.Slug, "slug"); err != nil {
		return err
	}
	if err := validateSlugField(req.SlugPremium, "premium slug"); err != nil {
		return err
	}
	if req.Slug != "" && req.Slug == req.SlugPremium {
		return errors.New("premium slug must differ from the main slug")
	}
	if len(req.MainTitle) > 255 {
		return errors.New("title must be less than 255 characters")
	}
	if req.LayoutTheme != "" && req.LayoutTheme != ThemeClassic && req.LayoutTheme != ThemeModern {
		return errors.New("unknown layout theme")
	}
	for i := range req.Gifts {
		if err := req.Gifts[i].Validate(); err != nil {
			return fmt.Errorf("gift %d: %w", i+1, err)
		}
	}
	return nil
}

func validateSlugField(slug, field string) error {
	if slug == "" {
		return nil
	}
	if len(slug) > 100 {
		return fmt.Errorf("%s must be less than 100 characters", field)
	}
	if strings.Contains(slug, ".") {
		return fmt.Errorf("%s cannot contain dots", field)
	}
	if IsReservedSlug(slug) {
		return fmt.Errorf("%s %q is reserved", field, slug)
	}
	if !slugPattern.MatchString(slug) {
		return fmt.Errorf("%s may only contain lowercase letters, digits and hyphens", field)
	}
	return nil
}
