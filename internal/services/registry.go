package services

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	"gift-registry-platform/internal/models"
)

// RegistryService resolves public event pages and handles the owner editor
// save flow.
type RegistryService struct {
	events   EventRepository
	gifts    GiftRepository
	rsvps    RSVPRepository
	settings SettingsRepository
}

func NewRegistryService(events EventRepository, gifts GiftRepository, rsvps RSVPRepository, settings SettingsRepository) *RegistryService {
	return &RegistryService{events: events, gifts: gifts, rsvps: rsvps, settings: settings}
}

// EventPage is a public page resolved for one request: the event, the
// price tier that applies, and the gift list projected onto that tier.
type EventPage struct {
	Event         *models.Event         `json:"event"`
	Tier          models.PriceTier      `json:"tier"`
	PremiumAccess bool                  `json:"premium_access"`
	Gifts         []models.ResolvedGift `json:"gifts"`
	CanCheckout   bool                  `json:"can_checkout"`
	// TransactionFeePercentage is non-zero when the pass-through processing
	// fee is enabled, so the page can preview it before checkout.
	TransactionFeePercentage float64 `json:"transaction_fee_percentage,omitempty"`
}

// ResolvePage loads the event page a public request addresses. A slug is
// matched against the public address first and the premium address second;
// reaching the page through the premium address grants premium pricing.
// The query string can also force the premium list and choose a sort order.
func (s *RegistryService) ResolvePage(ctx context.Context, ident models.PageIdentifier, query url.Values) (*EventPage, error) {
	var event *models.Event
	var premiumAccess bool
	var err error

	switch ident.Kind {
	case models.IdentifierID:
		event, err = s.events.GetByID(ctx, ident.ID)
	case models.IdentifierSlug:
		event, err = s.events.GetBySlug(ctx, ident.Slug)
		if err == models.ErrEventNotFound {
			event, err = s.events.GetBySlugPremium(ctx, ident.Slug)
			if err == nil {
				premiumAccess = true
			}
		}
	default:
		return nil, models.ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}

	gifts, err := s.gifts.GetByEventID(ctx, event.ID)
	if err != nil {
		return nil, err
	}

	tier := models.ResolveTier(premiumAccess, query)
	resolved := models.ApplyTier(gifts, tier)
	if mode := models.GiftSortMode(query.Get("ordenar")); mode != "" {
		resolved = models.SortGifts(resolved, mode)
	}

	platformSettings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	var txnFee float64
	if platformSettings.TransactionFeeEnabled {
		txnFee = platformSettings.TransactionFeePercentage
	}

	return &EventPage{
		Event:                    event,
		Tier:                     tier,
		PremiumAccess:            premiumAccess,
		Gifts:                    resolved,
		CanCheckout:              event.HasPaymentCredentials(),
		TransactionFeePercentage: txnFee,
	}, nil
}

// ResolveGift projects one gift onto a price tier for cart additions. It
// fails when the gift does not belong to the event or is not purchasable
// at the resolved price.
func (s *RegistryService) ResolveGift(ctx context.Context, eventID, giftID int, tier models.PriceTier) (models.ResolvedGift, error) {
	gift, err := s.gifts.GetByID(ctx, giftID)
	if err != nil {
		return models.ResolvedGift{}, err
	}
	if gift.EventID != eventID {
		return models.ResolvedGift{}, models.ErrGiftNotFound
	}

	resolved := models.ApplyTier([]*models.Gift{gift}, tier)
	if len(resolved) == 0 {
		return models.ResolvedGift{}, models.ErrGiftNotFound
	}
	return resolved[0], nil
}

// OwnerPage loads the editor state for an owner, gifts included
func (s *RegistryService) OwnerPage(ctx context.Context, userID string) (*models.Event, error) {
	event, err := s.events.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	gifts, err := s.gifts.GetByEventID(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	event.Gifts = gifts
	return event, nil
}

// Save persists a full editor save: page configuration and the complete
// gift list, atomically. Gift ids stay stable across saves so existing
// premium links and carts keep referring to the same gifts.
func (s *RegistryService) Save(ctx context.Context, userID string, req *models.EventSaveRequest) (*models.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidInput, err.Error())
	}

	existing, err := s.events.GetByUserID(ctx, userID)
	excludeID := 0
	if err == nil {
		excludeID = existing.ID
	} else if err != models.ErrEventNotFound {
		return nil, err
	}

	for _, slug := range []string{req.Slug, req.SlugPremium} {
		taken, err := s.events.SlugTaken(ctx, slug, excludeID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, models.ErrDuplicateSlug
		}
	}

	event := &models.Event{
		ID:                  excludeID,
		UserID:              userID,
		Slug:                req.Slug,
		SlugPremium:         req.SlugPremium,
		LayoutTheme:         req.LayoutTheme,
		MainTitle:           req.MainTitle,
		EventDate:           req.EventDate,
		IntroText:           req.IntroText,
		EventDescription:    req.EventDescription,
		CoupleSignature:     req.CoupleSignature,
		PrimaryColor:        req.PrimaryColor,
		TitleColor:          req.TitleColor,
		HeroTitleColor:      req.HeroTitleColor,
		HeroImageURL:        req.HeroImageURL,
		GalleryPhotos:       req.GalleryPhotos,
		StoryImages1:        req.StoryImages1,
		StoryImages2:        req.StoryImages2,
		RSVPEnabled:         req.RSVPEnabled,
		StorySectionEnabled: req.StorySectionEnabled,
		GallerySection:      req.GallerySection,
	}
	if event.LayoutTheme == "" {
		event.LayoutTheme = models.ThemeClassic
	}

	err = s.events.InTx(ctx, func(tx *sql.Tx) error {
		if err := s.events.Upsert(ctx, tx, event); err != nil {
			return err
		}
		return s.gifts.ReplaceForEvent(ctx, tx, event.ID, req.Gifts)
	})
	if err != nil {
		return nil, err
	}

	return s.OwnerPage(ctx, userID)
}

// SubmitRSVP records a guest confirmation for an event page
func (s *RegistryService) SubmitRSVP(ctx context.Context, eventID int, req *models.RSVPCreateRequest) (*models.RSVP, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidInput, err.Error())
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.RSVPEnabled {
		return nil, models.ErrRSVPDisabled
	}

	rsvp := &models.RSVP{
		EventID:     event.ID,
		GuestName:   req.GuestName,
		IsAttending: req.IsAttending,
		PlusOnes:    req.PlusOnes,
		Message:     req.Message,
	}
	if err := s.rsvps.Create(ctx, rsvp); err != nil {
		return nil, err
	}
	return rsvp, nil
}

// ListRSVPs returns the owner's guest confirmations, attending first
func (s *RegistryService) ListRSVPs(ctx context.Context, userID string) ([]*models.RSVP, error) {
	event, err := s.events.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.rsvps.ListByEventID(ctx, event.ID)
}
