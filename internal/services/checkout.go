package services

import (
	"context"
	"fmt"
	"log"

	"gift-registry-platform/internal/models"
)

// CheckoutCurrency is the settlement currency for all checkouts
const CheckoutCurrency = "BRL"

// CheckoutItemPrefix is prepended to every gift title on the hosted
// checkout page.
const CheckoutItemPrefix = "Presente: "

// CheckoutService builds payment preferences from guest carts. The client
// cart is treated as a list of hints: every price is re-resolved from the
// stored gift records before anything is sent to the payment provider.
type CheckoutService struct {
	events      EventRepository
	gifts       GiftRepository
	settings    SettingsRepository
	payments    PaymentProvider
	idempotency IdempotencyStore
	siteURL     string
}

func NewCheckoutService(
	events EventRepository,
	gifts GiftRepository,
	settings SettingsRepository,
	payments PaymentProvider,
	idempotency IdempotencyStore,
	siteURL string,
) *CheckoutService {
	return &CheckoutService{
		events:      events,
		gifts:       gifts,
		settings:    settings,
		payments:    payments,
		idempotency: idempotency,
		siteURL:     siteURL,
	}
}

// CheckoutItem is one cart line as submitted by the guest. Only the gift id
// is trusted; the server looks the price up itself.
type CheckoutItem struct {
	CartItemID string `json:"cart_item_id"`
	GiftID     int    `json:"gift_id"`
}

// CheckoutRequest is a guest checkout submission
type CheckoutRequest struct {
	EventID          int              `json:"event_id"`
	Tier             models.PriceTier `json:"tier"`
	Items            []CheckoutItem   `json:"items"`
	IdempotencyToken string           `json:"idempotency_token"`
}

// CheckoutSummary is the server-side pricing outcome of a checkout
type CheckoutSummary struct {
	Subtotal       float64
	MarketplaceFee float64
	TransactionFee float64
	Total          float64
}

// CheckoutResponse carries the guest to hosted checkout
type CheckoutResponse struct {
	PreferenceID string  `json:"preference_id"`
	InitPoint    string  `json:"init_point"`
	Total        float64 `json:"total"`
}

// CreateCheckout re-resolves the submitted cart against the stored gift
// records, builds the payment preference on the owner's linked account and
// returns the hosted checkout URL.
func (s *CheckoutService) CreateCheckout(ctx context.Context, req *CheckoutRequest) (*CheckoutResponse, error) {
	if len(req.Items) == 0 {
		return nil, models.ErrEmptyCart
	}

	event, err := s.events.GetByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if !event.HasPaymentCredentials() {
		return nil, models.ErrOwnerNotConfigured
	}

	// Replayed token: hand back the previously created checkout instead of
	// registering a second preference.
	if req.IdempotencyToken != "" {
		fresh, err := s.idempotency.Claim(ctx, req.IdempotencyToken)
		if err != nil {
			log.Printf("idempotency claim failed, proceeding without dedupe: %v", err)
		} else if !fresh {
			initPoint, err := s.idempotency.Lookup(ctx, req.IdempotencyToken)
			if err == nil && initPoint != "" {
				return &CheckoutResponse{InitPoint: initPoint}, nil
			}
			return nil, fmt.Errorf("checkout already in progress for this token")
		}
	}

	platformSettings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	items, summary, err := s.priceCart(ctx, event, req, platformSettings)
	if err != nil {
		return nil, err
	}

	if platformSettings.TransactionFeeEnabled && platformSettings.TransactionFeePercentage > 0 {
		// Pass-through processing fee charged to the guest. It is excluded
		// from the marketplace fee base.
		summary.TransactionFee = models.Round2(summary.Subtotal * platformSettings.TransactionFeePercentage)
		if summary.TransactionFee > 0 {
			items = append(items, PreferenceItem{
				Title:      "Taxa de processamento",
				Quantity:   1,
				UnitPrice:  summary.TransactionFee,
				CurrencyID: CheckoutCurrency,
			})
		}
	}
	summary.Total = models.Round2(summary.Subtotal + summary.TransactionFee)

	backURL := s.siteURL + event.PublicPath() + "?status="
	preference := &PreferenceRequest{
		Items:          items,
		MarketplaceFee: summary.MarketplaceFee,
		BackURLs: PreferenceBackURLs{
			Success: backURL + "success",
			Failure: backURL + "failure",
			Pending: backURL + "pending",
		},
		AutoReturn:        "approved",
		ExternalReference: fmt.Sprintf("event-%d", event.ID),
	}

	created, err := s.payments.CreatePreference(ctx, event.MPCredentials.AccessToken, preference)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment preference: %w", err)
	}

	initPoint := created.InitPoint
	if initPoint == "" {
		initPoint = created.SandboxInitPoint
	}

	if req.IdempotencyToken != "" {
		if err := s.idempotency.Store(ctx, req.IdempotencyToken, initPoint); err != nil {
			log.Printf("failed to store idempotency record: %v", err)
		}
	}

	return &CheckoutResponse{
		PreferenceID: created.ID,
		InitPoint:    initPoint,
		Total:        summary.Total,
	}, nil
}

// priceCart maps the submitted lines to preference items using stored gift
// prices at the request's tier. Lines referencing unknown gifts, gifts of
// another event, or gifts whose resolved value is not positive are dropped.
func (s *CheckoutService) priceCart(ctx context.Context, event *models.Event, req *CheckoutRequest, platformSettings *models.PlatformSettings) ([]PreferenceItem, *CheckoutSummary, error) {
	gifts, err := s.gifts.GetByEventID(ctx, event.ID)
	if err != nil {
		return nil, nil, err
	}
	resolved := models.ApplyTier(gifts, req.Tier)

	byID := make(map[int]models.ResolvedGift, len(resolved))
	for _, gift := range resolved {
		byID[gift.ID] = gift
	}

	var items []PreferenceItem
	var subtotal float64
	for _, line := range req.Items {
		gift, ok := byID[line.GiftID]
		if !ok {
			log.Printf("checkout line dropped: gift %d not purchasable for event %d", line.GiftID, event.ID)
			continue
		}
		items = append(items, PreferenceItem{
			Title:      CheckoutItemPrefix + gift.Title,
			Quantity:   1,
			UnitPrice:  gift.Value,
			CurrencyID: CheckoutCurrency,
		})
		subtotal += gift.Value
	}

	if len(items) == 0 {
		return nil, nil, models.ErrEmptyCart
	}

	subtotal = models.Round2(subtotal)
	feePct := event.EffectiveFeePercentage(platformSettings.DefaultFeePercentage)

	summary := &CheckoutSummary{
		Subtotal:       subtotal,
		MarketplaceFee: models.Round2(subtotal * feePct),
	}
	return items, summary, nil
}
