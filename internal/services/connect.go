package services

import (
	"context"
	"fmt"
	"log"

	"gift-registry-platform/internal/models"
)

// ConnectService manages the OAuth link between an event owner and their
// Mercado Pago merchant account.
type ConnectService struct {
	events   EventRepository
	payments PaymentProvider
}

func NewConnectService(events EventRepository, payments PaymentProvider) *ConnectService {
	return &ConnectService{events: events, payments: payments}
}

// LinkURL returns the OAuth consent URL for the given owner. The owner's
// user id travels in the state parameter and comes back on the callback.
func (s *ConnectService) LinkURL(ctx context.Context, userID string) (string, error) {
	if _, err := s.events.GetByUserID(ctx, userID); err != nil {
		return "", err
	}
	return s.payments.AuthorizationURL(userID), nil
}

// CompleteCallback finishes the OAuth round-trip: the state parameter names
// the owner, the code is exchanged for credentials, and the bundle is
// stored on the owner's event.
func (s *ConnectService) CompleteCallback(ctx context.Context, state, code string) error {
	if state == "" || code == "" {
		return models.ErrInvalidInput
	}

	event, err := s.events.GetByUserID(ctx, state)
	if err != nil {
		return err
	}

	creds, err := s.payments.ExchangeCode(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	if err := s.events.UpdateCredentials(ctx, event.ID, creds); err != nil {
		return err
	}

	log.Printf("linked payment account %d to event %d", creds.UserID, event.ID)
	return nil
}

// Disconnect removes the stored credential bundle. The owner's page keeps
// working but checkout is refused until a new account is linked.
func (s *ConnectService) Disconnect(ctx context.Context, userID string) error {
	event, err := s.events.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if event.MPCredentials == nil {
		return nil
	}
	return s.events.ClearCredentials(ctx, event.ID)
}

// Balance fetches the owner's settlement balance from the linked account
func (s *ConnectService) Balance(ctx context.Context, userID string) (*AccountBalance, error) {
	event, err := s.events.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !event.HasPaymentCredentials() {
		return nil, models.ErrOwnerNotConfigured
	}
	return s.payments.GetBalance(ctx, event.MPCredentials.AccessToken, event.MPCredentials.UserID)
}
