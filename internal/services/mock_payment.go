package services

import (
	"context"
	"fmt"

	"gift-registry-platform/internal/models"
)

// MockPaymentProvider is a test double for the payment gateway. It records
// the last preference request so tests can assert on what was sent.
type MockPaymentProvider struct {
	AuthorizeURL   string
	Credentials    *models.MPCredentials
	Preference     *PreferenceResponse
	Balance        *AccountBalance
	Err            error
	LastState      string
	LastCode       string
	LastToken      string
	LastPreference *PreferenceRequest
	CallCount      int
}

func NewMockPaymentProvider() *MockPaymentProvider {
	return &MockPaymentProvider{
		AuthorizeURL: "https://auth.example.com/authorize",
		Credentials: &models.MPCredentials{
			AccessToken: "mock-access-token",
			UserID:      12345,
			PublicKey:   "mock-public-key",
		},
		Preference: &PreferenceResponse{
			ID:        "mock-pref-id",
			InitPoint: "https://checkout.example.com/init",
		},
		Balance: &AccountBalance{
			AvailableBalance:   100.50,
			UnavailableBalance: 25.00,
			CurrencyID:         "BRL",
		},
	}
}

func (m *MockPaymentProvider) AuthorizationURL(state string) string {
	m.LastState = state
	return fmt.Sprintf("%s?state=%s", m.AuthorizeURL, state)
}

func (m *MockPaymentProvider) ExchangeCode(ctx context.Context, code string) (*models.MPCredentials, error) {
	m.LastCode = code
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Credentials, nil
}

func (m *MockPaymentProvider) CreatePreference(ctx context.Context, accessToken string, req *PreferenceRequest) (*PreferenceResponse, error) {
	m.CallCount++
	m.LastToken = accessToken
	m.LastPreference = req
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Preference, nil
}

func (m *MockPaymentProvider) GetBalance(ctx context.Context, accessToken string, userID int64) (*AccountBalance, error) {
	m.LastToken = accessToken
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Balance, nil
}
