package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"gift-registry-platform/internal/config"
	"gift-registry-platform/internal/models"
)

// MercadoPagoService talks to the Mercado Pago OAuth and Checkout Pro APIs.
// All checkout preferences are created on the event owner's own account
// using the access token obtained during account linking.
type MercadoPagoService struct {
	config  config.MercadoPagoConfig
	client  *http.Client
	baseURL string
	authURL string
}

// NewMercadoPagoService creates a new Mercado Pago payment service
func NewMercadoPagoService(cfg config.MercadoPagoConfig) *MercadoPagoService {
	baseURL := cfg.APIBaseURL
	if baseURL == "" {
		baseURL = "https://api.mercadopago.com"
	}
	authURL := cfg.AuthBaseURL
	if authURL == "" {
		authURL = "https://auth.mercadopago.com.br"
	}

	return &MercadoPagoService{
		config:  cfg,
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
		authURL: authURL,
	}
}

// PreferenceItem is a single purchasable line in a checkout preference
type PreferenceItem struct {
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	CurrencyID string  `json:"currency_id"`
}

// PreferenceBackURLs are the redirect targets after hosted checkout
type PreferenceBackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

// PreferenceRequest is the checkout preference sent to Mercado Pago
type PreferenceRequest struct {
	Items               []PreferenceItem   `json:"items"`
	MarketplaceFee      float64            `json:"marketplace_fee,omitempty"`
	BackURLs            PreferenceBackURLs `json:"back_urls"`
	AutoReturn          string             `json:"auto_return,omitempty"`
	ExternalReference   string             `json:"external_reference,omitempty"`
	StatementDescriptor string             `json:"statement_descriptor,omitempty"`
}

// PreferenceResponse is the created preference returned by Mercado Pago
type PreferenceResponse struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

// AccountBalance is the linked account's settlement balance
type AccountBalance struct {
	AvailableBalance   float64 `json:"available_balance"`
	UnavailableBalance float64 `json:"unavailable_balance"`
	CurrencyID         string  `json:"currency_id"`
}

// MercadoPagoError is an error response from the Mercado Pago API
type MercadoPagoError struct {
	StatusCode int    `json:"status"`
	Message    string `json:"message"`
	ErrorCode  string `json:"error,omitempty"`
}

func (e *MercadoPagoError) Error() string {
	return fmt.Sprintf("Mercado Pago error (%d): %s", e.StatusCode, e.Message)
}

// AuthorizationURL builds the OAuth consent URL for linking an owner's
// Mercado Pago account. state carries the owner's user id through the
// redirect round-trip.
func (s *MercadoPagoService) AuthorizationURL(state string) string {
	params := url.Values{}
	params.Set("client_id", s.config.ClientID)
	params.Set("response_type", "code")
	params.Set("platform_id", "mp")
	params.Set("state", state)
	params.Set("redirect_uri", s.config.RedirectURI)

	return s.authURL + "/authorization?" + params.Encode()
}

// ExchangeCode trades an OAuth authorization code for the owner's token
// bundle.
func (s *MercadoPagoService) ExchangeCode(ctx context.Context, code string) (*models.MPCredentials, error) {
	payload := map[string]string{
		"client_id":     s.config.ClientID,
		"client_secret": s.config.ClientSecret,
		"grant_type":    "authorization_code",
		"code":          code,
		"redirect_uri":  s.config.RedirectURI,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal token request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/oauth/token", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send token request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, s.handleAPIError(resp.StatusCode, bodyBytes)
	}

	var creds models.MPCredentials
	if err := json.Unmarshal(bodyBytes, &creds); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	if creds.AccessToken == "" {
		return nil, fmt.Errorf("token response missing access token")
	}

	return &creds, nil
}

// CreatePreference registers a checkout preference on the owner's account.
// The request is authorized with the owner's access token so the payment
// settles to them, with marketplace_fee retained by the platform.
func (s *MercadoPagoService) CreatePreference(ctx context.Context, accessToken string, req *PreferenceRequest) (*PreferenceResponse, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal preference request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/checkout/preferences", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create preference request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+accessToken)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send preference request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read preference response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, s.handleAPIError(resp.StatusCode, bodyBytes)
	}

	var preference PreferenceResponse
	if err := json.Unmarshal(bodyBytes, &preference); err != nil {
		return nil, fmt.Errorf("failed to decode preference response: %w", err)
	}
	if preference.InitPoint == "" && preference.SandboxInitPoint == "" {
		return nil, fmt.Errorf("preference response missing init point")
	}

	return &preference, nil
}

type balanceResponse struct {
	AvailableBalance   float64 `json:"available_balance"`
	UnavailableBalance float64 `json:"unavailable_balance"`
	CurrencyID         string  `json:"currency_id"`
}

// GetBalance fetches the linked account's available and pending balance
func (s *MercadoPagoService) GetBalance(ctx context.Context, accessToken string, userID int64) (*AccountBalance, error) {
	balanceURL := fmt.Sprintf("%s/users/%d/mercadopago_account/balance", s.baseURL, userID)
	httpReq, err := http.NewRequestWithContext(ctx, "GET", balanceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create balance request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+accessToken)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send balance request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read balance response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, s.handleAPIError(resp.StatusCode, bodyBytes)
	}

	var balance balanceResponse
	if err := json.Unmarshal(bodyBytes, &balance); err != nil {
		return nil, fmt.Errorf("failed to decode balance response: %w", err)
	}

	currency := balance.CurrencyID
	if currency == "" {
		currency = "BRL"
	}

	return &AccountBalance{
		AvailableBalance:   balance.AvailableBalance,
		UnavailableBalance: balance.UnavailableBalance,
		CurrencyID:         currency,
	}, nil
}

func (s *MercadoPagoService) handleAPIError(statusCode int, body []byte) error {
	var apiErr MercadoPagoError
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Message == "" {
		return &MercadoPagoError{
			StatusCode: statusCode,
			Message:    fmt.Sprintf("unexpected response: %s", string(body)),
		}
	}
	apiErr.StatusCode = statusCode
	return &apiErr
}
