package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gift-registry-platform/internal/middleware"
	"gift-registry-platform/internal/models"
)

func TestCreatePaymentPreference(t *testing.T) {
	fixture := newTestFixture()
	handler := NewPaymentHandler(fixture.connect, fixture.checkout)

	body, _ := json.Marshal(map[string]interface{}{
		"event_id": 1,
		"items": []map[string]interface{}{
			{"cart_item_id": "a", "gift_id": 10},
			{"cart_item_id": "b", "gift_id": 11},
		},
	})
	req := httptest.NewRequest("POST", "/api/create-payment-preference", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.CreatePaymentPreference(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "https://checkout.example.com/init", resp["init_point"])
	assert.Equal(t, 650.0, resp["total"])
}

func TestCreatePaymentPreference_LegacyFieldNames(t *testing.T) {
	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"weddingPageId", map[string]interface{}{
			"weddingPageId": 1,
			"items":         []map[string]interface{}{{"gift_id": 10}},
		}},
		{"eventId", map[string]interface{}{
			"eventId": 1,
			"items":   []map[string]interface{}{{"gift_id": 10}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture := newTestFixture()
			handler := NewPaymentHandler(fixture.connect, fixture.checkout)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest("POST", "/api/create-payment-preference", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			handler.CreatePaymentPreference(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)

			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "https://checkout.example.com/init", resp["init_point"])
		})
	}
}

func TestCreatePaymentPreference_UnconfiguredOwner(t *testing.T) {
	fixture := newTestFixture()
	fixture.events.events[1].MPCredentials = nil
	handler := NewPaymentHandler(fixture.connect, fixture.checkout)

	body, _ := json.Marshal(map[string]interface{}{
		"event_id": 1,
		"items":    []map[string]interface{}{{"gift_id": 10}},
	})
	req := httptest.NewRequest("POST", "/api/create-payment-preference", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.CreatePaymentPreference(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.ErrOwnerNotConfigured.Error(), resp["error"])
}

func TestCreatePaymentPreference_GenericProviderError(t *testing.T) {
	fixture := newTestFixture()
	fixture.payments.Err = errors.New("provider down")
	handler := NewPaymentHandler(fixture.connect, fixture.checkout)

	body, _ := json.Marshal(map[string]interface{}{
		"event_id": 1,
		"items":    []map[string]interface{}{{"gift_id": 10}},
	})
	req := httptest.NewRequest("POST", "/api/create-payment-preference", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.CreatePaymentPreference(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, checkoutErrorMessage, resp["error"])
}

func TestCreateConnectLink(t *testing.T) {
	fixture := newTestFixture()
	handler := NewPaymentHandler(fixture.connect, fixture.checkout)

	req := httptest.NewRequest("POST", "/api/create-mp-connect-link", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), "owner-1"))
	rec := httptest.NewRecorder()

	handler.CreateConnectLink(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["authUrl"], "state=owner-1")
}

func TestCallback_Success(t *testing.T) {
	fixture := newTestFixture()
	handler := NewPaymentHandler(fixture.connect, fixture.checkout)

	req := httptest.NewRequest("GET", "/mp-callback?code=auth-code&state=owner-1", nil)
	rec := httptest.NewRecorder()

	handler.Callback(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard?connect=success", rec.Header().Get("Location"))
	assert.NotNil(t, fixture.events.events[1].MPCredentials)
}

func TestCallback_MissingCode(t *testing.T) {
	fixture := newTestFixture()
	handler := NewPaymentHandler(fixture.connect, fixture.checkout)

	req := httptest.NewRequest("GET", "/mp-callback?state=owner-1", nil)
	rec := httptest.NewRecorder()

	handler.Callback(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard?error=auth_failed", rec.Header().Get("Location"))
}

func TestCallback_UnknownOwner(t *testing.T) {
	fixture := newTestFixture()
	handler := NewPaymentHandler(fixture.connect, fixture.checkout)

	req := httptest.NewRequest("GET", "/mp-callback?code=auth-code&state=nobody", nil)
	rec := httptest.NewRecorder()

	handler.Callback(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard?error=callback_failed", rec.Header().Get("Location"))
}

func TestGetBalance(t *testing.T) {
	fixture := newTestFixture()
	handler := NewPaymentHandler(fixture.connect, fixture.checkout)

	req := httptest.NewRequest("GET", "/api/get-mp-balance", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), "owner-1"))
	rec := httptest.NewRecorder()

	handler.GetBalance(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 100.50, resp["available_balance"])
	assert.Equal(t, "BRL", resp["currency_id"])
}

func TestDisconnect(t *testing.T) {
	fixture := newTestFixture()
	handler := NewPaymentHandler(fixture.connect, fixture.checkout)

	req := httptest.NewRequest("POST", "/api/mp-disconnect", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), "owner-1"))
	rec := httptest.NewRecorder()

	handler.Disconnect(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, fixture.events.events[1].MPCredentials)
}
