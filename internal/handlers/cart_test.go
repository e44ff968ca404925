package handlers

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gift-registry-platform/internal/models"
)

func init() {
	gob.Register(&models.Cart{})
}

func newCartHandler(t *testing.T) (*CartHandler, *testFixture) {
	t.Helper()
	fixture := newTestFixture()
	store := sessions.NewCookieStore([]byte("test-secret"))
	return NewCartHandler(fixture.registry, store), fixture
}

func addToCart(t *testing.T, handler *CartHandler, cookies []*http.Cookie, giftID int) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(map[string]interface{}{
		"event_id": 1,
		"gift_id":  giftID,
	})
	req := httptest.NewRequest("POST", "/api/cart/add", bytes.NewReader(body))
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	handler.AddItem(rec, req)
	return rec
}

func TestCart_AddSameGiftTwice(t *testing.T) {
	handler, _ := newCartHandler(t)

	first := addToCart(t, handler, nil, 10)
	require.Equal(t, http.StatusOK, first.Code)

	second := addToCart(t, handler, first.Result().Cookies(), 10)
	require.Equal(t, http.StatusOK, second.Code)

	var firstResp, secondResp struct {
		Item  models.CartLineItem `json:"item"`
		Total float64             `json:"total"`
		Count int                 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &firstResp))
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &secondResp))

	// Same gift twice yields two distinct removable lines.
	assert.NotEqual(t, firstResp.Item.CartItemID, secondResp.Item.CartItemID)
	assert.Equal(t, 2, secondResp.Count)
	assert.Equal(t, 300.0, secondResp.Total)
}

func TestCart_RemoveSingleLine(t *testing.T) {
	handler, _ := newCartHandler(t)

	first := addToCart(t, handler, nil, 10)
	second := addToCart(t, handler, first.Result().Cookies(), 10)

	var secondResp struct {
		Item models.CartLineItem `json:"item"`
	}
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &secondResp))

	body, _ := json.Marshal(map[string]string{"cart_item_id": secondResp.Item.CartItemID})
	req := httptest.NewRequest("POST", "/api/cart/remove", bytes.NewReader(body))
	for _, cookie := range second.Result().Cookies() {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	handler.RemoveItem(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Total float64 `json:"total"`
		Count int     `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, 150.0, resp.Total)
}

func TestCart_RemoveUnknownLine(t *testing.T) {
	handler, _ := newCartHandler(t)

	first := addToCart(t, handler, nil, 10)

	body, _ := json.Marshal(map[string]string{"cart_item_id": "does-not-exist"})
	req := httptest.NewRequest("POST", "/api/cart/remove", bytes.NewReader(body))
	for _, cookie := range first.Result().Cookies() {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	handler.RemoveItem(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCart_AddUnknownGift(t *testing.T) {
	handler, _ := newCartHandler(t)

	rec := addToCart(t, handler, nil, 9999)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCart_GetEmpty(t *testing.T) {
	handler, _ := newCartHandler(t)

	req := httptest.NewRequest("GET", "/api/cart", nil)
	rec := httptest.NewRecorder()
	handler.GetCart(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Count)
}
