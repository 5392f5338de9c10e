package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/pkg/adapters/file"
	"parley/pkg/adapters/memory"
	"parley/pkg/catalog"
	"parley/pkg/gamemaster"
	"parley/pkg/session"
	"parley/pkg/storefront"
	"parley/pkg/world"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	gm := gamemaster.New(world.Default())
	ledger := file.NewLedger(filepath.Join(t.TempDir(), "orders.json"))
	shop := storefront.New(catalog.Default(), ledger)
	sessions := session.NewManager(memory.NewStore())
	return NewHandler(gm, shop, sessions)
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestHealthz(t *testing.T) {
	rec := doJSON(t, newTestHandler(t), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	rec := doJSON(t, newTestHandler(t), http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdventureFlow(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/v1/sessions", startSessionRequest{Mode: "adventure", Name: "Rhea"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[sessionResponse](t, rec)
	require.NotEmpty(t, created.SessionID)
	assert.Contains(t, created.Text, "Rhea")
	assert.Contains(t, created.Text, "What do you do?")

	rec = doJSON(t, h, http.MethodGet, "/v1/sessions/"+created.SessionID+"/scene", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	scene := decode[textResponse](t, rec)
	assert.Contains(t, scene.Text, "What do you do?")

	rec = doJSON(t, h, http.MethodPost, "/v1/sessions/"+created.SessionID+"/action", actionRequest{Text: "I open the box"})
	require.Equal(t, http.StatusOK, rec.Code)
	outcome := decode[outcomeResponse](t, rec)
	assert.Equal(t, "advanced", outcome.Kind)

	rec = doJSON(t, h, http.MethodGet, "/v1/sessions/"+created.SessionID+"/journal", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/v1/sessions/"+created.SessionID+"/restart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestStartSession_ReturnedIDIsStorageKey(t *testing.T) {
	// The id handed back to the client must be the id the stored session
	// reports about itself, and a restart must not change it either.
	gm := gamemaster.New(world.Default())
	ledger := file.NewLedger(filepath.Join(t.TempDir(), "orders.json"))
	shop := storefront.New(catalog.Default(), ledger)
	sessions := session.NewManager(memory.NewStore())
	h := NewHandler(gm, shop, sessions)

	for _, mode := range []string{"adventure", "shopping"} {
		rec := doJSON(t, h, http.MethodPost, "/v1/sessions", startSessionRequest{Mode: mode})
		require.Equal(t, http.StatusCreated, rec.Code)
		created := decode[sessionResponse](t, rec)

		sess, err := sessions.Load(context.Background(), created.SessionID)
		require.NoError(t, err)
		assert.Equal(t, created.SessionID, sess.ID)
	}

	rec := doJSON(t, h, http.MethodPost, "/v1/sessions", startSessionRequest{Mode: "adventure"})
	created := decode[sessionResponse](t, rec)

	rec = doJSON(t, h, http.MethodPost, "/v1/sessions/"+created.SessionID+"/restart", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	sess, err := sessions.Load(context.Background(), created.SessionID)
	require.NoError(t, err)
	assert.Equal(t, created.SessionID, sess.ID)
}

func TestActionUnknownSession(t *testing.T) {
	rec := doJSON(t, newTestHandler(t), http.MethodPost, "/v1/sessions/nope/action", actionRequest{Text: "hello"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStartSessionBadMode(t *testing.T) {
	rec := doJSON(t, newTestHandler(t), http.MethodPost, "/v1/sessions", startSessionRequest{Mode: "arcade"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchProducts(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/v1/products?category=phones&max_price=20000", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	result := decode[struct {
		Products []struct {
			ID string `json:"id"`
		} `json:"products"`
		Text string `json:"text"`
	}](t, rec)

	require.Len(t, result.Products, 2)
	for _, p := range result.Products {
		assert.Contains(t, []string{"mob-001", "mob-002"}, p.ID)
		assert.Contains(t, result.Text, p.ID, "text renders the same result set")
	}
	assert.Contains(t, result.Text, "Anything else?")
}

func TestShoppingFlow(t *testing.T) {
	h := newTestHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/v1/sessions", startSessionRequest{Mode: "shopping", Name: "Dev"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[sessionResponse](t, rec)
	assert.Contains(t, created.Text, "Hi Dev")

	base := "/v1/sessions/" + created.SessionID

	rec = doJSON(t, h, http.MethodPost, base+"/cart", cartRequest{Text: "mug-001", Quantity: 2})
	require.Equal(t, http.StatusOK, rec.Code)
	outcome := decode[outcomeResponse](t, rec)
	assert.Equal(t, "advanced", outcome.Kind)

	rec = doJSON(t, h, http.MethodGet, base+"/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cart := decode[struct {
		Items []struct {
			ProductID string `json:"product_id"`
			Quantity  int    `json:"quantity"`
		} `json:"items"`
		Text string `json:"text"`
	}](t, rec)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "mug-001", cart.Items[0].ProductID)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	rec = doJSON(t, h, http.MethodPost, base+"/order", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	placed := decode[outcomeResponse](t, rec)
	assert.Equal(t, "advanced", placed.Kind)
	assert.Contains(t, placed.Text, "598")

	rec = doJSON(t, h, http.MethodGet, "/v1/orders/latest", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	last := decode[textResponse](t, rec)
	assert.Contains(t, last.Text, "Classic Coffee Mug")

	rec = doJSON(t, h, http.MethodGet, base+"/record", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	record := decode[textResponse](t, rec)
	assert.Contains(t, record.Text, "Customer: Dev")

	rec = doJSON(t, h, http.MethodDelete, base+"/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, base+"/", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
