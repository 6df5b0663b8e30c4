package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/HenriqueSydney/03-marketspace/internal/infra/api"
	"github.com/HenriqueSydney/03-marketspace/internal/infra/security"
	"github.com/HenriqueSydney/03-marketspace/internal/usecase/advert"
	"github.com/HenriqueSydney/03-marketspace/internal/usecase/auth"
	"github.com/HenriqueSydney/03-marketspace/internal/usecase/catalog"
	"github.com/HenriqueSydney/03-marketspace/internal/usecase/filter"
)

func newTestApp(t *testing.T, handler http.Handler) (*App, *bytes.Buffer) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tokens := security.NewTokenFile(filepath.Join(t.TempDir(), "token"))
	client := api.NewClient(server.URL, 5*time.Second, tokens)
	store := catalog.NewStore(client)

	var out bytes.Buffer
	app := NewApp(Dependencies{
		Out:    &out,
		Client: client,
		Store:  store,
		Flow:   advert.NewFlow(client),
		Auth:   auth.NewService(client, tokens),
		Modal:  filter.NewModal(store),
	})
	return app, &out
}

const tradeAcceptingProduct = `{
	"id": "42",
	"name": "Mesa de jantar",
	"description": "Seis lugares",
	"is_new": false,
	"price": 123456,
	"accept_trade": true,
	"payment_methods": [{"key":"pix","name":"Pix"}],
	"product_images": [{"id":"img-1","path":"one.jpg"}]
}`

func editFixtureRouter(t *testing.T, gotBody *map[string]any) chi.Router {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/products/{id}", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(tradeAcceptingProduct))
	})
	r.Put("/products/{id}", func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, "42", chi.URLParam(req, "id"))
		require.NoError(t, json.NewDecoder(req.Body).Decode(gotBody))
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

func TestPublishEditKeepsTradeFlagWhenNotPassed(t *testing.T) {
	var gotBody map[string]any
	app, _ := newTestApp(t, editFixtureRouter(t, &gotBody))

	err := app.Run(context.Background(), []string{"publish", "-id", "42"})
	require.NoError(t, err)

	// the loaded value survives an edit that never mentions the flag
	require.Equal(t, true, gotBody["accept_trade"])
}

func TestPublishEditFlipsTradeFlagWhenPassed(t *testing.T) {
	var gotBody map[string]any
	app, _ := newTestApp(t, editFixtureRouter(t, &gotBody))

	err := app.Run(context.Background(), []string{"publish", "-id", "42", "-trade=false"})
	require.NoError(t, err)

	require.Equal(t, false, gotBody["accept_trade"])
}

func TestMyAdsRejectsUnknownPreset(t *testing.T) {
	var hit bool
	r := chi.NewRouter()
	r.Get("/users/products", func(w http.ResponseWriter, req *http.Request) {
		hit = true
		w.Write([]byte(`[]`))
	})
	app, _ := newTestApp(t, r)

	err := app.Run(context.Background(), []string{"my-ads", "-filter", "bogus"})
	require.Error(t, err)
	require.False(t, hit)
}

func TestMyAdsAppliesPreset(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/users/products", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":"1","name":"Bicicleta","price":100,"is_new":true,"is_active":true},
			{"id":"2","name":"Mesa","price":200,"is_new":false,"is_active":false}
		]`))
	})
	app, out := newTestApp(t, r)

	err := app.Run(context.Background(), []string{"my-ads", "-filter", "deactivate"})
	require.NoError(t, err)

	require.Contains(t, out.String(), "1 anúncio")
	require.Contains(t, out.String(), "Mesa")
	require.NotContains(t, out.String(), "Bicicleta")
}
