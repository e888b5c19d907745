package cli

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheusbarney/ess-hotel-project/internal/listing"
	"github.com/matheusbarney/ess-hotel-project/internal/platform/logger"
	"github.com/matheusbarney/ess-hotel-project/internal/search"
	"github.com/matheusbarney/ess-hotel-project/internal/tui"
	"github.com/matheusbarney/ess-hotel-project/internal/ui"
)

func init() { ui.DisableColor() }

func newService(t *testing.T) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/queries/reservas", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if req.URL.Query().Get("uf") == "AC" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Nenhuma reserva encontrada dentro desses filtros"}`))
			return
		}
		_, _ = w.Write([]byte(`[{"titulo":"Casa de Praia","descricao":"Pé na areia","endereco":"Rua A, Recife, PE",
			"tipo":"Casa","preco":450,"petfriendly":true,"destacado":true,"imagens":["praia.jpg"]}]`))
	})
	r.Get("/queries/reservas/{slug}", func(w http.ResponseWriter, req *http.Request) {
		if chi.URLParam(req, "slug") == "pousada-sumida" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"detail":"Erro ao buscar reserva"}`))
			return
		}
		if chi.URLParam(req, "slug") == "pousada-instavel" {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"detail":"database offline"}`))
			return
		}
		if chi.URLParam(req, "slug") != "casa-de-praia" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"titulo":"Casa de Praia","endereco":"Rua A, Recife, PE","tipo":"Casa","preco":450,"imagens":[]}`))
	})
	r.Get("/queries/avaliacoes/{slug}", func(w http.ResponseWriter, req *http.Request) {
		if chi.URLParam(req, "slug") == "pousada-sumida" {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"detail":"Erro ao buscar avaliações"}`))
			return
		}
		_, _ = w.Write([]byte(`[{"endereco":"Rua A, Recife, PE","nota":5},{"endereco":"Rua A, Recife, PE","nota":4}]`))
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func newApp(t *testing.T) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	srv := newService(t)
	log := logger.NewNop()
	var out, errOut bytes.Buffer
	return &App{
		Client:  search.New(srv.URL, time.Second, log),
		Log:     log,
		Cards:   listing.CardOptions{ImageBasePath: "/path/to/image/", PlaceholderImage: "/placeholder.png"},
		Timeout: time.Second,
		Out:     &out,
		Err:     &errOut,
	}, &out, &errOut
}

func TestBuildQuery(t *testing.T) {
	assert.Equal(t, "", BuildQuery(nil))
	assert.Equal(t, "tipo=Casa&uf=SP", BuildQuery([]string{"?tipo=Casa&uf=SP"}))
	assert.Equal(t, "uf=SP&petfriendly=true", BuildQuery([]string{"uf=SP", " ", "petfriendly=true"}))
}

func TestRunUsage(t *testing.T) {
	app, out, errOut := newApp(t)

	assert.Equal(t, 2, app.Run(nil))
	assert.Contains(t, out.String(), "Subcommands:")

	assert.Equal(t, 0, app.Run([]string{"help"}))
	assert.Equal(t, 2, app.Run([]string{"show"}))
	assert.Equal(t, 2, app.Run([]string{"nope"}))
	assert.Contains(t, errOut.String(), "unknown subcommand: nope")
}

func TestNeedsService(t *testing.T) {
	for _, args := range [][]string{nil, {"help"}, {"-h"}, {"--help"}, {"nope"}} {
		assert.False(t, NeedsService(args), "%v", args)
	}
	for _, args := range [][]string{{"search"}, {"ls", "uf=SP"}, {"show", "Casa"}, {"reviews", "Casa"}} {
		assert.True(t, NeedsService(args), "%v", args)
	}
}

func TestHelpRunsWithoutService(t *testing.T) {
	var out, errOut bytes.Buffer
	app := &App{Log: logger.NewNop(), Out: &out, Err: &errOut}

	assert.Equal(t, 0, app.Run([]string{"help"}))
	assert.Contains(t, out.String(), "Subcommands:")
	assert.Equal(t, 2, app.Run([]string{"nope"}))
	assert.Contains(t, errOut.String(), "unknown subcommand: nope")
}

func TestList(t *testing.T) {
	app, out, errOut := newApp(t)

	code := app.Run([]string{"ls", "uf=PE", "tipo=Casa"})
	require.Equal(t, 0, code)

	s := out.String()
	assert.Contains(t, s, "1 listings")
	assert.Contains(t, s, "? uf=PE&tipo=Casa")
	assert.Contains(t, s, "Casa de Praia")
	assert.Contains(t, s, "Casa · PE")
	assert.Contains(t, s, "R$ 450")
	assert.Contains(t, s, "/path/to/image/praia.jpg")
	assert.Contains(t, errOut.String(), "✔ 1 listings in ")
}

func TestListNoMatch(t *testing.T) {
	app, _, errOut := newApp(t)

	assert.Equal(t, 1, app.Run([]string{"ls", "uf=AC"}))
	assert.Contains(t, errOut.String(), "no listing matches these filters")
}

func TestShowAndReviews(t *testing.T) {
	app, out, errOut := newApp(t)

	require.Equal(t, 0, app.Run([]string{"show", "Casa", "de", "Praia"}))
	assert.Contains(t, out.String(), "/placeholder.png")

	assert.Equal(t, 1, app.Run([]string{"show", "Chalé"}))
	assert.Contains(t, errOut.String(), "listing not found: Chalé")

	out.Reset()
	require.Equal(t, 0, app.Run([]string{"reviews", "Casa de Praia"}))
	assert.Contains(t, out.String(), "average 4.50 over 2 reviews")
}

func TestShowTreatsServiceLookupErrorAsMissing(t *testing.T) {
	app, _, errOut := newApp(t)

	assert.Equal(t, 1, app.Run([]string{"show", "Pousada", "Sumida"}))
	assert.Contains(t, errOut.String(), "listing not found: Pousada Sumida")

	errOut.Reset()
	assert.Equal(t, 1, app.Run([]string{"reviews", "Pousada Sumida"}))
	assert.Contains(t, errOut.String(), "listing not found: Pousada Sumida")

	errOut.Reset()
	assert.Equal(t, 1, app.Run([]string{"show", "Pousada Instavel"}))
	assert.NotContains(t, errOut.String(), "listing not found")
	assert.Contains(t, errOut.String(), "status 500")
}

func TestSearchHandsQueryToView(t *testing.T) {
	app, _, errOut := newApp(t)

	var got tui.Options
	app.Interactive = func(s tui.Searcher, opt tui.Options) error {
		got = opt
		return nil
	}
	require.Equal(t, 0, app.Run([]string{"search", "uf=SP", "valmax=300"}))
	assert.Equal(t, "uf=SP&valmax=300", got.Query)
	assert.Equal(t, time.Second, got.Timeout)
	assert.Equal(t, "/path/to/image/", got.Cards.ImageBasePath)

	app.Interactive = func(tui.Searcher, tui.Options) error { return errors.New("no tty") }
	assert.Equal(t, 1, app.Run([]string{"search"}))
	assert.Contains(t, errOut.String(), "tui: no tty")
}
