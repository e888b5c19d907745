package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/matheusbarney/ess-hotel-project/internal/listing"
	"github.com/matheusbarney/ess-hotel-project/internal/platform/logger"
	"github.com/matheusbarney/ess-hotel-project/internal/search"
	"github.com/matheusbarney/ess-hotel-project/internal/tui"
	"github.com/matheusbarney/ess-hotel-project/internal/ui"
)

// Client is the listings service as the subcommands use it.
type Client interface {
	Search(ctx context.Context, query string) ([]listing.Listing, error)
	Get(ctx context.Context, title string) (*listing.Listing, error)
	Reviews(ctx context.Context, title string) ([]listing.Review, error)
}

// App wires the subcommands to their collaborators.
type App struct {
	Client  Client
	Log     *logger.Logger
	Cards   listing.CardOptions
	Timeout time.Duration
	Out     io.Writer
	Err     io.Writer

	// Interactive runs the full screen view; replaced in tests.
	Interactive func(s tui.Searcher, opt tui.Options) error
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func (a *App) Run(args []string) int {
	if len(args) == 0 {
		a.PrintHelp()
		return 2
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		a.PrintHelp()
		return 0

	case "search":
		return a.doSearch(BuildQuery(rest))

	case "ls":
		return a.doList(BuildQuery(rest))

	case "show":
		if len(rest) == 0 {
			ui.Fail(a.Err, "usage: reservas show <title...>")
			return 2
		}
		return a.doShow(strings.Join(rest, " "))

	case "reviews":
		if len(rest) == 0 {
			ui.Fail(a.Err, "usage: reservas reviews <title...>")
			return 2
		}
		return a.doReviews(strings.Join(rest, " "))
	}

	ui.Fail(a.Err, "unknown subcommand: "+cmd)
	fmt.Fprintln(a.Err)
	a.PrintHelp()
	return 2
}

// NeedsService reports whether args name a subcommand that talks to the
// listings service. Help and unknown subcommands do not.
func NeedsService(args []string) bool {
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "search", "ls", "show", "reviews":
		return true
	}
	return false
}

func (a *App) PrintHelp() {
	fmt.Fprint(a.Out, `reservas - browse reservation listings

Usage:
  reservas [flags] <subcommand> [args]

Subcommands:
  search [filters...]   Interactive results view (/ edits filters)
  ls [filters...]       Print the matching listings once
  show <title...>       Print one listing
  reviews <title...>    Print the review scores of a listing

Filters are passed to the listings service as a query string, either
as one argument ("tipo=Casa&uf=SP") or as several key=value arguments.
Known keys: tipo, petfriendly, uf, valmax, valmin, avaliacao, destacado.

Examples:
  reservas search uf=SP petfriendly=true
  reservas ls "tipo=Apartamento&valmax=300"
  reservas show Casa de Praia
`)
}

// BuildQuery turns filter arguments into a query string. A single argument
// is used as is; several are joined with "&".
func BuildQuery(args []string) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		if a = strings.TrimPrefix(strings.TrimSpace(a), "?"); a != "" {
			parts = append(parts, a)
		}
	}
	return strings.Join(parts, "&")
}

// -------------- subcommand impls ----------------

func (a *App) doSearch(query string) int {
	opt := tui.Options{Query: query, Timeout: a.Timeout, Cards: a.Cards, Logger: a.Log}
	run := a.Interactive
	if run == nil {
		run = runTUI
	}
	if err := run(a.Client, opt); err != nil {
		ui.Fail(a.Err, "tui: "+err.Error())
		return 1
	}
	return 0
}

func (a *App) doList(query string) int {
	ctx, cancel := a.context()
	defer cancel()

	start := time.Now()
	listings, err := a.Client.Search(ctx, query)
	if err != nil {
		a.Log.Error("search failed", zap.String("query", query), zap.Error(err))
		if search.IsNotFound(err) {
			ui.Fail(a.Err, "no listing matches these filters")
		} else {
			ui.Fail(a.Err, "search: "+err.Error())
		}
		return 1
	}

	t := ui.Current()
	cards := listing.Cards(listings, a.Cards)
	header := fmt.Sprintf("%s  %s", t.Title.Render("Search results"),
		t.Accent.Render(fmt.Sprintf("%d listings", len(cards))))
	fmt.Fprintln(a.Out, header)
	if query != "" {
		fmt.Fprintln(a.Out, t.Muted.Render("? "+query))
	}
	if len(cards) == 0 {
		fmt.Fprintln(a.Out, t.Muted.Render("no listings"))
	} else {
		out, _ := ui.RenderCards(cards, 72, -1)
		fmt.Fprint(a.Out, out)
	}
	ui.OK(a.Err, fmt.Sprintf("%d listings in %s", len(cards), time.Since(start).Round(time.Millisecond)))
	return 0
}

func (a *App) doShow(title string) int {
	ctx, cancel := a.context()
	defer cancel()

	l, err := a.Client.Get(ctx, title)
	if err != nil {
		a.Log.Error("get failed", zap.String("title", title), zap.Error(err))
		if search.IsMissingListing(err) {
			ui.Fail(a.Err, "listing not found: "+title)
		} else {
			ui.Fail(a.Err, "show: "+err.Error())
		}
		return 1
	}
	fmt.Fprintln(a.Out, ui.RenderCard(listing.NewCard(*l, l.Title, a.Cards), 72, false))
	return 0
}

func (a *App) doReviews(title string) int {
	ctx, cancel := a.context()
	defer cancel()

	reviews, err := a.Client.Reviews(ctx, title)
	if err != nil {
		a.Log.Error("reviews failed", zap.String("title", title), zap.Error(err))
		if search.IsMissingListing(err) {
			ui.Fail(a.Err, "listing not found: "+title)
		} else {
			ui.Fail(a.Err, "reviews: "+err.Error())
		}
		return 1
	}

	t := ui.Current()
	lines := []string{t.Title.Render("Reviews · " + title), ""}
	if len(reviews) == 0 {
		lines = append(lines, t.Muted.Render("(none yet)"))
	}
	for i, r := range reviews {
		lines = append(lines, fmt.Sprintf("%2d. %s %s", i+1,
			t.Accent.Render(fmt.Sprintf("%s %.1f", t.SymStar, r.Score)),
			t.Muted.Render(r.Address)))
	}
	if len(reviews) > 0 {
		lines = append(lines, "", fmt.Sprintf("average %.2f over %d reviews",
			listing.AverageScore(reviews), len(reviews)))
	}
	ui.Panel(a.Out, lines)
	return 0
}

func runTUI(s tui.Searcher, opt tui.Options) error {
	_, err := tui.Run(s, opt)
	return err
}

func (a *App) context() (context.Context, context.CancelFunc) {
	timeout := a.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return context.WithTimeout(context.Background(), timeout)
}
