package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/matheusbarney/ess-hotel-project/internal/listing"
	"github.com/matheusbarney/ess-hotel-project/internal/platform/logger"
)

const (
	listingsPath = "/queries/reservas"
	reviewsPath  = "/queries/avaliacoes"
)

// Client talks to the listings service over plain HTTP GETs.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// New returns a client for the service at baseURL (scheme and host, no trailing slash).
func New(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log.Named("search"),
	}
}

// Search fetches the listings matching query. The query string is appended
// as is; only a leading "?" is dropped and bytes that are not allowed in a
// URL query (spaces, '#', non-ASCII) are percent-encoded.
func (c *Client) Search(ctx context.Context, query string) ([]listing.Listing, error) {
	u := c.baseURL + listingsPath
	if q := strings.TrimPrefix(query, "?"); q != "" {
		u += "?" + escapeQuery(q)
	}
	var out []listing.Listing
	if err := c.get(ctx, "search", u, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []listing.Listing{}
	}
	return out, nil
}

// Get fetches a single listing by its title.
func (c *Client) Get(ctx context.Context, title string) (*listing.Listing, error) {
	u := c.baseURL + listingsPath + "/" + url.PathEscape(listing.Slug(title))
	var out listing.Listing
	if err := c.get(ctx, "get", u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reviews fetches the reviews left for the listing with the given title.
func (c *Client) Reviews(ctx context.Context, title string) ([]listing.Review, error) {
	u := c.baseURL + reviewsPath + "/" + url.PathEscape(listing.Slug(title))
	var out []listing.Review
	if err := c.get(ctx, "reviews", u, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, op, u string, dst any) error {
	reqID := uuid.NewString()
	log := c.log.With(zap.String("op", op), zap.String("request_id", reqID), zap.String("url", u))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &FetchError{Op: op, URL: u, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("request failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return &FetchError{Op: op, URL: u, Err: err}
	}
	defer resp.Body.Close()

	log.Debug("response received",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchError{Op: op, URL: u, StatusCode: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(dst); err != nil {
		return &FetchError{Op: op, URL: u, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode body: %w", err)}
	}
	if _, err := dec.Token(); err != io.EOF {
		return &FetchError{Op: op, URL: u, StatusCode: resp.StatusCode, Err: errTrailingData}
	}
	return nil
}

var errTrailingData = errors.New("decode body: unexpected data after JSON value")

// escapeQuery percent-encodes every byte that may not appear in a URL query.
// Valid %XX escapes and the reserved characters are kept, so an already
// encoded query is returned unchanged.
func escapeQuery(q string) string {
	var b strings.Builder
	b.Grow(len(q))
	for i := 0; i < len(q); i++ {
		c := q[i]
		switch {
		case c == '%' && i+2 < len(q) && isHex(q[i+1]) && isHex(q[i+2]):
			b.WriteByte(c)
		case isQueryByte(c):
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

func isQueryByte(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-._~!$&'()*+,;=:@/?", c) >= 0
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// readDetail pulls {"detail": "..."} out of an error body, best effort.
func readDetail(r io.Reader) string {
	var body struct {
		Detail any `json:"detail"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 64<<10)).Decode(&body); err != nil {
		return ""
	}
	switch d := body.Detail.(type) {
	case string:
		return d
	case nil:
		return ""
	default:
		b, _ := json.Marshal(d)
		return string(b)
	}
}
