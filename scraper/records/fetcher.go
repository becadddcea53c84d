package records

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/OPSE-Developers/OPSE-Records-Plugin/models"
)

const maxPageBytes = 8 * 1024 * 1024

var (
	// ErrBadStatus reports a directory response other than 200 OK.
	ErrBadStatus = errors.New("unexpected status")
	// ErrPageTooLarge reports a body over maxPageBytes.
	ErrPageTooLarge = errors.New("page too large")
	// ErrInvalidEncoding reports a body that is not valid UTF-8.
	ErrInvalidEncoding = errors.New("body is not valid UTF-8")
)

// Page is one raw directory response.
type Page struct {
	StatusCode int
	Body       string
}

// PageFetcher issues a single directory request. Transport failures are
// returned as errors; HTTP statuses are returned as data.
type PageFetcher interface {
	FetchPage(ctx context.Context, pageURL string) (*Page, error)
}

var (
	_ PageFetcher = (*HTTPFetcher)(nil)
	_ PageFetcher = (*BrowserFetcher)(nil)
)

// HTTPFetcher posts search requests with net/http.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// NewHTTPFetcher creates an HTTPFetcher. A zero timeout leaves the
// client unbounded; the caller's context still applies.
func NewHTTPFetcher(timeout time.Duration, userAgent string) *HTTPFetcher {
	return &HTTPFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// FetchPage posts an empty form to pageURL and returns the UTF-8 body.
// Oversized or non-UTF-8 bodies are transport failures.
func (f *HTTPFetcher) FetchPage(ctx context.Context, pageURL string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, pageURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxPageBytes {
		return nil, fmt.Errorf("read body: %w (over %d bytes)", ErrPageTooLarge, maxPageBytes)
	}
	if !utf8.Valid(body) {
		return nil, fmt.Errorf("decode body: %w", ErrInvalidEncoding)
	}

	return &Page{StatusCode: resp.StatusCode, Body: string(body)}, nil
}

// BuildSearchURL returns the directory search URL for one page.
// The first and last names travel in "who", joined by a "+".
func BuildSearchURL(endpoint string, q models.SearchQuery, page int) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parse search endpoint: %w", err)
	}

	params := u.Query()
	params.Set("label", q.LocationLabel)
	params.Set("who", q.FirstName+" "+q.LastName)
	params.Set("page", strconv.Itoa(page))
	u.RawQuery = params.Encode()

	return u.String(), nil
}
