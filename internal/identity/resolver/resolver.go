// Package resolver turns a community profile URL into the owner's global id by
// reading the profile's XML document.
package resolver

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	id "rankbridge/pkg/domain"
	dErrors "rankbridge/pkg/domain-errors"
)

const (
	// DefaultTimeout bounds one profile fetch.
	DefaultTimeout = 10 * time.Second

	maxBodyBytes = 1 << 20
)

var (
	// ErrFetch covers transport failures and non-2xx responses.
	ErrFetch = errors.New("profile fetch failed")
	// ErrParse covers malformed documents and non-numeric ids.
	ErrParse = errors.New("profile parse failed")
)

// profileDocument is the subset of the profile XML we read. The root element
// name is not checked.
type profileDocument struct {
	SteamID64 string `xml:"steamID64"`
}

// Resolver fetches profile documents over HTTP.
type Resolver struct {
	client  *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

type Option func(*Resolver)

func WithHTTPClient(client *http.Client) Option {
	return func(r *Resolver) {
		if client != nil {
			r.client = client
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

func New(opts ...Option) *Resolver {
	r := &Resolver{
		client:  http.DefaultClient,
		timeout: DefaultTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the global id in the document at profileURL. It reports
// false, without error, when the document has no id.
func (r *Resolver) Resolve(ctx context.Context, profileURL string) (id.GlobalID, bool, error) {
	target, err := documentURL(profileURL)
	if err != nil {
		return 0, false, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid profile url")
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, false, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid profile url")
	}
	req.Header.Set("Accept", "application/xml, text/xml")

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, false, fetchError(fmt.Errorf("%w: %w", ErrFetch, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, false, fetchError(fmt.Errorf("%w: status %d", ErrFetch, resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, false, fetchError(fmt.Errorf("%w: %w", ErrFetch, err))
	}

	var doc profileDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return 0, false, parseError(fmt.Errorf("%w: %w", ErrParse, err))
	}

	raw := strings.TrimSpace(doc.SteamID64)
	if raw == "" {
		r.logger.DebugContext(ctx, "profile document has no global id", "url", target)
		return 0, false, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, false, parseError(fmt.Errorf("%w: global id %q", ErrParse, raw))
	}
	return id.GlobalID(v), true, nil
}

// documentURL validates profileURL and asks for the XML rendering.
func documentURL(profileURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(profileURL))
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", errors.New("missing host")
	}
	q := u.Query()
	if !q.Has("xml") {
		q.Set("xml", "1")
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func fetchError(err error) error {
	return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to fetch profile")
}

func parseError(err error) error {
	return dErrors.Wrap(err, dErrors.CodeBadData, "failed to parse profile")
}
