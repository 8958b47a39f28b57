// Package client fetches binary point sets from a point set store over HTTP.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/edaniels/golog"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

const (
	// DefaultStoreURL is where the point set store listens unless configured otherwise.
	DefaultStoreURL = "http://localhost:5000"
	// DefaultTimeout bounds a single fetch, connection included.
	DefaultTimeout = 5 * time.Second
	// DefaultMaxBodySize caps the size of a point set payload.
	DefaultMaxBodySize = 64 << 20
)

var (
	// ErrInvalidID is returned for identifiers that are not canonical UUIDs.
	ErrInvalidID = errors.New("invalid point set id")
	// ErrNotFound is returned when the store has no point set with the given id.
	ErrNotFound = errors.New("point set not found")
	// ErrUnavailable is returned when the store cannot be reached or does not answer in time.
	ErrUnavailable = errors.New("point set store unavailable")
	// ErrUpstream is returned for any other failure reported by the store.
	ErrUpstream = errors.New("point set store error")
)

// ValidateID checks that id is a UUID in its canonical
// xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx form. Hex digits may be of either case.
func ValidateID(id string) error {
	// uuid.Parse also accepts the urn:uuid:, braced and unhyphenated forms.
	if len(id) != 36 {
		return errors.Wrapf(ErrInvalidID, "%q is not a canonical UUID", id)
	}
	if _, err := uuid.Parse(id); err != nil {
		return errors.Wrapf(ErrInvalidID, "%q: %v", id, err)
	}
	return nil
}

// Options configures a Client.
type Options struct {
	StoreURL    string
	Timeout     time.Duration
	MaxBodySize int64
	// HTTPClient is used when set, instead of a client built from Timeout.
	HTTPClient *http.Client
}

// Client retrieves point sets from the store.
type Client struct {
	storeURL    string
	maxBodySize int64
	httpClient  *http.Client
	logger      golog.Logger
}

// New returns a Client. Zero option values fall back to the package defaults.
func New(opts Options, logger golog.Logger) *Client {
	if opts.StoreURL == "" {
		opts.StoreURL = DefaultStoreURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = DefaultMaxBodySize
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		storeURL:    strings.TrimRight(opts.StoreURL, "/"),
		maxBodySize: opts.MaxBodySize,
		httpClient:  httpClient,
		logger:      logger,
	}
}

// URL returns the address of the point set with the given id.
func (c *Client) URL(id string) string {
	return fmt.Sprintf("%s/pointset/%s", c.storeURL, url.PathEscape(id))
}

// GetPointSet returns the binary encoding of the point set with the given id.
// The id is validated before any request is made.
func (c *Client) GetPointSet(ctx context.Context, id string) (data []byte, err error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}

	target := c.URL(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.Wrapf(ErrUpstream, "building request for %s: %v", target, err)
	}
	req.Header.Set("Accept", "application/octet-stream")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debugw("point set store request failed", "url", target, "error", err)
		return nil, errors.Wrapf(ErrUnavailable, "GET %s: %v", target, err)
	}
	defer func() {
		err = multierr.Combine(err, resp.Body.Close())
	}()

	c.logger.Debugw("point set store responded",
		"url", target, "status", resp.StatusCode, "elapsed", time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.Wrapf(ErrNotFound, "point set %s", id)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, errors.Wrapf(ErrUpstream, "GET %s: unexpected status %s%s", target, resp.Status, errorDetail(resp.Body))
	}

	data, err = io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
	if err != nil {
		return nil, errors.Wrapf(ErrUnavailable, "reading point set %s: %v", id, err)
	}
	if int64(len(data)) > c.maxBodySize {
		return nil, errors.Wrapf(ErrUpstream, "point set %s exceeds %d bytes", id, c.maxBodySize)
	}
	return data, nil
}

// errorDetail returns a short excerpt of an error response body, if any.
func errorDetail(body io.Reader) string {
	const maxDetail = 256
	b, err := io.ReadAll(io.LimitReader(body, maxDetail))
	if err != nil || len(b) == 0 {
		return ""
	}
	return ": " + strings.TrimSpace(string(b))
}

// GetPointSet fetches the point set with the given id from the store at
// storeURL using default options.
func GetPointSet(ctx context.Context, id, storeURL string, logger golog.Logger) ([]byte, error) {
	return New(Options{StoreURL: storeURL}, logger).GetPointSet(ctx, id)
}
