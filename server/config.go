package server

import (
	"net/url"
	"time"

	"github.com/pkg/errors"

	"github.com/esimov/triangulator/client"
)

// Config holds the settings of the triangulation service.
type Config struct {
	// Addr is the TCP address to listen on.
	Addr string
	// StoreURL is the base URL of the point set store.
	StoreURL string
	// Timeout bounds the retrieval of a point set from the store.
	Timeout time.Duration
	// ShutdownTimeout bounds how long in-flight requests may take to drain.
	ShutdownTimeout time.Duration
	// CORS allows cross-origin requests from any origin.
	CORS bool
}

// DefaultConfig returns the configuration used when nothing else is specified.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		StoreURL:        client.DefaultStoreURL,
		Timeout:         client.DefaultTimeout,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("listen address is required")
	}
	u, err := url.Parse(c.StoreURL)
	if err != nil {
		return errors.Wrapf(err, "invalid store url %q", c.StoreURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Errorf("store url %q must use http or https", c.StoreURL)
	}
	if u.Host == "" {
		return errors.Errorf("store url %q has no host", c.StoreURL)
	}
	if c.Timeout <= 0 {
		return errors.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.ShutdownTimeout < 0 {
		return errors.Errorf("shutdown timeout must not be negative, got %s", c.ShutdownTimeout)
	}
	return nil
}
