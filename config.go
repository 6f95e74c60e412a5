// Package admin wires a confidential client to a Keycloak realm: it keeps a
// client-credentials grant alive and exposes thin managers for the realm's
// UMA2 protection API.
package admin

import (
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/hashicorp/go-hclog"
)

// ErrInvalidBaseURL is returned by [New] when the configured base URL does not
// carry an http or https scheme.
var ErrInvalidBaseURL = errors.New("base URL must start with http:// or https://")

// DefaultRefreshLeeway is how long before its actual expiration time a grant
// already counts as expired.
const DefaultRefreshLeeway = 10 * time.Second

// Config carries the connection settings for a realm. It is immutable after
// construction; [New] validates it once and never again.
type Config struct {
	// BaseURL is the Keycloak base URL, e.g. http://auth.example.org.
	BaseURL string
	// Realm is the name of the realm the client belongs to.
	Realm string
	// ClientID and ClientSecret identify the confidential client.
	ClientID     string
	ClientSecret string

	// RefreshLeeway overrides [DefaultRefreshLeeway] when positive.
	RefreshLeeway time.Duration
	// Logger receives refresh failures. Defaults to the hclog default logger.
	Logger log.Logger
}

func (c Config) validate() error {
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("%w, got %q", ErrInvalidBaseURL, c.BaseURL)
	}
	if c.Realm == "" {
		return errors.New("missing realm")
	}
	if c.ClientID == "" {
		return errors.New("missing client id")
	}
	return nil
}

func (c Config) refreshLeeway() time.Duration {
	if c.RefreshLeeway > 0 {
		return c.RefreshLeeway
	}
	return DefaultRefreshLeeway
}
