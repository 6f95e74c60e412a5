package admin

import (
	"context"
	"errors"
	"fmt"

	log "github.com/hashicorp/go-hclog"
	"golang.org/x/oauth2"

	"github.com/Obighbyd/go-keycloak-admin/keycloak"
	"github.com/Obighbyd/go-keycloak-admin/middleware"
	jwtutil "github.com/Obighbyd/go-keycloak-admin/util/jwt"
)

// ErrNotInitialized is returned by operations that need the facade to be
// initialized first.
var ErrNotInitialized = errors.New("client is not initialized, call Initialize first")

// Client is the facade over the Keycloak service, the UMA managers and the
// access-control middleware. Construct it with [New], then call
// [Client.Initialize] before using anything but the configuration accessors.
//
// The grant is not guarded by a lock: two concurrent RefreshGrant calls on an
// expired grant may both hit the token endpoint. The last writer wins.
type Client struct {
	config Config
	logger log.Logger

	// ServiceFactory creates the underlying keycloak service during
	// Initialize. Exposed so tests can substitute a mocked service.
	ServiceFactory keycloak.ServiceFactoryFunc

	service     keycloak.Service
	uma         *keycloak.UMAConfiguration
	openid      *keycloak.WellKnownOpenidConfiguration
	grant       *keycloak.JWT
	bearer      string
	resources   *ResourceManager
	permissions *PermissionManager
	enforcer    *middleware.Enforcer
	initialized bool
}

// New constructs a facade from config. It fails fast on an invalid base URL
// and performs no network calls.
func New(config Config) (*Client, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Client{
		config:         config,
		logger:         logger.Named("keycloak-admin"),
		ServiceFactory: keycloak.NewGocloakService,
	}, nil
}

// Initialize discovers the realm's UMA2 configuration, constructs the
// resource and permission managers and the access-control enforcer,
// authenticates the client through the client-credentials grant and
// cross-checks the OIDC issuer. It is idempotent: once it has succeeded,
// further calls return immediately without network side effects.
//
// Failures are returned to the caller as-is; a partially initialized client
// stays uninitialized and Initialize can be retried.
func (c *Client) Initialize(ctx context.Context) error {
	if c.initialized {
		return nil
	}

	service, err := c.ServiceFactory(ctx, keycloak.ConnectionConfig{
		ServerUrl:    c.config.BaseURL,
		Realm:        c.config.Realm,
		ClientId:     c.config.ClientID,
		ClientSecret: c.config.ClientSecret,
	})
	if err != nil {
		return err
	}

	uma, err := service.GetWellKnownUmaConfiguration(ctx, c.config.Realm)
	if err != nil {
		return err
	}

	resources := newResourceManager(c)
	permissions := newPermissionManager(c)
	enforcer := middleware.New(service, middleware.Config{
		Realm:        c.config.Realm,
		ClientID:     c.config.ClientID,
		ClientSecret: c.config.ClientSecret,
		Logger:       c.logger,
	})

	grant, err := service.LoginClient(ctx, c.config.ClientID, c.config.ClientSecret, c.config.Realm)
	if err != nil {
		return err
	}

	openid, err := service.GetWellKnownOpenidConfiguration(ctx, c.config.Realm)
	if err != nil {
		return err
	}
	if openid.Issuer != uma.Issuer {
		return fmt.Errorf("issuer mismatch: openid configuration says %q, uma2 configuration says %q",
			openid.Issuer, uma.Issuer)
	}

	c.service = service
	c.uma = uma
	c.openid = openid
	c.grant = grant
	c.bearer = grant.AccessToken
	c.resources = resources
	c.permissions = permissions
	c.enforcer = enforcer
	c.initialized = true
	return nil
}

// RefreshGrant returns the current grant, refreshing it first when it is
// expired. When there is no grant, or the grant carries no refresh token,
// the problem is logged and (nil, nil) is returned; the caller gets an empty
// result instead of an error. A failed token-endpoint call is returned as an
// error. On success the new grant replaces the old one wholesale and the
// bearer token is updated to the new access token.
func (c *Client) RefreshGrant(ctx context.Context) (*keycloak.JWT, error) {
	if c.grant != nil && !jwtutil.Expired(c.grant.AccessToken, c.config.refreshLeeway()) {
		return c.grant, nil
	}

	if c.grant == nil {
		c.logger.Error("no grant to refresh", "realm", c.config.Realm, "client_id", c.config.ClientID)
		return nil, nil
	}
	if c.grant.RefreshToken == "" {
		c.logger.Error("grant has no refresh token", "realm", c.config.Realm, "client_id", c.config.ClientID)
		return nil, nil
	}

	grant, err := c.service.RefreshToken(ctx, c.grant.RefreshToken, c.config.ClientID, c.config.ClientSecret, c.config.Realm)
	if err != nil {
		return nil, err
	}

	c.grant = grant
	c.bearer = grant.AccessToken
	return grant, nil
}

// ProtectionToken returns a currently valid protection API token (PAT) for
// the configured client. It backs every UMA manager call.
func (c *Client) ProtectionToken(ctx context.Context) (string, error) {
	if !c.initialized {
		return "", ErrNotInitialized
	}

	grant, err := c.RefreshGrant(ctx)
	if err != nil {
		return "", err
	}
	if grant == nil {
		return "", errors.New("no grant available")
	}
	return grant.AccessToken, nil
}

// TokenSource adapts the facade to [oauth2.TokenSource], so the grant can be
// plugged into any oauth2-aware HTTP client.
func (c *Client) TokenSource(ctx context.Context) oauth2.TokenSource {
	return tokenSource{ctx: ctx, client: c}
}

type tokenSource struct {
	ctx    context.Context
	client *Client
}

func (ts tokenSource) Token() (*oauth2.Token, error) {
	grant, err := ts.client.RefreshGrant(ts.ctx)
	if err != nil {
		return nil, err
	}
	if grant == nil {
		return nil, errors.New("no grant available")
	}

	token := &oauth2.Token{
		AccessToken:  grant.AccessToken,
		RefreshToken: grant.RefreshToken,
		TokenType:    grant.TokenType,
	}
	if expiresAt, err := jwtutil.ExpiresAt(grant.AccessToken); err == nil {
		token.Expiry = expiresAt
	}
	return token, nil
}

// Config returns the connection settings the facade was constructed with.
func (c *Client) Config() Config {
	return c.config
}

// AccessToken returns the bearer token currently propagated to the keycloak
// service, or "" before initialization.
func (c *Client) AccessToken() string {
	return c.bearer
}

// Keycloak returns the underlying keycloak service, or nil before
// initialization.
func (c *Client) Keycloak() keycloak.Service {
	return c.service
}

// UMA returns the cached uma2-configuration document, or nil before
// initialization.
func (c *Client) UMA() *keycloak.UMAConfiguration {
	return c.uma
}

// Resources returns the resource manager, or nil before initialization.
func (c *Client) Resources() *ResourceManager {
	return c.resources
}

// Permissions returns the permission manager, or nil before initialization.
func (c *Client) Permissions() *PermissionManager {
	return c.permissions
}

// AccessControl returns the access-control enforcer, or nil before
// initialization.
func (c *Client) AccessControl() *middleware.Enforcer {
	return c.enforcer
}
