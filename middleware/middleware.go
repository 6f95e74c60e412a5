// Package middleware enforces Keycloak UMA permissions on HTTP handlers.
// The enforcer never verifies token signatures itself; it delegates every
// authorization decision to the server and caches the outcome briefly.
package middleware

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Nerzal/gocloak/v13"
	log "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/Obighbyd/go-keycloak-admin/keycloak"
)

const umaTicketGrantType = "urn:ietf:params:oauth:grant-type:uma-ticket"

// Config carries the static realm and client settings of the enforcer.
type Config struct {
	Realm        string
	ClientID     string
	ClientSecret string

	// CacheSize and CacheTTL bound the decision cache. Defaults: 256 entries,
	// 30 seconds. The TTL keeps revocations from going unnoticed for long.
	CacheSize int
	CacheTTL  time.Duration

	Logger log.Logger
}

// Enforcer guards HTTP routes with resource/scope permissions evaluated by
// the authorization server.
type Enforcer struct {
	service keycloak.Service
	config  Config
	cache   *expirable.LRU[string, bool]
	logger  log.Logger
}

// New creates an enforcer on top of service.
func New(service keycloak.Service, config Config) *Enforcer {
	size := config.CacheSize
	if size <= 0 {
		size = 256
	}
	ttl := config.CacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	logger := config.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Enforcer{
		service: service,
		config:  config,
		cache:   expirable.NewLRU[string, bool](size, nil, ttl),
		logger:  logger.Named("enforcer"),
	}
}

// Protect returns a middleware that requires the caller to hold all given
// scopes on the resource. With an empty resource the middleware only requires
// an active token. Decoded claims are stored on the request context under
// [ClaimsContextKey].
func (e *Enforcer) Protect(resource string, scopes ...string) func(http.Handler) http.Handler {
	permissions := make([]string, 0, len(scopes))
	if resource != "" && len(scopes) == 0 {
		permissions = append(permissions, resource)
	}
	for _, scope := range scopes {
		permissions = append(permissions, resource+"#"+scope)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			claims, err := parseClaims(token)
			if err != nil {
				http.Error(w, "malformed bearer token", http.StatusUnauthorized)
				return
			}

			allowed, err := e.decide(r.Context(), token, permissions)
			if err != nil {
				e.logger.Error("permission evaluation failed", "resource", resource, "error", err)
				http.Error(w, "permission evaluation failed", http.StatusForbidden)
				return
			}
			if !allowed {
				http.Error(w, "access denied", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (e *Enforcer) decide(ctx context.Context, token string, permissions []string) (bool, error) {
	key := decisionKey(token, permissions)
	if allowed, ok := e.cache.Get(key); ok {
		return allowed, nil
	}

	allowed, err := e.evaluate(ctx, token, permissions)
	if err != nil {
		return false, err
	}

	e.cache.Add(key, allowed)
	return allowed, nil
}

func (e *Enforcer) evaluate(ctx context.Context, token string, permissions []string) (bool, error) {
	if len(permissions) == 0 {
		result, err := e.service.RetrospectToken(ctx, token, e.config.ClientID, e.config.ClientSecret, e.config.Realm)
		if err != nil {
			return false, err
		}
		return result.Active != nil && *result.Active, nil
	}

	granted, err := e.service.GetRequestingPartyPermissions(ctx, token, e.config.Realm, keycloak.RequestingPartyTokenOptions{
		GrantType:   gocloak.StringP(umaTicketGrantType),
		Audience:    gocloak.StringP(e.config.ClientID),
		Permissions: &permissions,
	})
	if err != nil {
		return false, err
	}
	if granted == nil {
		return false, nil
	}

	for _, requested := range permissions {
		if !covers(*granted, requested) {
			return false, nil
		}
	}
	return true, nil
}

func covers(granted []keycloak.RequestingPartyPermission, requested string) bool {
	resource, scope, hasScope := strings.Cut(requested, "#")

	for _, permission := range granted {
		if permission.ResourceName == nil || *permission.ResourceName != resource {
			continue
		}
		if !hasScope {
			return true
		}
		if permission.Scopes == nil {
			continue
		}
		for _, grantedScope := range *permission.Scopes {
			if grantedScope == scope {
				return true
			}
		}
	}
	return false
}

func decisionKey(token string, permissions []string) string {
	sum := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x|%s", sum, strings.Join(permissions, ","))
}

func bearerToken(r *http.Request) (string, bool) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	return token, true
}
