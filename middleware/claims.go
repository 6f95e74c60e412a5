package middleware

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mitchellh/mapstructure"
)

// ContextKey is the key type used to store request values in the context.
type ContextKey string

// ClaimsContextKey is the key under which the decoded token claims are stored.
const ClaimsContextKey ContextKey = "keycloak_claims"

// Claims is the subset of Keycloak token claims the enforcer exposes to
// handlers. The token signature is not verified here; that is the identity
// provider's job during introspection and permission evaluation.
type Claims struct {
	Subject           string                `mapstructure:"sub"`
	Issuer            string                `mapstructure:"iss"`
	AuthorizedParty   string                `mapstructure:"azp"`
	PreferredUsername string                `mapstructure:"preferred_username"`
	Email             string                `mapstructure:"email"`
	Scope             string                `mapstructure:"scope"`
	RealmAccess       RoleAccess            `mapstructure:"realm_access"`
	ResourceAccess    map[string]RoleAccess `mapstructure:"resource_access"`
}

// RoleAccess holds the roles of a realm_access or resource_access entry.
type RoleAccess struct {
	Roles []string `mapstructure:"roles"`
}

// ClaimsFromContext returns the claims the enforcer stored for this request.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*Claims)
	return claims, ok
}

func parseClaims(token string) (*Claims, error) {
	mapClaims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mapClaims); err != nil {
		return nil, err
	}

	claims := &Claims{}
	if err := mapstructure.Decode(map[string]interface{}(mapClaims), claims); err != nil {
		return nil, err
	}
	return claims, nil
}
