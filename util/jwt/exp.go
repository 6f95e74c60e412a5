// Package jwt reads the expiration claim of a JWT without verifying it.
// Signature verification is the identity provider's concern, not ours.
package jwt

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ExpiresAt extracts the exp claim from token and returns it as [time.Time].
func ExpiresAt(token string) (time.Time, error) {
	segments := strings.Split(token, ".")
	if len(segments) != 3 {
		return time.Time{}, fmt.Errorf("jwt has %d segments, want 3", len(segments))
	}

	payload, err := base64.RawURLEncoding.DecodeString(segments[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("decoding jwt payload: %w", err)
	}

	claims := struct {
		Exp *int64 `json:"exp"`
	}{}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return time.Time{}, fmt.Errorf("parsing jwt payload: %w", err)
	}
	if claims.Exp == nil {
		return time.Time{}, fmt.Errorf("jwt has no exp claim")
	}

	return time.Unix(*claims.Exp, 0), nil
}

// Expired reports whether token is expired, or will be within leeway from now.
// A token whose expiration time cannot be read counts as expired.
func Expired(token string, leeway time.Duration) bool {
	expiresAt, err := ExpiresAt(token)
	if err != nil {
		return true
	}

	return !time.Now().Add(leeway).Before(expiresAt)
}
