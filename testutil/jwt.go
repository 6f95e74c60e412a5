// Package testutil provides helpers for tests that need realistic tokens.
package testutil

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// JWT creates a dummy HS256 JWT with iat = now and exp = now + lifetime.
// Extra claims can be merged in through claims; they win over the defaults.
func JWT(lifetime time.Duration, claims map[string]interface{}) string {
	now := time.Now().Truncate(time.Second)

	payload := map[string]interface{}{
		"jti": uuid.NewString(),
		"sub": "service-account-app",
		"iat": now.Unix(),
		"exp": now.Add(lifetime).Unix(),
	}
	for k, v := range claims {
		payload[k] = v
	}

	return sign(payload)
}

// NoExpJWT creates a dummy JWT without an exp claim.
func NoExpJWT() string {
	now := time.Now().Truncate(time.Second)

	return sign(map[string]interface{}{
		"jti": uuid.NewString(),
		"sub": "service-account-app",
		"iat": now.Unix(),
	})
}

func sign(payload map[string]interface{}) string {
	rawHeader := []byte(`{"alg":"HS256","typ":"JWT"}`)
	rawPayload, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}

	message := fmt.Sprintf("%s.%s",
		base64.RawURLEncoding.EncodeToString(rawHeader),
		base64.RawURLEncoding.EncodeToString(rawPayload))

	mac := hmac.New(sha256.New, []byte("a_very_secure_and_long_secret_key"))
	mac.Write([]byte(message))

	return fmt.Sprintf("%s.%s", message, base64.RawURLEncoding.EncodeToString(mac.Sum(nil)))
}
