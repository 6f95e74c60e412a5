package admin

import (
	"errors"
	"testing"
)

func TestNewValidatesConfig(t *testing.T) {
	tests := []struct {
		name             string
		config           Config
		expectErr        bool
		expectInvalidURL bool
	}{
		{
			name:   "http base url",
			config: Config{BaseURL: "http://auth.example.com", Realm: "master", ClientID: "app"},
		},
		{
			name:   "https base url",
			config: Config{BaseURL: "https://auth.example.com", Realm: "master", ClientID: "app"},
		},
		{
			name:             "missing scheme",
			config:           Config{BaseURL: "auth.example.com", Realm: "master", ClientID: "app"},
			expectErr:        true,
			expectInvalidURL: true,
		},
		{
			name:             "unsupported scheme",
			config:           Config{BaseURL: "ftp://auth.example.com", Realm: "master", ClientID: "app"},
			expectErr:        true,
			expectInvalidURL: true,
		},
		{
			name:             "empty base url",
			config:           Config{Realm: "master", ClientID: "app"},
			expectErr:        true,
			expectInvalidURL: true,
		},
		{
			name:      "missing realm",
			config:    Config{BaseURL: "http://auth.example.com", ClientID: "app"},
			expectErr: true,
		},
		{
			name:      "missing client id",
			config:    Config{BaseURL: "http://auth.example.com", Realm: "master"},
			expectErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := New(test.config)
			if test.expectErr {
				if err == nil {
					t.Fatal("expected error, got <nil>")
				}
				if test.expectInvalidURL && !errors.Is(err, ErrInvalidBaseURL) {
					t.Fatalf("expected ErrInvalidBaseURL, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
		})
	}
}
