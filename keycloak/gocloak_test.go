package keycloak_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Obighbyd/go-keycloak-admin/keycloak"
)

func TestGetWellKnownUmaConfiguration(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/realms/master/.well-known/uma2-configuration" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"issuer": "http://auth.example.com/realms/master",
			"token_endpoint": "http://auth.example.com/realms/master/protocol/openid-connect/token",
			"resource_registration_endpoint": "http://auth.example.com/realms/master/authz/protection/resource_set",
			"permission_endpoint": "http://auth.example.com/realms/master/authz/protection/permission",
			"policy_endpoint": "http://auth.example.com/realms/master/authz/protection/uma-policy",
			"jwks_uri": "http://auth.example.com/realms/master/protocol/openid-connect/certs"
		}`))
	}))
	defer server.Close()

	service, err := keycloak.NewGocloakService(context.Background(), keycloak.ConnectionConfig{ServerUrl: server.URL})
	if err != nil {
		t.Fatal(err)
	}

	config, err := service.GetWellKnownUmaConfiguration(context.Background(), "master")
	if err != nil {
		t.Fatal(err)
	}

	if config.Issuer != "http://auth.example.com/realms/master" {
		t.Errorf("unexpected issuer: %s", config.Issuer)
	}
	if config.ResourceRegistrationEndpoint != "http://auth.example.com/realms/master/authz/protection/resource_set" {
		t.Errorf("unexpected resource registration endpoint: %s", config.ResourceRegistrationEndpoint)
	}
	if config.PermissionEndpoint != "http://auth.example.com/realms/master/authz/protection/permission" {
		t.Errorf("unexpected permission endpoint: %s", config.PermissionEndpoint)
	}
}

func TestGetWellKnownUmaConfigurationUnknownRealm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	service, err := keycloak.NewGocloakService(context.Background(), keycloak.ConnectionConfig{ServerUrl: server.URL})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := service.GetWellKnownUmaConfiguration(context.Background(), "nope"); err == nil {
		t.Fatal("expected error, got <nil>")
	}
}
