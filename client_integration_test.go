package admin_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Nerzal/gocloak/v13"
	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	admin "github.com/Obighbyd/go-keycloak-admin"
	"github.com/Obighbyd/go-keycloak-admin/keycloak"
)

const keycloakImage = "quay.io/keycloak/keycloak:26.0"

// startKeycloak launches a throwaway Keycloak and returns its base URL.
func startKeycloak(t *testing.T, ctx context.Context) string {
	t.Helper()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        keycloakImage,
			ExposedPorts: []string{"8080/tcp"},
			Env: map[string]string{
				"KC_BOOTSTRAP_ADMIN_USERNAME": "admin",
				"KC_BOOTSTRAP_ADMIN_PASSWORD": "admin",
			},
			Cmd: []string{"start-dev"},
			WaitingFor: wait.ForHTTP("/realms/master").
				WithPort(nat.Port("8080/tcp")).
				WithStartupTimeout(3 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate keycloak container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatal(err)
	}
	port, err := container.MappedPort(ctx, nat.Port("8080/tcp"))
	if err != nil {
		t.Fatal(err)
	}

	return "http://" + host + ":" + port.Port()
}

// provisionClient creates a confidential client with service accounts and
// authorization services enabled, and returns its secret.
func provisionClient(t *testing.T, ctx context.Context, baseURL string, clientID string) string {
	t.Helper()

	adminClient := gocloak.NewClient(baseURL)
	token, err := adminClient.LoginAdmin(ctx, "admin", "admin", "master")
	if err != nil {
		t.Fatal(err)
	}

	idOfClient, err := adminClient.CreateClient(ctx, token.AccessToken, "master", gocloak.Client{
		ClientID:                     gocloak.StringP(clientID),
		ServiceAccountsEnabled:       gocloak.BoolP(true),
		AuthorizationServicesEnabled: gocloak.BoolP(true),
		PublicClient:                 gocloak.BoolP(false),
	})
	if err != nil {
		t.Fatal(err)
	}

	creds, err := adminClient.GetClientSecret(ctx, token.AccessToken, "master", idOfClient)
	if err != nil {
		t.Fatal(err)
	}
	return *creds.Value
}

func TestClientAgainstKeycloak(t *testing.T) {
	if os.Getenv("KEYCLOAK_ACC") == "" {
		t.Skip("set KEYCLOAK_ACC to run tests against a Keycloak container")
	}

	ctx := context.Background()
	baseURL := startKeycloak(t, ctx)
	secret := provisionClient(t, ctx, baseURL, "uma-test")

	client, err := admin.New(admin.Config{
		BaseURL:      baseURL,
		Realm:        "master",
		ClientID:     "uma-test",
		ClientSecret: secret,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := client.Initialize(ctx); err != nil {
		t.Fatal(err)
	}

	if client.UMA().ResourceRegistrationEndpoint == "" {
		t.Fatal("expected a resource registration endpoint in the uma2 configuration")
	}

	created, err := client.Resources().Create(ctx, keycloak.Resource{
		Name: gocloak.StringP("document"),
		Type: gocloak.StringP("urn:uma-test:document"),
		Scopes: &[]gocloak.ScopeRepresentation{
			{Name: gocloak.StringP("read")},
			{Name: gocloak.StringP("write")},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	found, err := client.Resources().FindByID(ctx, *created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if *found.Name != "document" {
		t.Errorf("expected resource name document, got %s", *found.Name)
	}

	if err := client.Resources().Delete(ctx, *created.ID); err != nil {
		t.Fatal(err)
	}

	grant, err := client.RefreshGrant(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if grant == nil || grant.AccessToken == "" {
		t.Fatal("expected a usable grant after initialization")
	}
}
