package keycloak

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Nerzal/gocloak/v13"
)

// NewGocloakService is compatible with [ServiceFactoryFunc] and creates a [Service]
// instance by wrapping [gocloak.NewClient].
func NewGocloakService(ctx context.Context, connConfig ConnectionConfig) (Service, error) {
	gocloakClient := gocloak.NewClient(connConfig.ServerUrl)

	return &GocloakService{
		serverUrl:     connConfig.ServerUrl,
		gocloakClient: gocloakClient,
	}, nil
}

// GocloakService implements [Service] through the [gocloak] package.
type GocloakService struct {
	serverUrl     string
	gocloakClient *gocloak.GoCloak
}

func (g *GocloakService) LoginClient(ctx context.Context, clientID string, clientSecret string, realm string) (*JWT, error) {
	jwt, err := g.gocloakClient.LoginClient(ctx, clientID, clientSecret, realm)
	return (*JWT)(jwt), err
}

func (g *GocloakService) RefreshToken(ctx context.Context, refreshToken string, clientID string, clientSecret string, realm string) (*JWT, error) {
	jwt, err := g.gocloakClient.RefreshToken(ctx, refreshToken, clientID, clientSecret, realm)
	return (*JWT)(jwt), err
}

func (g *GocloakService) RetrospectToken(ctx context.Context, accessToken string, clientID string, clientSecret string, realm string) (*IntrospectionResult, error) {
	result, err := g.gocloakClient.RetrospectToken(ctx, accessToken, clientID, clientSecret, realm)
	return (*IntrospectionResult)(result), err
}

func (g *GocloakService) GetRequestingPartyPermissions(ctx context.Context, token string, realm string, options RequestingPartyTokenOptions) (*[]RequestingPartyPermission, error) {
	goCloakPermissions, err := g.gocloakClient.GetRequestingPartyPermissions(ctx, token, realm, gocloak.RequestingPartyTokenOptions(options))
	if err != nil {
		return nil, err
	}

	permissions := make([]RequestingPartyPermission, len(*goCloakPermissions))
	for i, permission := range *goCloakPermissions {
		permissions[i] = RequestingPartyPermission(permission)
	}

	return &permissions, nil
}

// The resource methods use the client-protection variants of the gocloak API:
// the bearer token is the protection API token of the resource server itself.

func (g *GocloakService) CreateResource(ctx context.Context, token string, realm string, resource Resource) (*Resource, error) {
	created, err := g.gocloakClient.CreateResourceClient(ctx, token, realm, gocloak.ResourceRepresentation(resource))
	return (*Resource)(created), err
}

func (g *GocloakService) GetResource(ctx context.Context, token string, realm string, resourceID string) (*Resource, error) {
	resource, err := g.gocloakClient.GetResourceClient(ctx, token, realm, resourceID)
	return (*Resource)(resource), err
}

func (g *GocloakService) GetResources(ctx context.Context, token string, realm string, params GetResourceParams) ([]*Resource, error) {
	goCloakResources, err := g.gocloakClient.GetResourcesClient(ctx, token, realm, gocloak.GetResourceParams(params))
	if err != nil {
		return nil, err
	}

	resources := make([]*Resource, len(goCloakResources))
	for i, resource := range goCloakResources {
		resources[i] = (*Resource)(resource)
	}

	return resources, nil
}

func (g *GocloakService) UpdateResource(ctx context.Context, token string, realm string, resource Resource) error {
	return g.gocloakClient.UpdateResourceClient(ctx, token, realm, gocloak.ResourceRepresentation(resource))
}

func (g *GocloakService) DeleteResource(ctx context.Context, token string, realm string, resourceID string) error {
	return g.gocloakClient.DeleteResourceClient(ctx, token, realm, resourceID)
}

func (g *GocloakService) CreatePermissionTicket(ctx context.Context, token string, realm string, permissions []PermissionTicketParams) (*PermissionTicket, error) {
	goCloakPermissions := make([]gocloak.CreatePermissionTicketParams, len(permissions))
	for i, permission := range permissions {
		goCloakPermissions[i] = gocloak.CreatePermissionTicketParams(permission)
	}

	ticket, err := g.gocloakClient.CreatePermissionTicket(ctx, token, realm, goCloakPermissions)
	return (*PermissionTicket)(ticket), err
}

func (g *GocloakService) GrantPermission(ctx context.Context, token string, realm string, permission PermissionGrantParams) (*PermissionGrant, error) {
	grant, err := g.gocloakClient.GrantUserPermission(ctx, token, realm, gocloak.PermissionGrantParams(permission))
	return (*PermissionGrant)(grant), err
}

func (g *GocloakService) UpdatePermission(ctx context.Context, token string, realm string, permission PermissionGrantParams) (*PermissionGrant, error) {
	grant, err := g.gocloakClient.UpdateUserPermission(ctx, token, realm, gocloak.PermissionGrantParams(permission))
	return (*PermissionGrant)(grant), err
}

func (g *GocloakService) GetPermissions(ctx context.Context, token string, realm string, params GetPermissionParams) ([]*PermissionGrant, error) {
	goCloakGrants, err := g.gocloakClient.GetUserPermissions(ctx, token, realm, gocloak.GetUserPermissionParams(params))
	if err != nil {
		return nil, err
	}

	grants := make([]*PermissionGrant, len(goCloakGrants))
	for i, grant := range goCloakGrants {
		grants[i] = (*PermissionGrant)(grant)
	}

	return grants, nil
}

func (g *GocloakService) DeletePermission(ctx context.Context, token string, realm string, ticketID string) error {
	return g.gocloakClient.DeleteUserPermission(ctx, token, realm, ticketID)
}

func (g *GocloakService) GetWellKnownUmaConfiguration(ctx context.Context, realm string) (*UMAConfiguration, error) {
	config := &UMAConfiguration{}
	if err := g.getWellKnown(ctx, realm, "uma2-configuration", config); err != nil {
		return nil, err
	}
	return config, nil
}

func (g *GocloakService) GetWellKnownOpenidConfiguration(ctx context.Context, realm string) (*WellKnownOpenidConfiguration, error) {
	config := &WellKnownOpenidConfiguration{}
	if err := g.getWellKnown(ctx, realm, "openid-configuration", config); err != nil {
		return nil, err
	}
	return config, nil
}

func (g *GocloakService) getWellKnown(ctx context.Context, realm string, document string, out interface{}) error {
	url := fmt.Sprintf("%s/realms/%s/.well-known/%s", g.serverUrl, realm, document)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching %s for realm %s: unexpected status %d", document, realm, res.StatusCode)
	}

	return json.NewDecoder(res.Body).Decode(out)
}
