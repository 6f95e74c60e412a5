package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/Nerzal/gocloak/v13"

	"github.com/Obighbyd/go-keycloak-admin/keycloak"
)

// PermissionManager builds requests against the realm's permission and policy
// endpoints: permission tickets, user-to-resource grants and requesting-party
// permission checks. Like the resource manager it is a thin wrapper; the
// protocol lives in the authorization server.
type PermissionManager struct {
	client *Client
}

func newPermissionManager(client *Client) *PermissionManager {
	return &PermissionManager{client: client}
}

// CreateTicket asks the permission endpoint for a permission ticket covering
// the given resources and scopes.
func (m *PermissionManager) CreateTicket(ctx context.Context, permissions []keycloak.PermissionTicketParams) (*keycloak.PermissionTicket, error) {
	if len(permissions) == 0 {
		return nil, fmt.Errorf("no permissions requested")
	}

	token, err := m.client.ProtectionToken(ctx)
	if err != nil {
		return nil, err
	}

	return m.client.service.CreatePermissionTicket(ctx, token, m.client.config.Realm, permissions)
}

// Grant lets the resource owner grant a requester access to a resource.
func (m *PermissionManager) Grant(ctx context.Context, permission keycloak.PermissionGrantParams) (*keycloak.PermissionGrant, error) {
	token, err := m.client.ProtectionToken(ctx)
	if err != nil {
		return nil, err
	}

	return m.client.service.GrantPermission(ctx, token, m.client.config.Realm, permission)
}

// Update changes an existing grant, e.g. to revoke a single scope.
func (m *PermissionManager) Update(ctx context.Context, permission keycloak.PermissionGrantParams) (*keycloak.PermissionGrant, error) {
	token, err := m.client.ProtectionToken(ctx)
	if err != nil {
		return nil, err
	}

	return m.client.service.UpdatePermission(ctx, token, m.client.config.Realm, permission)
}

// Revoke removes the grant identified by ticketID.
func (m *PermissionManager) Revoke(ctx context.Context, ticketID string) error {
	token, err := m.client.ProtectionToken(ctx)
	if err != nil {
		return err
	}

	return m.client.service.DeletePermission(ctx, token, m.client.config.Realm, ticketID)
}

// Find lists grants matching params.
func (m *PermissionManager) Find(ctx context.Context, params keycloak.GetPermissionParams) ([]*keycloak.PermissionGrant, error) {
	token, err := m.client.ProtectionToken(ctx)
	if err != nil {
		return nil, err
	}

	return m.client.service.GetPermissions(ctx, token, m.client.config.Realm, params)
}

// Check evaluates whether userToken holds all requested permissions, each in
// "resource#scope" form, by asking the token endpoint for the requesting
// party's permissions under this client's audience.
func (m *PermissionManager) Check(ctx context.Context, userToken string, permissions ...string) (bool, error) {
	granted, err := m.client.service.GetRequestingPartyPermissions(ctx, userToken, m.client.config.Realm, keycloak.RequestingPartyTokenOptions{
		GrantType:   gocloak.StringP("urn:ietf:params:oauth:grant-type:uma-ticket"),
		Audience:    gocloak.StringP(m.client.config.ClientID),
		Permissions: &permissions,
	})
	if err != nil {
		return false, err
	}
	if granted == nil {
		return false, nil
	}

	for _, requested := range permissions {
		if !permissionGranted(*granted, requested) {
			return false, nil
		}
	}
	return true, nil
}

func permissionGranted(granted []keycloak.RequestingPartyPermission, requested string) bool {
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
