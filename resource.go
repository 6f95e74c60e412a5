package admin

import (
	"context"
	"fmt"

	"github.com/Nerzal/gocloak/v13"

	"github.com/Obighbyd/go-keycloak-admin/keycloak"
)

// ResourceManager registers and queries UMA resources through the realm's
// resource registration endpoint. Every call authenticates with the facade's
// protection API token, refreshing it first when needed.
type ResourceManager struct {
	client *Client
}

func newResourceManager(client *Client) *ResourceManager {
	return &ResourceManager{client: client}
}

// Create registers resource with the authorization server and returns the
// stored representation including its server-assigned id. Owner-managed
// access is enabled unless the caller says otherwise.
func (m *ResourceManager) Create(ctx context.Context, resource keycloak.Resource) (*keycloak.Resource, error) {
	if resource.Name == nil || *resource.Name == "" {
		return nil, fmt.Errorf("resource has no name")
	}
	if resource.OwnerManagedAccess == nil {
		resource.OwnerManagedAccess = gocloak.BoolP(true)
	}

	token, err := m.client.ProtectionToken(ctx)
	if err != nil {
		return nil, err
	}

	return m.client.service.CreateResource(ctx, token, m.client.config.Realm, resource)
}

// Update replaces the stored representation of resource. The resource must
// carry the id assigned on creation.
func (m *ResourceManager) Update(ctx context.Context, resource keycloak.Resource) error {
	if resource.ID == nil || *resource.ID == "" {
		return fmt.Errorf("resource has no id")
	}

	token, err := m.client.ProtectionToken(ctx)
	if err != nil {
		return err
	}

	return m.client.service.UpdateResource(ctx, token, m.client.config.Realm, resource)
}

// Delete removes the resource registration with the given id.
func (m *ResourceManager) Delete(ctx context.Context, resourceID string) error {
	token, err := m.client.ProtectionToken(ctx)
	if err != nil {
		return err
	}

	return m.client.service.DeleteResource(ctx, token, m.client.config.Realm, resourceID)
}

// FindByID fetches a single resource registration by its id.
func (m *ResourceManager) FindByID(ctx context.Context, resourceID string) (*keycloak.Resource, error) {
	token, err := m.client.ProtectionToken(ctx)
	if err != nil {
		return nil, err
	}

	return m.client.service.GetResource(ctx, token, m.client.config.Realm, resourceID)
}

// Find lists resource registrations matching params.
func (m *ResourceManager) Find(ctx context.Context, params keycloak.GetResourceParams) ([]*keycloak.Resource, error) {
	token, err := m.client.ProtectionToken(ctx)
	if err != nil {
		return nil, err
	}

	return m.client.service.GetResources(ctx, token, m.client.config.Realm, params)
}

// FindByName fetches the resource registration with exactly the given name,
// or nil when none exists.
func (m *ResourceManager) FindByName(ctx context.Context, name string) (*keycloak.Resource, error) {
	resources, err := m.Find(ctx, keycloak.GetResourceParams{
		Name:      gocloak.StringP(name),
		ExactName: gocloak.BoolP(true),
	})
	if err != nil {
		return nil, err
	}
	if len(resources) == 0 {
		return nil, nil
	}
	return resources[0], nil
}
