// Package keycloak adapts keycloak functionality.
// Its core is the [Service] and its implementations, especially [GocloakService].
package keycloak

import (
	"context"

	"github.com/Nerzal/gocloak/v13"
)

type ConnectionConfig struct {
	ServerUrl    string
	Realm        string
	ClientId     string
	ClientSecret string
}

// Types, that the [Service] accepts and returns.
// Defined in terms of gocloak types as a compromise between decoupling and practicality.
type (
	JWT                         gocloak.JWT
	Resource                    gocloak.ResourceRepresentation
	GetResourceParams           gocloak.GetResourceParams
	PermissionTicketParams      gocloak.CreatePermissionTicketParams
	PermissionTicket            gocloak.PermissionTicketResponseRepresentation
	PermissionGrantParams       gocloak.PermissionGrantParams
	PermissionGrant             gocloak.PermissionGrantResponseRepresentation
	GetPermissionParams         gocloak.GetUserPermissionParams
	RequestingPartyTokenOptions gocloak.RequestingPartyTokenOptions
	RequestingPartyPermission   gocloak.RequestingPartyPermission
	IntrospectionResult         gocloak.IntroSpectTokenResult
)

// Service describes the relevant subset of keycloak functionality for the
// confidential-client facade: token grants, the UMA protection API and the
// well-known discovery documents.
type Service interface {
	// Defining the methods in the style of [gocloak.GoCloak].
	LoginClient(ctx context.Context, clientID string, clientSecret string, realm string) (*JWT, error)
	RefreshToken(ctx context.Context, refreshToken string, clientID string, clientSecret string, realm string) (*JWT, error)
	RetrospectToken(ctx context.Context, accessToken string, clientID string, clientSecret string, realm string) (*IntrospectionResult, error)
	GetRequestingPartyPermissions(ctx context.Context, token string, realm string, options RequestingPartyTokenOptions) (*[]RequestingPartyPermission, error)

	CreateResource(ctx context.Context, token string, realm string, resource Resource) (*Resource, error)
	GetResource(ctx context.Context, token string, realm string, resourceID string) (*Resource, error)
	GetResources(ctx context.Context, token string, realm string, params GetResourceParams) ([]*Resource, error)
	UpdateResource(ctx context.Context, token string, realm string, resource Resource) error
	DeleteResource(ctx context.Context, token string, realm string, resourceID string) error

	CreatePermissionTicket(ctx context.Context, token string, realm string, permissions []PermissionTicketParams) (*PermissionTicket, error)
	GrantPermission(ctx context.Context, token string, realm string, permission PermissionGrantParams) (*PermissionGrant, error)
	UpdatePermission(ctx context.Context, token string, realm string, permission PermissionGrantParams) (*PermissionGrant, error)
	GetPermissions(ctx context.Context, token string, realm string, params GetPermissionParams) ([]*PermissionGrant, error)
	DeletePermission(ctx context.Context, token string, realm string, ticketID string) error

	GetWellKnownUmaConfiguration(ctx context.Context, realm string) (*UMAConfiguration, error)
	GetWellKnownOpenidConfiguration(ctx context.Context, realm string) (*WellKnownOpenidConfiguration, error)
}

// ServiceFactoryFunc is a kind of function that creates new [Service] instances.
type ServiceFactoryFunc func(ctx context.Context, connConfig ConnectionConfig) (Service, error)
