package keycloak

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// NewMockedServiceFactoryFunc creates a new [ServiceFactoryFunc] that always returns service.
func NewMockedServiceFactoryFunc(service Service) ServiceFactoryFunc {
	return func(ctx context.Context, connConfig ConnectionConfig) (Service, error) {
		return service, nil
	}
}

// MockedService implements [Service] by delegating function
// calls to [MockedService.Mock].
type MockedService struct {
	mock.Mock
}

func (m *MockedService) LoginClient(ctx context.Context, clientID string, clientSecret string, realm string) (*JWT, error) {
	args := m.Called(ctx, clientID, clientSecret, realm)
	var t *JWT = nil
	if args.Get(0) != nil {
		t = args.Get(0).(*JWT)
	}
	return t, args.Error(1)
}

func (m *MockedService) RefreshToken(ctx context.Context, refreshToken string, clientID string, clientSecret string, realm string) (*JWT, error) {
	args := m.Called(ctx, refreshToken, clientID, clientSecret, realm)
	var t *JWT = nil
	if args.Get(0) != nil {
		t = args.Get(0).(*JWT)
	}
	return t, args.Error(1)
}

func (m *MockedService) RetrospectToken(ctx context.Context, accessToken string, clientID string, clientSecret string, realm string) (*IntrospectionResult, error) {
	args := m.Called(ctx, accessToken, clientID, clientSecret, realm)
	var r *IntrospectionResult = nil
	if args.Get(0) != nil {
		r = args.Get(0).(*IntrospectionResult)
	}
	return r, args.Error(1)
}

func (m *MockedService) GetRequestingPartyPermissions(ctx context.Context, token string, realm string, options RequestingPartyTokenOptions) (*[]RequestingPartyPermission, error) {
	args := m.Called(ctx, token, realm, options)
	var p *[]RequestingPartyPermission = nil
	if args.Get(0) != nil {
		p = args.Get(0).(*[]RequestingPartyPermission)
	}
	return p, args.Error(1)
}

func (m *MockedService) CreateResource(ctx context.Context, token string, realm string, resource Resource) (*Resource, error) {
	args := m.Called(ctx, token, realm, resource)
	var r *Resource = nil
	if args.Get(0) != nil {
		r = args.Get(0).(*Resource)
	}
	return r, args.Error(1)
}

func (m *MockedService) GetResource(ctx context.Context, token string, realm string, resourceID string) (*Resource, error) {
	args := m.Called(ctx, token, realm, resourceID)
	var r *Resource = nil
	if args.Get(0) != nil {
		r = args.Get(0).(*Resource)
	}
	return r, args.Error(1)
}

func (m *MockedService) GetResources(ctx context.Context, token string, realm string, params GetResourceParams) ([]*Resource, error) {
	args := m.Called(ctx, token, realm, params)
	return args.Get(0).([]*Resource), args.Error(1)
}

func (m *MockedService) UpdateResource(ctx context.Context, token string, realm string, resource Resource) error {
	args := m.Called(ctx, token, realm, resource)
	return args.Error(0)
}

func (m *MockedService) DeleteResource(ctx context.Context, token string, realm string, resourceID string) error {
	args := m.Called(ctx, token, realm, resourceID)
	return args.Error(0)
}

func (m *MockedService) CreatePermissionTicket(ctx context.Context, token string, realm string, permissions []PermissionTicketParams) (*PermissionTicket, error) {
	args := m.Called(ctx, token, realm, permissions)
	var t *PermissionTicket = nil
	if args.Get(0) != nil {
		t = args.Get(0).(*PermissionTicket)
	}
	return t, args.Error(1)
}

func (m *MockedService) GrantPermission(ctx context.Context, token string, realm string, permission PermissionGrantParams) (*PermissionGrant, error) {
	args := m.Called(ctx, token, realm, permission)
	var g *PermissionGrant = nil
	if args.Get(0) != nil {
		g = args.Get(0).(*PermissionGrant)
	}
	return g, args.Error(1)
}

func (m *MockedService) UpdatePermission(ctx context.Context, token string, realm string, permission PermissionGrantParams) (*PermissionGrant, error) {
	args := m.Called(ctx, token, realm, permission)
	var g *PermissionGrant = nil
	if args.Get(0) != nil {
		g = args.Get(0).(*PermissionGrant)
	}
	return g, args.Error(1)
}

func (m *MockedService) GetPermissions(ctx context.Context, token string, realm string, params GetPermissionParams) ([]*PermissionGrant, error) {
	args := m.Called(ctx, token, realm, params)
	return args.Get(0).([]*PermissionGrant), args.Error(1)
}

func (m *MockedService) DeletePermission(ctx context.Context, token string, realm string, ticketID string) error {
	args := m.Called(ctx, token, realm, ticketID)
	return args.Error(0)
}

func (m *MockedService) GetWellKnownUmaConfiguration(ctx context.Context, realm string) (*UMAConfiguration, error) {
	args := m.Called(ctx, realm)
	var c *UMAConfiguration = nil
	if args.Get(0) != nil {
		c = args.Get(0).(*UMAConfiguration)
	}
	return c, args.Error(1)
}

func (m *MockedService) GetWellKnownOpenidConfiguration(ctx context.Context, realm string) (*WellKnownOpenidConfiguration, error) {
	args := m.Called(ctx, realm)
	var c *WellKnownOpenidConfiguration = nil
	if args.Get(0) != nil {
		c = args.Get(0).(*WellKnownOpenidConfiguration)
	}
	return c, args.Error(1)
}
