package keycloak

// UMAConfiguration is the relevant subset of the uma2-configuration document
// a realm publishes under .well-known. Fetched once and cached by the facade.
type UMAConfiguration struct {
	Issuer                       string   `json:"issuer"`
	AuthorizationEndpoint        string   `json:"authorization_endpoint"`
	TokenEndpoint                string   `json:"token_endpoint"`
	EndSessionEndpoint           string   `json:"end_session_endpoint"`
	RegistrationEndpoint         string   `json:"registration_endpoint"`
	ResourceRegistrationEndpoint string   `json:"resource_registration_endpoint"`
	PermissionEndpoint           string   `json:"permission_endpoint"`
	PolicyEndpoint               string   `json:"policy_endpoint"`
	IntrospectionEndpoint        string   `json:"introspection_endpoint"`
	JwksUri                      string   `json:"jwks_uri"`
	GrantTypesSupported          []string `json:"grant_types_supported,omitempty"`
	ResponseTypesSupported       []string `json:"response_types_supported,omitempty"`
	ScopesSupported              []string `json:"scopes_supported,omitempty"`
}

type WellKnownOpenidConfiguration struct {
	Issuer        string `json:"issuer"`
	TokenEndpoint string `json:"token_endpoint"`
	JwksUri       string `json:"jwks_uri"`
}
