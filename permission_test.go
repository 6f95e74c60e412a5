package admin

import (
	"context"
	"testing"
	"time"

	"github.com/Nerzal/gocloak/v13"
	"github.com/stretchr/testify/mock"

	"github.com/Obighbyd/go-keycloak-admin/keycloak"
	"github.com/Obighbyd/go-keycloak-admin/testutil"
)

func TestPermissionManagerCreateTicket(t *testing.T) {
	pat := testutil.JWT(time.Hour, nil)
	service := mockedService(t, &keycloak.JWT{AccessToken: pat})
	client := initializedClient(t, service, nil)

	params := []keycloak.PermissionTicketParams{
		{
			ResourceID:     gocloak.StringP("res-123"),
			ResourceScopes: &[]string{"read"},
		},
	}
	service.On("CreatePermissionTicket", mock.Anything, pat, testRealm, params).Return(&keycloak.PermissionTicket{
		Ticket: gocloak.StringP("ticket-abc"),
	}, nil)

	ticket, err := client.Permissions().CreateTicket(context.Background(), params)
	if err != nil {
		t.Fatal(err)
	}
	if ticket.Ticket == nil || *ticket.Ticket != "ticket-abc" {
		t.Errorf("expected ticket-abc, got %#v", ticket.Ticket)
	}
}

func TestPermissionManagerCreateTicketWithoutPermissions(t *testing.T) {
	service := mockedService(t, &keycloak.JWT{AccessToken: testutil.JWT(time.Hour, nil)})
	client := initializedClient(t, service, nil)

	if _, err := client.Permissions().CreateTicket(context.Background(), nil); err == nil {
		t.Fatal("expected error, got <nil>")
	}
}

func TestPermissionManagerGrantAndRevoke(t *testing.T) {
	pat := testutil.JWT(time.Hour, nil)
	service := mockedService(t, &keycloak.JWT{AccessToken: pat})
	client := initializedClient(t, service, nil)

	grantParams := keycloak.PermissionGrantParams{
		ResourceID:  gocloak.StringP("res-123"),
		RequesterID: gocloak.StringP("user-1"),
		ScopeName:   gocloak.StringP("read"),
		Granted:     gocloak.BoolP(true),
	}
	service.On("GrantPermission", mock.Anything, pat, testRealm, grantParams).Return(&keycloak.PermissionGrant{
		ID: gocloak.StringP("grant-1"),
	}, nil)
	service.On("DeletePermission", mock.Anything, pat, testRealm, "grant-1").Return(nil)

	grant, err := client.Permissions().Grant(context.Background(), grantParams)
	if err != nil {
		t.Fatal(err)
	}
	if err := client.Permissions().Revoke(context.Background(), *grant.ID); err != nil {
		t.Fatal(err)
	}
	service.AssertExpectations(t)
}

func TestPermissionManagerCheck(t *testing.T) {
	service := mockedService(t, &keycloak.JWT{AccessToken: testutil.JWT(time.Hour, nil)})
	client := initializedClient(t, service, nil)

	userToken := testutil.JWT(time.Minute, map[string]interface{}{"sub": "user-1"})
	service.On("GetRequestingPartyPermissions", mock.Anything, userToken, testRealm, mock.MatchedBy(func(options keycloak.RequestingPartyTokenOptions) bool {
		return options.Audience != nil && *options.Audience == "app"
	})).Return(&[]keycloak.RequestingPartyPermission{
		{
			ResourceName: gocloak.StringP("document"),
			Scopes:       &[]string{"read"},
		},
	}, nil)

	tests := []struct {
		name        string
		permissions []string
		expect      bool
	}{
		{name: "granted resource", permissions: []string{"document"}, expect: true},
		{name: "granted scope", permissions: []string{"document#read"}, expect: true},
		{name: "missing scope", permissions: []string{"document#write"}, expect: false},
		{name: "unknown resource", permissions: []string{"invoice#read"}, expect: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			granted, err := client.Permissions().Check(context.Background(), userToken, test.permissions...)
			if err != nil {
				t.Fatal(err)
			}
			if granted != test.expect {
				t.Errorf("expected %t, got %t", test.expect, granted)
			}
		})
	}
}
