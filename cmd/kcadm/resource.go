package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Nerzal/gocloak/v13"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Obighbyd/go-keycloak-admin/keycloak"
)

var (
	resourceName   string
	resourceType   string
	resourceURIs   []string
	resourceScopes []string
)

var resourceCmd = &cobra.Command{
	Use:   "resource",
	Short: "Manage UMA resource registrations",
}

var resourceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered resources",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		resources, err := client.Resources().Find(cmd.Context(), keycloak.GetResourceParams{})
		if err != nil {
			return err
		}

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(resources)
	},
}

var resourceCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a resource",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		name := resourceName
		if name == "" {
			name = "resource-" + uuid.NewString()
		}

		resource := keycloak.Resource{
			Name: &name,
			Type: gocloak.StringP(resourceType),
			URIs: &resourceURIs,
		}
		if len(resourceScopes) > 0 {
			scopes := make([]gocloak.ScopeRepresentation, len(resourceScopes))
			for i, scope := range resourceScopes {
				scopes[i] = gocloak.ScopeRepresentation{Name: gocloak.StringP(scope)}
			}
			resource.Scopes = &scopes
		}

		created, err := client.Resources().Create(cmd.Context(), resource)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", name, *created.ID)
		return nil
	},
}

var resourceDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete resource registrations by id",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		var failed []string
		for _, id := range args {
			if err := client.Resources().Delete(cmd.Context(), id); err != nil {
				failed = append(failed, fmt.Sprintf("%s: %v", id, err))
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
		}
		if len(failed) > 0 {
			return fmt.Errorf("failed to delete: %s", strings.Join(failed, "; "))
		}
		return nil
	},
}

func init() {
	resourceCmd.AddCommand(resourceListCmd)
	resourceCmd.AddCommand(resourceCreateCmd)
	resourceCmd.AddCommand(resourceDeleteCmd)

	resourceCreateCmd.Flags().StringVar(&resourceName, "name", "", "Resource name (random when omitted)")
	resourceCreateCmd.Flags().StringVar(&resourceType, "type", "urn:resource", "Resource type")
	resourceCreateCmd.Flags().StringSliceVar(&resourceURIs, "uri", nil, "Resource URIs")
	resourceCreateCmd.Flags().StringSliceVar(&resourceScopes, "scope", nil, "Resource scopes")
}
