package main

import (
	"fmt"

	"github.com/spf13/cobra"

	jwtutil "github.com/Obighbyd/go-keycloak-admin/util/jwt"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Obtain a protection API token for the configured client",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		token, err := client.ProtectionToken(cmd.Context())
		if err != nil {
			return err
		}

		if expiresAt, err := jwtutil.ExpiresAt(token); err == nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", expiresAt)
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}
