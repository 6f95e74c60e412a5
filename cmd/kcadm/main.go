package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	admin "github.com/Obighbyd/go-keycloak-admin"
)

var (
	baseURL      string
	realm        string
	clientID     string
	clientSecret string
)

var rootCmd = &cobra.Command{
	Use:   "kcadm",
	Short: "kcadm - manage UMA resources of a Keycloak realm",
	Long:  `kcadm talks to a Keycloak realm as a confidential client and manages its UMA resource registrations and permission grants.`,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(resourceCmd)

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Keycloak base URL")
	rootCmd.PersistentFlags().StringVar(&realm, "realm", "master", "Realm name")
	rootCmd.PersistentFlags().StringVar(&clientID, "client-id", "", "Confidential client id")
	rootCmd.PersistentFlags().StringVar(&clientSecret, "client-secret", "", "Client secret (or KCADM_CLIENT_SECRET)")
}

// newClient builds and initializes the facade from the global flags.
func newClient(ctx context.Context) (*admin.Client, error) {
	secret := clientSecret
	if secret == "" {
		secret = os.Getenv("KCADM_CLIENT_SECRET")
	}

	client, err := admin.New(admin.Config{
		BaseURL:      baseURL,
		Realm:        realm,
		ClientID:     clientID,
		ClientSecret: secret,
	})
	if err != nil {
		return nil, err
	}
	if err := client.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize against %s: %w", baseURL, err)
	}
	return client, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
