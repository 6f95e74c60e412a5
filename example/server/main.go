// A minimal resource server: every route under /documents is guarded by the
// access-control middleware against the realm's authorization settings.
//
// Run a Keycloak with a confidential client (service accounts and
// authorization enabled), then:
//
//	go run ./example/server --help
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	log "github.com/hashicorp/go-hclog"

	admin "github.com/Obighbyd/go-keycloak-admin"
	"github.com/Obighbyd/go-keycloak-admin/middleware"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Keycloak base URL")
	realm := flag.String("realm", "master", "Realm name")
	clientID := flag.String("client-id", "documents", "Confidential client id")
	listen := flag.String("listen", ":9000", "Listen address")
	flag.Parse()

	logger := log.New(&log.LoggerOptions{Name: "example-server"})

	client, err := admin.New(admin.Config{
		BaseURL:      *baseURL,
		Realm:        *realm,
		ClientID:     *clientID,
		ClientSecret: os.Getenv("KEYCLOAK_CLIENT_SECRET"),
		Logger:       logger,
	})
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if err := client.Initialize(context.Background()); err != nil {
		logger.Error("initialization failed", "error", err)
		os.Exit(1)
	}

	enforcer := client.AccessControl()

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.With(enforcer.Protect("document", "read")).Get("/documents", listDocuments)
	r.With(enforcer.Protect("document", "write")).Post("/documents", createDocument)

	logger.Info("listening", "addr", *listen, "issuer", client.UMA().Issuer)
	if err := http.ListenAndServe(*listen, r); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func listDocuments(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.ClaimsFromContext(r.Context())
	fmt.Fprintf(w, "hello %s, no documents yet\n", claims.PreferredUsername)
}

func createDocument(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusCreated)
}
