package main

import (
	"context"
	"fmt"

	"bookmanager/internal/collection"
	"bookmanager/internal/config"
	"bookmanager/internal/gateway"

	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	backendURL string
	userID     string
)

var rootCmd = &cobra.Command{
	Use:   "bookctl",
	Short: "Manage a personal book collection on a Bookmanager backend",
	Long: `bookctl browses and edits a user's book collection on a remote
Bookmanager backend: add books by ISBN, rate and review them, edit their
details, and narrow the visible list with search and rating filters.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./bookctl.yaml)")
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "", "backend base URL (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", "", "user id the collection belongs to")
}

// newGateway builds the backend client from config and flags.
func newGateway() (*gateway.Client, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if backendURL != "" {
		cfg.BackendURL = backendURL
	}
	client := gateway.New(cfg.BackendURL, cfg.RequestsPerSecond, cfg.MaxRetries)
	client.SetTimeout(cfg.Timeout)
	return client, nil
}

// loadSession loads the collection for --user; every book-level command
// starts from here.
func loadSession(ctx context.Context) (*gateway.Client, *collection.Session, error) {
	if userID == "" {
		return nil, nil, fmt.Errorf("--user is required")
	}
	client, err := newGateway()
	if err != nil {
		return nil, nil, err
	}
	session := collection.NewSession(client, userID)
	if err := session.Load(ctx); err != nil {
		return nil, nil, fmt.Errorf("load user %s: %w", userID, err)
	}
	return client, session, nil
}
