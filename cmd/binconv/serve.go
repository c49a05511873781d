// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/binconv/internal/history"
	"github.com/pdiddy/binconv/internal/logging"
	"github.com/pdiddy/binconv/internal/secrets"
	"github.com/pdiddy/binconv/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the conversion API over HTTP",
	Long: `Serve exposes the converter as a JSON HTTP API:

  POST /v1/convert    {"direction":"bin2dec","input":"101"}
  GET  /v1/validate   ?direction=dec2bin&input=42
  GET  /healthz

When the secrets directory holds a token file (server.token_file), /v1
requests must send "Authorization: Bearer <token>". With history enabled,
every conversion is recorded. The server stops on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logging.Component(logger, "server")

	token, err := secrets.Lookup(cfg.SecretsDir, cfg.Server.TokenFile, log)
	if err != nil {
		return err
	}
	opts := []server.Option{server.WithToken(token)}
	if token == "" {
		log.Warn().Msg("no API token configured; /v1 endpoints are open")
	}

	if cfg.History.Enabled {
		store, err := history.NewStore(cfg.History)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, server.WithRecorder(store))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg.Server, log, opts...).ListenAndServe(ctx)
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	rootCmd.AddCommand(serveCmd)
}
