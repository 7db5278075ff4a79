package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonathan/cvgen/internal/jobs"
	"github.com/jonathan/cvgen/internal/server"
	"github.com/jonathan/cvgen/internal/templates"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing template listing, HTML rendering, ATS scoring,
job analysis and profile endpoints.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	sc := currentConfig().Server
	if servePort > 0 {
		sc.Port = servePort
	}

	svc, closeFn, err := openProfiles(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	srv, err := server.New(sc, server.Deps{
		Templates: templates.NewProvider(),
		Jobs:      jobs.NewAnalyzer(newFetcher(false, nil), logger),
		Profiles:  svc,
	}, logger)
	if err != nil {
		return err
	}
	return srv.Start(ctx)
}
