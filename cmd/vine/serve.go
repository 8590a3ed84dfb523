package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	httpAdapter "github.com/aretw0/vine/internal/adapters/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the quiz HTTP server",
	Long:  `Starts the vine engine in server mode, exposing the filler JSON API over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		a, err := buildApp(cmd.Context(), cmd)
		if err != nil {
			fmt.Printf("Error initializing vine: %v\n", err)
			os.Exit(1)
		}
		defer a.Close()

		if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
			a.cfg.Listen = listen
		}

		registry := prometheus.NewRegistry()
		if err := a.metrics.Register(registry); err != nil {
			fmt.Printf("Error registering metrics: %v\n", err)
			os.Exit(1)
		}

		mux := http.NewServeMux()
		mux.Handle("/", httpAdapter.NewHandler(a.quiz, a.logger))
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

		srv := &http.Server{
			Addr:    a.cfg.Listen,
			Handler: mux,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			a.logger.Info("starting vine server", "addr", srv.Addr, "catalog", a.cfg.Catalog.Backend, "store", a.cfg.Store.Backend)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			a.logger.Info("starting shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				a.logger.Error("graceful shutdown did not complete", "timeout", 5*time.Second, "err", err)
				if err := srv.Close(); err != nil {
					a.logger.Error("error killing server", "err", err)
				}
			}
			a.logger.Info("vine server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("listen", "l", "", "Listen address (overrides config)")
}
