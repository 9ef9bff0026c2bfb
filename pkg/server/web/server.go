// Package web provides the plumbing for the admin console's UI endpoints.
package web

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/mailcove/admin/pkg/api/client"
	"github.com/mailcove/admin/pkg/config"
	"github.com/mailcove/admin/pkg/notify"
)

var (
	// Router is shared with the webui package; it sends incoming requests to
	// the correct handler function.
	Router = mux.NewRouter()

	rootConfig     *config.Root
	apiClient      *client.Client
	changeHub      *notify.Hub
	server         *http.Server
	listener       net.Listener
	globalShutdown chan bool
)

// Initialize sets up things for unit tests or the Start() method.
func Initialize(
	conf *config.Root,
	shutdownChan chan bool,
	c *client.Client,
	hub *notify.Hub,
) {
	rootConfig = conf
	globalShutdown = shutdownChan
	apiClient = c
	changeHub = hub

	Router.NotFoundHandler = noMatchHandler(http.StatusNotFound, "No route matches request")
	Router.MethodNotAllowedHandler =
		noMatchHandler(http.StatusMethodNotAllowed, "Method not allowed for route")
}

// Start begins listening for HTTP requests.
func Start(ctx context.Context) {
	addr := rootConfig.Web.Addr
	server = &http.Server{
		Addr:         addr,
		Handler:      requestLoggingWrapper(Router),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	// We don't use ListenAndServe because it lacks a way to close the listener.
	log.Info().Str("module", "web").Str("addr", addr).Msg("HTTP listening on TCP4")
	var err error
	listener, err = net.Listen("tcp", addr)
	if err != nil {
		log.Error().Str("module", "web").Err(err).Msg("HTTP failed to start TCP4 listener")
		emergencyShutdown()
		return
	}

	// Listener go routine.
	go serve(ctx)

	// Wait for shutdown.
	<-ctx.Done()
	log.Debug().Str("module", "web").Msg("HTTP server shutting down on request")

	// Closing the listener will cause the serve() go routine to exit.
	if err := listener.Close(); err != nil {
		log.Error().Str("module", "web").Err(err).Msg("Failed to close HTTP listener")
	}
}

// serve begins serving HTTP requests.
func serve(ctx context.Context) {
	// server.Serve blocks until we close the listener.
	err := server.Serve(listener)

	select {
	case <-ctx.Done():
		// Nop.
	default:
		log.Error().Str("module", "web").Err(err).Msg("HTTP server failed")
		emergencyShutdown()
	}
}

func emergencyShutdown() {
	select {
	case <-globalShutdown:
	default:
		close(globalShutdown)
	}
}
