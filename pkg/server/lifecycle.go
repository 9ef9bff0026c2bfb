package server

import (
	"context"

	"github.com/mailcove/admin/pkg/api/client"
	"github.com/mailcove/admin/pkg/config"
	"github.com/mailcove/admin/pkg/notify"
	"github.com/mailcove/admin/pkg/server/web"
	"github.com/mailcove/admin/pkg/webui"
)

// Services holds the configured and started services.
type Services struct {
	APIClient *client.Client
	ChangeHub *notify.Hub
}

// Prod wires up the production admin console environment.
func Prod(rootCtx context.Context, shutdownChan chan bool, conf *config.Root) (*Services, error) {
	apiClient, err := client.New(conf.API.BaseURL, conf.API.Timeout)
	if err != nil {
		return nil, err
	}

	changeHub := notify.New(conf.Web.SocketHistory)
	go changeHub.Start(rootCtx)

	// Configure routes and start HTTP server.
	web.Initialize(conf, shutdownChan, apiClient, changeHub)
	uiRouter := web.Router
	if conf.Web.BasePath != "" {
		uiRouter = web.Router.PathPrefix(conf.Web.BasePath).Subrouter()
	}
	webui.SetupRoutes(uiRouter)
	go web.Start(rootCtx)

	return &Services{
		APIClient: apiClient,
		ChangeHub: changeHub,
	}, nil
}
