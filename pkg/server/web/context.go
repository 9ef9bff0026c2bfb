package web

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mailcove/admin/pkg/api/client"
	"github.com/mailcove/admin/pkg/config"
	"github.com/mailcove/admin/pkg/notify"
)

// Context is passed into every request handler function.
type Context struct {
	Vars       map[string]string
	Client     *client.Client
	Hub        *notify.Hub
	RootConfig *config.Root
	WebConfig  config.Web
	// Creds are the session credentials lifted from the request, passed
	// through to the management API on the console's behalf.
	Creds client.Credentials
}

// Close the Context (currently does nothing).
func (c *Context) Close() {
	// Do nothing.
}

// NewContext returns a Context for the given HTTP Request.
func NewContext(req *http.Request) (*Context, error) {
	vars := mux.Vars(req)
	user, pass, _ := req.BasicAuth()
	ctx := &Context{
		Vars:       vars,
		Client:     apiClient,
		Hub:        changeHub,
		RootConfig: rootConfig,
		WebConfig:  rootConfig.Web,
		Creds:      client.Credentials{Username: user, Password: pass},
	}
	return ctx, nil
}
