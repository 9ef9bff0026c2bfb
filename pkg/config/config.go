// Package config parses the admin console's configuration from the
// environment.
package config

import (
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	prefix      = "admind"
	tableFormat = `The admin console is configured via the environment. The following
environment variables can be used:

KEY	DEFAULT	REQUIRED	DESCRIPTION
{{range .}}{{usage_key .}}	{{usage_default .}}	{{usage_required .}}	{{usage_description .}}
{{end}}`
)

var (
	// Version of this build, set by main.
	Version = ""

	// BuildDate for this build, set by main.
	BuildDate = ""
)

// Root wraps all other configurations.
type Root struct {
	LogLevel string `required:"true" default:"info" desc:"debug, info, warn, or error"`
	Web      Web
	API      API
}

// Web contains the HTTP server configuration.
type Web struct {
	Addr          string `required:"true" default:"0.0.0.0:8384" desc:"Web server IP4 host:port"`
	BasePath      string `desc:"Base path prefix for UI and API URLs"`
	PageSize      int    `required:"true" default:"10" desc:"Accounts shown per listing page"`
	SocketHistory int    `required:"true" default:"30" desc:"Change events replayed to new sockets"`
}

// API locates the mail server's management API.
type API struct {
	BaseURL string        `required:"true" default:"https://127.0.0.1:443" desc:"Management API base URL"`
	Timeout time.Duration `required:"true" default:"30s" desc:"Management API request timeout"`
}

// Process loads and parses configuration from the environment.
func Process() (*Root, error) {
	c := &Root{}
	err := envconfig.Process(prefix, c)
	return c, err
}

// Usage prints out the envconfig usage to Stderr.
func Usage() {
	tabs := tabwriter.NewWriter(os.Stderr, 1, 0, 4, ' ', 0)
	if err := envconfig.Usagef(prefix, &Root{}, tabs, tableFormat); err != nil {
		log.Fatalf("Unable to parse env config: %v", err)
	}
	tabs.Flush()
}
