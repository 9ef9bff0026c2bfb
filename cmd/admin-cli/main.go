// Package main implements a command line client for the mail server's
// management API, covering the same operations as the web console.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/mailcove/admin/pkg/api/client"
)

var host = flag.String("host", "https://127.0.0.1", "base URL of the mail server")
var user = flag.String("user", "", "administrator account name")
var password = flag.String("password", "", "administrator password")

const requestTimeout = 30 * time.Second

func main() {
	// Important top-level flags
	subcommands.ImportantFlag("host")
	subcommands.ImportantFlag("user")
	subcommands.ImportantFlag("password")

	// Setup standard helpers
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	// Setup my commands
	subcommands.Register(&accountsCmd{}, "")
	subcommands.Register(&cryptoShowCmd{}, "")
	subcommands.Register(&cryptoDisableCmd{}, "")

	// Parse and execute
	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}

func apiClient() (*client.Client, error) {
	return client.New(*host, requestTimeout)
}

func creds() client.Credentials {
	return client.Credentials{Username: *user, Password: *password}
}

func fatal(msg string, err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	return subcommands.ExitFailure
}

func usage(msg string) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, msg)
	return subcommands.ExitUsageError
}
