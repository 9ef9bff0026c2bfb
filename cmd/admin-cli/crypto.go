package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/mailcove/admin/pkg/api/client"
	"github.com/mailcove/admin/pkg/api/model"
)

type cryptoShowCmd struct{}

func (*cryptoShowCmd) Name() string {
	return "crypto"
}

func (*cryptoShowCmd) Synopsis() string {
	return "show encryption-at-rest configuration"
}

func (*cryptoShowCmd) Usage() string {
	return `crypto:
	show the account's encryption-at-rest configuration
`
}

func (c *cryptoShowCmd) SetFlags(f *flag.FlagSet) {}

func (c *cryptoShowCmd) Execute(
	ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ac, err := apiClient()
	if err != nil {
		return fatal("Couldn't build client", err)
	}

	params, err := ac.GetCrypto(ctx, creds())
	if err != nil {
		return fatal("API call failed", err)
	}
	if !params.Enabled {
		fmt.Println("Encryption at rest: disabled")
		return subcommands.ExitSuccess
	}

	method := "OpenPGP"
	if params.Method == model.MethodSMIME {
		method = "S/MIME"
	}
	fmt.Println("Encryption at rest: enabled")
	fmt.Printf("Method:    %s\n", method)
	fmt.Printf("Algorithm: %s\n", params.Algo.FormValue())
	fmt.Printf("Certs:     %d byte(s)\n", len(params.Certs))

	return subcommands.ExitSuccess
}

type cryptoDisableCmd struct{}

func (*cryptoDisableCmd) Name() string {
	return "crypto-disable"
}

func (*cryptoDisableCmd) Synopsis() string {
	return "turn off encryption-at-rest"
}

func (*cryptoDisableCmd) Usage() string {
	return `crypto-disable:
	turn off encryption of incoming messages; requires -password
`
}

func (c *cryptoDisableCmd) SetFlags(f *flag.FlagSet) {}

func (c *cryptoDisableCmd) Execute(
	ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if *password == "" {
		return usage("-password required to change encryption settings")
	}
	ac, err := apiClient()
	if err != nil {
		return fatal("Couldn't build client", err)
	}

	err = ac.SaveCrypto(ctx, creds(), model.Disabled())
	if errors.Is(err, client.ErrUnauthorized) {
		return fatal("Save rejected", err)
	}
	if err != nil {
		return fatal("API call failed", err)
	}
	fmt.Println("Encryption at rest disabled")

	return subcommands.ExitSuccess
}
