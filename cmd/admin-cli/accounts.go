package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/subcommands"
)

const accountsPageSize = 25

type accountsCmd struct {
	page   int
	filter string
}

func (*accountsCmd) Name() string {
	return "accounts"
}

func (*accountsCmd) Synopsis() string {
	return "list individual accounts"
}

func (*accountsCmd) Usage() string {
	return `accounts [-page n] [-filter text]:
	list one page of individual accounts
`
}

func (a *accountsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&a.page, "page", 1, "page of the listing to fetch")
	f.StringVar(&a.filter, "filter", "", "restrict the listing to matching accounts")
}

func (a *accountsCmd) Execute(
	ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if a.page < 1 {
		return usage("page must be 1 or greater")
	}
	c, err := apiClient()
	if err != nil {
		return fatal("Couldn't build client", err)
	}

	result, err := c.ListAccounts(ctx, creds(), a.page, accountsPageSize, a.filter)
	if err != nil {
		return fatal("API call failed", err)
	}

	tabs := tabwriter.NewWriter(os.Stdout, 1, 0, 2, ' ', 0)
	fmt.Fprintln(tabs, "NAME\tDESCRIPTION\tEMAILS\tQUOTA")
	for _, p := range result.Items {
		quota := "-"
		if p.Quota > 0 {
			quota = fmt.Sprintf("%d/%d", p.UsedQuota, p.Quota)
		}
		fmt.Fprintf(tabs, "%s\t%s\t%s\t%s\n",
			p.Name, p.Description, strings.Join(p.Emails, ","), quota)
	}
	tabs.Flush()
	fmt.Printf("\nPage %d, %d account(s) total\n", a.page, result.Total)

	return subcommands.ExitSuccess
}
