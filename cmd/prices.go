package cmd

import (
	"context"
	"flag"

	"github.com/KenKundert/networth"
	"github.com/KenKundert/networth/renderer"
	"github.com/google/subcommands"
)

type pricesCmd struct{}

func (*pricesCmd) Name() string     { return "prices" }
func (*pricesCmd) Synopsis() string { return "display the price table" }
func (*pricesCmd) Usage() string {
	return `nw prices

  Displays each priced token with its total holding, unit price, the
  provider that supplied it, and the age of the cached price.
`
}

func (*pricesCmd) SetFlags(f *flag.FlagSet) {}

func (*pricesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return fail(err)
	}
	secrets, err := openSecrets(cfg)
	if err != nil {
		return fail(err)
	}
	accounts, err := networth.LoadAccounts(cfg.AccountsPath())
	if err != nil {
		return fail(err)
	}

	report, err := networth.NewReport(ctx, cfg, accounts, secrets, openCache(cfg), networth.ByName)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.PricesMarkdown(report))
	return subcommands.ExitSuccess
}
