package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/KenKundert/networth"
	"github.com/KenKundert/networth/renderer"
	"github.com/google/subcommands"
)

type reportCmd struct {
	byValue bool
	write   bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "compute and display net worth" }
func (*reportCmd) Usage() string {
	return `nw report [-S] [-w]

  Computes net worth from the profile's accounts, fetching current
  prices for tokens, securities and metals as needed, and displays the
  breakdown by account and by asset type.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.byValue, "S", false, "Sort accounts by descending value instead of by name.")
	f.BoolVar(&c.write, "w", false, "Append a snapshot of the totals to the profile history.")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	order := networth.ByName
	if c.byValue {
		order = networth.ByValue
	}
	report, err := networth.NewReport(ctx, cfg, accounts, secrets, openCache(cfg), order)
	if errors.Is(err, context.Canceled) {
		// Interrupted: nothing has been persisted.
		fmt.Fprintln(os.Stderr, "interrupted")
		return subcommands.ExitFailure
	}
	if err != nil {
		return fail(err)
	}

	printMarkdown(renderer.ReportMarkdown(report))

	if c.write {
		snapshot := networth.NewSnapshot(report.Totals, time.Now())
		if err := networth.AppendSnapshot(cfg.HistoryPath(), snapshot); err != nil {
			return fail(err)
		}
		fmt.Fprintf(os.Stderr, "Recorded snapshot %s\n", snapshot.Timestamp)
	}
	return subcommands.ExitSuccess
}
