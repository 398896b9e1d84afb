package cmd

import (
	"context"
	"flag"
	"os"

	"github.com/KenKundert/networth"
	"github.com/KenKundert/networth/renderer"
	"github.com/google/subcommands"
)

type historyCmd struct {
	last int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display recorded net worth snapshots" }
func (*historyCmd) Usage() string {
	return `nw history [-n <count>]

  Displays the gross totals of previously recorded snapshots (see
  'nw report -w'), oldest first.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.last, "n", 0, "Only show the last n snapshots. 0 shows all.")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return fail(err)
	}

	file, err := os.Open(cfg.HistoryPath())
	if os.IsNotExist(err) {
		printMarkdown(renderer.HistoryMarkdown(cfg.Profile, nil))
		return subcommands.ExitSuccess
	}
	if err != nil {
		return fail(err)
	}
	defer file.Close()

	snapshots, err := networth.DecodeHistory(file)
	if err != nil {
		return fail(err)
	}
	if c.last > 0 && len(snapshots) > c.last {
		snapshots = snapshots[len(snapshots)-c.last:]
	}
	printMarkdown(renderer.HistoryMarkdown(cfg.Profile, snapshots))
	return subcommands.ExitSuccess
}
