// Package cmd implements the CLI application to compute and report net worth.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/KenKundert/networth"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// Commands are the subcommands of the nw tool. A main package iterates
// over this list and registers each one.
var Commands = []subcommands.Command{
	&reportCmd{},
	&pricesCmd{},
	&historyCmd{},
	&vaultCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var profileFlag = flag.String("profile", "default", "Profile to report on.")
var configDirFlag = flag.String("config-dir", networth.DefaultConfigDir(), "Root directory of the profiles.")
var refreshFlag = flag.Bool("refresh", false, "Ignore cached prices and refetch from every provider.")

// loadConfig loads the selected profile.
func loadConfig() (*networth.Config, error) {
	return networth.LoadProfile(*configDirFlag, *profileFlag)
}

// openSecrets returns the secret store of a profile: the encrypted
// vault, with the environment as a fallback.
func openSecrets(cfg *networth.Config) (networth.SecretStore, error) {
	vault, err := networth.OpenVault(cfg.VaultPath())
	if err != nil {
		return nil, err
	}
	return networth.ChainSecrets{vault, networth.EnvSecrets{}}, nil
}

// openCache returns the profile's price cache, honoring -refresh.
func openCache(cfg *networth.Config) *networth.PriceCache {
	cache := networth.NewPriceCache(cfg.CachePath(), cfg.CacheTTL())
	cache.Refresh = *refreshFlag
	return cache
}

// printMarkdown renders markdown for the terminal. If rendering fails
// the raw markdown is still perfectly readable, so print that instead.
func printMarkdown(source string) {
	out, err := glamour.Render(source, "auto")
	if err != nil {
		fmt.Print(source)
		return
	}
	fmt.Print(out)
}

// fail reports a fatal error and picks the exit status: usage problems
// and config problems are the user's to fix.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
