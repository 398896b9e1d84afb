package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/KenKundert/networth"
	"github.com/fernet/fernet-go"
	"github.com/google/subcommands"
)

type vaultCmd struct {
	generate bool
}

func (*vaultCmd) Name() string     { return "vault" }
func (*vaultCmd) Synopsis() string { return "store a secret in the profile vault" }
func (*vaultCmd) Usage() string {
	return `nw vault [-g] <account> <field>

  Stores a secret (read from stdin) under <account>.<field> in the
  profile's encrypted vault. The vault key is taken from the
  NETWORTH_VAULT_KEY environment variable; -g generates a fresh key
  and prints it instead.
`
}

func (c *vaultCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.generate, "g", false, "Generate and print a new vault key, then exit.")
}

func (c *vaultCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.generate {
		var key fernet.Key
		if err := key.Generate(); err != nil {
			return fail(err)
		}
		fmt.Println(key.Encode())
		return subcommands.ExitSuccess
	}
	if f.NArg() != 2 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	account, field := f.Arg(0), f.Arg(1)

	cfg, err := loadConfig()
	if err != nil {
		return fail(err)
	}
	key, err := fernet.DecodeKey(os.Getenv("NETWORTH_VAULT_KEY"))
	if err != nil {
		return fail(fmt.Errorf("NETWORTH_VAULT_KEY is not a valid fernet key: %w", err))
	}

	fmt.Fprintf(os.Stderr, "Secret for %s.%s: ", account, field)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return fail(err)
	}
	secret := strings.TrimSpace(line)

	vault, err := networth.OpenVault(cfg.VaultPath())
	if err != nil {
		return fail(err)
	}
	secrets := vault.All()
	if secrets[account] == nil {
		secrets[account] = map[string]string{}
	}
	secrets[account][field] = secret

	if err := networth.SaveVault(cfg.VaultPath(), key, secrets); err != nil {
		return fail(err)
	}
	fmt.Fprintf(os.Stderr, "Stored %s.%s\n", account, field)
	return subcommands.ExitSuccess
}
