package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path"

	"github.com/KenKundert/networth/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	// Credentials like NETWORTH_VAULT_KEY may live in a .env file.
	godotenv.Load()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()

	// An interrupt aborts outstanding fetches; nothing partial is
	// ever persisted.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(int(commander.Execute(ctx)))
}
