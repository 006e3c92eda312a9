package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/andrebq/stagedoor/cmd/stagedoor/cert"
	"github.com/andrebq/stagedoor/cmd/stagedoor/hash"
	"github.com/andrebq/stagedoor/cmd/stagedoor/serve"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "stagedoor",
		Usage: "One shared password in front of servers that cannot protect themselves!",
		Commands: []*cli.Command{
			serve.Cmd(),
			hash.Cmd(),
			cert.Cmd(),
		},
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	err := app.RunContext(ctx, os.Args)
	if err != nil {
		log.Error().Err(err).Msg("Application failed")
	}
}
