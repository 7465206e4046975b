package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/vaultd/vaultd/cmd"
)

var version = "0.2.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := cli.NewApp()
	app.Name = "vaultd"
	app.Version = version
	app.Usage = "password-protected local store for blockchain identities"
	app.Commands = cmd.Commands()

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
