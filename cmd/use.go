package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var use = &cli.Command{
	Name:  "use",
	Usage: "switch the active wallet, account or network",
	Subcommands: []*cli.Command{
		{
			Name:      "wallet",
			Usage:     "make a wallet active",
			ArgsUsage: "<wallet-id>",
			Action:    useWalletAction,
		},
		{
			Name:      "account",
			Usage:     "make an account of the active wallet active",
			ArgsUsage: "<address>",
			Action:    useAccountAction,
		},
		{
			Name:      "network",
			Usage:     "make a network active",
			ArgsUsage: "<network-id>",
			Action:    useNetworkAction,
		},
	},
}

func useWalletAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.Exit("usage: vaultd use wallet <wallet-id>", 1)
	}
	s, err := openSession()
	if err != nil {
		return friendly(err)
	}
	if err := s.SelectWallet(ctx.Args().First()); err != nil {
		return friendly(err)
	}
	fmt.Printf("Active wallet: %s\n", ctx.Args().First())
	return nil
}

func useAccountAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.Exit("usage: vaultd use account <address>", 1)
	}
	s, err := openSession()
	if err != nil {
		return friendly(err)
	}
	if err := s.SelectAccount(ctx.Args().First()); err != nil {
		return friendly(err)
	}
	fmt.Printf("Active account: %s\n", ctx.Args().First())
	return nil
}

func useNetworkAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.Exit("usage: vaultd use network <network-id>", 1)
	}
	s, err := openSession()
	if err != nil {
		return friendly(err)
	}
	if err := s.SelectNetwork(ctx.Args().First()); err != nil {
		return friendly(err)
	}
	fmt.Printf("Active network: %s\n", ctx.Args().First())
	return nil
}
