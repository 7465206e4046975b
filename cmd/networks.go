package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/vaultd/vaultd/internal/store"
)

var networks = &cli.Command{
	Name:  "networks",
	Usage: "manage networks",
	Subcommands: []*cli.Command{
		{
			Name:   "ls",
			Usage:  "list networks",
			Action: networksLsAction,
		},
		{
			Name:  "add",
			Usage: "add a custom network",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "id", Required: true, Usage: "unique network id"},
				&cli.StringFlag{Name: "name", Required: true, Usage: "display name"},
				&cli.StringFlag{Name: "rpc", Required: true, Usage: "JSON-RPC endpoint URL"},
				&cli.Uint64Flag{Name: "chain-id", Required: true, Usage: "EIP-155 chain id"},
				&cli.StringFlag{Name: "symbol", Value: "ETH", Usage: "native coin symbol"},
				&cli.StringFlag{Name: "explorer", Usage: "block explorer base URL"},
			},
			Action: networksAddAction,
		},
		{
			Name:      "rm",
			Usage:     "remove a custom network",
			ArgsUsage: "<network-id>",
			Action:    networksRmAction,
		},
	},
}

func networksLsAction(ctx *cli.Context) error {
	s, err := openSession()
	if err != nil {
		return friendly(err)
	}

	list, err := s.Networks()
	if err != nil {
		return friendly(err)
	}
	active, _ := s.ActiveNetwork()

	for _, n := range list {
		marker := "  "
		if n.ID == active.ID {
			marker = "* "
		}
		fmt.Printf("%s%-12s %-20s chain %-10d %s\n", marker, n.ID, n.Name, n.ChainID, n.RPCURL)
	}
	return nil
}

func networksAddAction(ctx *cli.Context) error {
	s, err := openSession()
	if err != nil {
		return friendly(err)
	}

	n := store.Network{
		ID:          ctx.String("id"),
		Name:        ctx.String("name"),
		RPCURL:      ctx.String("rpc"),
		ChainID:     ctx.Uint64("chain-id"),
		Symbol:      ctx.String("symbol"),
		ExplorerURL: ctx.String("explorer"),
	}
	if err := s.AddNetwork(n); err != nil {
		return friendly(err)
	}
	fmt.Printf("Added network %s\n", n.ID)
	return nil
}

func networksRmAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.Exit("usage: vaultd networks rm <network-id>", 1)
	}

	s, err := openSession()
	if err != nil {
		return friendly(err)
	}
	if err := s.RemoveNetwork(ctx.Args().First()); err != nil {
		return friendly(err)
	}
	fmt.Println("Network removed")
	return nil
}
