package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/vaultd/vaultd/internal/store"
)

var tokens = &cli.Command{
	Name:  "tokens",
	Usage: "manage tracked ERC-20 tokens",
	Subcommands: []*cli.Command{
		{
			Name:  "ls",
			Usage: "list tokens tracked on the active network",
			Action: tokensLsAction,
		},
		{
			Name:  "add",
			Usage: "track a token on the active network",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "address", Required: true, Usage: "token contract address"},
				&cli.StringFlag{Name: "symbol", Required: true, Usage: "token symbol"},
				&cli.UintFlag{Name: "decimals", Value: 18, Usage: "token decimals"},
				&cli.StringFlag{Name: "name", Usage: "token display name"},
				&cli.Uint64Flag{Name: "chain-id", Usage: "chain id (defaults to the active network)"},
			},
			Action: tokensAddAction,
		},
		{
			Name:      "rm",
			Usage:     "stop tracking a token",
			ArgsUsage: "<token-address>",
			Flags: []cli.Flag{
				&cli.Uint64Flag{Name: "chain-id", Usage: "chain id (defaults to the active network)"},
			},
			Action: tokensRmAction,
		},
	},
}

func targetChainID(ctx *cli.Context, s *store.Session) (uint64, error) {
	if ctx.IsSet("chain-id") {
		return ctx.Uint64("chain-id"), nil
	}
	n, err := s.ActiveNetwork()
	if err != nil {
		return 0, err
	}
	return n.ChainID, nil
}

func tokensLsAction(ctx *cli.Context) error {
	s, err := openSession()
	if err != nil {
		return friendly(err)
	}

	n, err := s.ActiveNetwork()
	if err != nil {
		return friendly(err)
	}
	list, err := s.TokensForChain(n.ChainID)
	if err != nil {
		return friendly(err)
	}

	for _, tok := range list {
		fmt.Printf("%s  %-8s %2d decimals  %s\n", tok.Address, tok.Symbol, tok.Decimals, tok.Name)
	}
	return nil
}

func tokensAddAction(ctx *cli.Context) error {
	s, err := openSession()
	if err != nil {
		return friendly(err)
	}

	chainID, err := targetChainID(ctx, s)
	if err != nil {
		return friendly(err)
	}

	tok := store.Token{
		Address:  ctx.String("address"),
		ChainID:  chainID,
		Symbol:   ctx.String("symbol"),
		Decimals: uint8(ctx.Uint("decimals")),
		Name:     ctx.String("name"),
	}
	if err := s.AddToken(tok); err != nil {
		return friendly(err)
	}
	fmt.Printf("Tracking %s on chain %d\n", tok.Symbol, tok.ChainID)
	return nil
}

func tokensRmAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.Exit("usage: vaultd tokens rm <token-address>", 1)
	}

	s, err := openSession()
	if err != nil {
		return friendly(err)
	}

	chainID, err := targetChainID(ctx, s)
	if err != nil {
		return friendly(err)
	}
	if err := s.RemoveToken(ctx.Args().First(), chainID); err != nil {
		return friendly(err)
	}
	fmt.Println("Token removed")
	return nil
}
