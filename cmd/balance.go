package cmd

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/vaultd/vaultd/internal/config"
	"github.com/vaultd/vaultd/internal/eth"
)

var balance = &cli.Command{
	Name:   "balance",
	Usage:  "show native and token balances of the active account",
	Action: balanceAction,
}

func balanceAction(ctx *cli.Context) error {
	s, err := openSession()
	if err != nil {
		return friendly(err)
	}

	a, err := s.ActiveAccount()
	if err != nil {
		return friendly(err)
	}
	n, err := s.ActiveNetwork()
	if err != nil {
		return friendly(err)
	}

	rpcURL := n.RPCURL
	if override := config.GetString(config.RPCEndpointKey); override != "" {
		log.WithField("endpoint", override).Debug("using RPC endpoint override")
		rpcURL = override
	}

	callCtx, cancel := context.WithTimeout(ctx.Context, config.GetRPCTimeout())
	defer cancel()

	client, err := eth.Dial(callCtx, rpcURL)
	if err != nil {
		return friendly(err)
	}
	defer client.Close()

	native, err := client.NativeBalance(callCtx, a.Address)
	if err != nil {
		return friendly(err)
	}
	fmt.Printf("%s  %s %s\n", a.Address, native, n.Symbol)

	toks, err := s.TokensForChain(n.ChainID)
	if err != nil {
		return friendly(err)
	}
	for _, tok := range toks {
		amount, err := client.TokenBalance(callCtx, tok.Address, a.Address, tok.Decimals)
		if err != nil {
			log.WithError(err).WithField("token", tok.Symbol).Warn("token balance query failed")
			continue
		}
		fmt.Printf("%s  %s %s\n", a.Address, amount, tok.Symbol)
	}
	return nil
}
