package cmd

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/vaultd/vaultd/internal/keyring"
	"github.com/vaultd/vaultd/internal/store"
)

var status = &cli.Command{
	Name:   "status",
	Usage:  "show the active wallet, account and network",
	Action: statusAction,
}

func statusAction(ctx *cli.Context) error {
	s, err := openSession()
	if err != nil {
		return friendly(err)
	}

	fmt.Printf("Store:    %s\n", s.Path())
	if keyring.HasPassword(s.Path()) {
		fmt.Println("Keyring:  password saved")
	}

	list, err := s.Wallets()
	if err != nil {
		return friendly(err)
	}
	fmt.Printf("Wallets:  %d\n", len(list))

	if w, err := s.ActiveWallet(); err == nil {
		fmt.Printf("Active wallet:  %s (%s, %d accounts)\n", w.Name, w.ID, len(w.Accounts))
	} else if errors.Is(err, store.ErrNoActiveWallet) {
		fmt.Println("Active wallet:  none")
	} else {
		return friendly(err)
	}

	if a, err := s.ActiveAccount(); err == nil {
		fmt.Printf("Active account: %s (%s)\n", a.Address, a.Name)
	} else if errors.Is(err, store.ErrNoActiveAccount) {
		fmt.Println("Active account: none")
	} else {
		return friendly(err)
	}

	n, err := s.ActiveNetwork()
	if err != nil {
		return friendly(err)
	}
	fmt.Printf("Active network: %s (chain %d)\n", n.Name, n.ChainID)
	return nil
}
