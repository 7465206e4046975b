package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/vaultd/vaultd/internal/crypto"
)

var createWallet = &cli.Command{
	Name:  "create-wallet",
	Usage: "generate a new hd wallet and print its recovery phrase once",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "name", Value: "Wallet", Usage: "display name for the wallet"},
	},
	Action: createWalletAction,
}

var importMnemonic = &cli.Command{
	Name:  "import-mnemonic",
	Usage: "import a wallet from an existing recovery phrase",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "name", Value: "Imported", Usage: "display name for the wallet"},
	},
	Action: importMnemonicAction,
}

var derive = &cli.Command{
	Name:  "derive",
	Usage: "derive the next account of an hd wallet and make it active",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "wallet", Usage: "wallet id (defaults to the active wallet)"},
	},
	Action: deriveAction,
}

var wallets = &cli.Command{
	Name:   "wallets",
	Usage:  "list wallets",
	Action: walletsAction,
}

var accounts = &cli.Command{
	Name:   "accounts",
	Usage:  "list the accounts of the active wallet",
	Action: accountsAction,
}

var rmAccount = &cli.Command{
	Name:   "rm-account",
	Usage:  "delete the active account",
	Action: rmAccountAction,
}

var rmWallet = &cli.Command{
	Name:   "rm-wallet",
	Usage:  "delete the active wallet and all of its accounts",
	Action: rmWalletAction,
}

func createWalletAction(ctx *cli.Context) error {
	s, err := openSession()
	if err != nil {
		return friendly(err)
	}

	mnemonic, err := newRegistry(s).CreateHDWallet(ctx.String("name"))
	if err != nil {
		return friendly(err)
	}

	fmt.Println("Write down the recovery phrase below. It is shown exactly once and cannot be recovered later.")
	fmt.Println()
	fmt.Println(mnemonic)
	return nil
}

func importMnemonicAction(ctx *cli.Context) error {
	s, err := openSession()
	if err != nil {
		return friendly(err)
	}

	phrase, err := ReadPassword("Enter recovery phrase: ")
	if err != nil {
		return friendly(err)
	}
	defer crypto.ClearBytes(phrase)

	w, err := newRegistry(s).ImportMnemonic(ctx.String("name"), string(phrase))
	if err != nil {
		return friendly(err)
	}

	fmt.Printf("Imported wallet %s with %d accounts\n", w.ID, len(w.Accounts))
	for _, a := range w.Accounts {
		fmt.Printf("  %s  %s\n", a.Address, a.DerivationPath)
	}
	return nil
}

func deriveAction(ctx *cli.Context) error {
	s, err := openSession()
	if err != nil {
		return friendly(err)
	}

	walletID := ctx.String("wallet")
	if walletID == "" {
		w, err := s.ActiveWallet()
		if err != nil {
			return friendly(err)
		}
		walletID = w.ID
	}

	a, err := newRegistry(s).DeriveNewAccount(walletID)
	if err != nil {
		return friendly(err)
	}
	fmt.Printf("%s  %s\n", a.Address, a.DerivationPath)
	return nil
}

func walletsAction(ctx *cli.Context) error {
	s, err := openSession()
	if err != nil {
		return friendly(err)
	}

	list, err := s.Wallets()
	if err != nil {
		return friendly(err)
	}
	active, _ := s.ActiveWallet()

	for _, w := range list {
		marker := "  "
		if w.ID == active.ID {
			marker = "* "
		}
		fmt.Printf("%s%s  %-8s %-20s %d accounts\n", marker, w.ID, w.Type, w.Name, len(w.Accounts))
	}
	return nil
}

func accountsAction(ctx *cli.Context) error {
	s, err := openSession()
	if err != nil {
		return friendly(err)
	}

	w, err := s.ActiveWallet()
	if err != nil {
		return friendly(err)
	}
	activeAccount, _ := s.ActiveAccount()

	for _, a := range w.Accounts {
		marker := "  "
		if a.Address == activeAccount.Address {
			marker = "* "
		}
		kind := a.DerivationPath
		if kind == "" {
			kind = "imported"
		}
		fmt.Printf("%s%s  %-20s %s\n", marker, a.Address, a.Name, kind)
	}
	return nil
}

func rmAccountAction(ctx *cli.Context) error {
	s, err := openSession()
	if err != nil {
		return friendly(err)
	}

	a, err := s.ActiveAccount()
	if err != nil {
		return friendly(err)
	}
	if !Confirm(fmt.Sprintf("Delete account %s (%s)?", a.Name, a.Address)) {
		return nil
	}

	if err := newRegistry(s).DeleteActiveAccount(); err != nil {
		return friendly(err)
	}
	fmt.Println("Account deleted")
	return nil
}

func rmWalletAction(ctx *cli.Context) error {
	s, err := openSession()
	if err != nil {
		return friendly(err)
	}

	w, err := s.ActiveWallet()
	if err != nil {
		return friendly(err)
	}
	if !Confirm(fmt.Sprintf("Delete wallet %q and its %d accounts?", w.Name, len(w.Accounts))) {
		return nil
	}

	if err := newRegistry(s).DeleteActiveWallet(); err != nil {
		return friendly(err)
	}
	fmt.Println("Wallet deleted")
	return nil
}
