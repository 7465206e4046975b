package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/vaultd/vaultd/internal/crypto"
	"github.com/vaultd/vaultd/internal/hdwallet"
	"github.com/vaultd/vaultd/internal/store"
)

var importKey = &cli.Command{
	Name:  "import-key",
	Usage: "import a raw private key into a wallet",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "name", Value: "Imported", Usage: "display name for the account"},
		&cli.StringFlag{Name: "wallet", Usage: "wallet id (defaults to the active wallet)"},
	},
	Action: importKeyAction,
}

var importKeystore = &cli.Command{
	Name:  "import-keystore",
	Usage: "import an account from a keystore v3 file",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "file", Required: true, Usage: "path to the keystore JSON file"},
		&cli.StringFlag{Name: "name", Value: "Imported", Usage: "display name for the account"},
		&cli.StringFlag{Name: "wallet", Usage: "wallet id (defaults to the active wallet)"},
	},
	Action: importKeystoreAction,
}

var exportKey = &cli.Command{
	Name:   "export-key",
	Usage:  "print the private key of the active account",
	Action: exportKeyAction,
}

var exportKeystore = &cli.Command{
	Name:  "export-keystore",
	Usage: "export the active account as a keystore v3 file",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "out", Required: true, Usage: "output file path"},
	},
	Action: exportKeystoreAction,
}

func targetWalletID(ctx *cli.Context, s *store.Session) (string, error) {
	if id := ctx.String("wallet"); id != "" {
		return id, nil
	}
	w, err := s.ActiveWallet()
	if err != nil {
		return "", err
	}
	return w.ID, nil
}

func importKeyAction(ctx *cli.Context) error {
	s, err := openSession()
	if err != nil {
		return friendly(err)
	}

	walletID, err := targetWalletID(ctx, s)
	if err != nil {
		return friendly(err)
	}

	rawKey, err := ReadPassword("Enter private key (hex): ")
	if err != nil {
		return friendly(err)
	}
	defer crypto.ClearBytes(rawKey)

	a, err := newRegistry(s).ImportPrivateKey(ctx.String("name"), string(rawKey), walletID)
	if err != nil {
		return friendly(err)
	}
	fmt.Printf("Imported account %s\n", a.Address)
	return nil
}

func importKeystoreAction(ctx *cli.Context) error {
	s, err := openSession()
	if err != nil {
		return friendly(err)
	}

	walletID, err := targetWalletID(ctx, s)
	if err != nil {
		return friendly(err)
	}

	blob, err := os.ReadFile(ctx.String("file"))
	if err != nil {
		return friendly(fmt.Errorf("failed to read keystore file: %w", err))
	}

	ksPassword, err := ReadPassword("Enter keystore password: ")
	if err != nil {
		return friendly(err)
	}
	defer crypto.ClearBytes(ksPassword)

	a, err := newRegistry(s).ImportKeystore(ctx.String("name"), blob, string(ksPassword), walletID)
	if err != nil {
		return friendly(err)
	}
	fmt.Printf("Imported account %s\n", a.Address)
	return nil
}

func exportKeyAction(ctx *cli.Context) error {
	s, err := openSession()
	if err != nil {
		return friendly(err)
	}

	a, err := s.ActiveAccount()
	if err != nil {
		return friendly(err)
	}
	if !Confirm(fmt.Sprintf("Print the private key of %s to this terminal?", a.Address)) {
		return nil
	}

	deriver := hdwallet.NewDeriver()
	identity, err := store.NewRegistry(s, deriver).ResolveSigningIdentity()
	if err != nil {
		return friendly(err)
	}
	key, err := deriver.PrivateKeyForIdentity(identity)
	if err != nil {
		return friendly(err)
	}

	fmt.Println(hdwallet.HexFromPrivateKey(key))
	return nil
}

func exportKeystoreAction(ctx *cli.Context) error {
	s, err := openSession()
	if err != nil {
		return friendly(err)
	}

	deriver := hdwallet.NewDeriver()
	identity, err := store.NewRegistry(s, deriver).ResolveSigningIdentity()
	if err != nil {
		return friendly(err)
	}
	key, err := deriver.PrivateKeyForIdentity(identity)
	if err != nil {
		return friendly(err)
	}

	ksPassword, err := ReadNewPassword()
	if err != nil {
		return friendly(err)
	}
	defer crypto.ClearBytes(ksPassword)

	blob, err := hdwallet.EncryptKeystore(key, string(ksPassword))
	if err != nil {
		return friendly(err)
	}

	out := ctx.String("out")
	if err := os.WriteFile(out, blob, store.FilePermSecure); err != nil {
		return friendly(fmt.Errorf("failed to write keystore file: %w", err))
	}
	fmt.Printf("Keystore written to %s\n", out)
	return nil
}
