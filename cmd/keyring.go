package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/vaultd/vaultd/internal/config"
	"github.com/vaultd/vaultd/internal/crypto"
	"github.com/vaultd/vaultd/internal/keyring"
	"github.com/vaultd/vaultd/internal/store"
)

var keyringCmd = &cli.Command{
	Name:  "keyring",
	Usage: "manage the store password in the OS keyring",
	Subcommands: []*cli.Command{
		{
			Name:   "save",
			Usage:  "save the store password to the OS keyring",
			Action: keyringSaveAction,
		},
		{
			Name:   "rm",
			Usage:  "remove the store password from the OS keyring",
			Action: keyringRmAction,
		},
		{
			Name:   "status",
			Usage:  "check whether a password is saved",
			Action: keyringStatusAction,
		},
	},
}

func keyringSaveAction(ctx *cli.Context) error {
	path := config.GetStorePath()

	password, err := ReadPassword("Enter password: ")
	if err != nil {
		return friendly(err)
	}
	defer crypto.ClearBytes(password)

	// verify before saving: a wrong password in the keyring would lock
	// the user out of every later command
	if _, err := store.Unlock(path, password); err != nil {
		return friendly(err)
	}

	if err := keyring.SavePassword(path, string(password)); err != nil {
		return friendly(fmt.Errorf("failed to save to keyring: %w", err))
	}
	fmt.Println("Password saved to keyring")
	return nil
}

func keyringRmAction(ctx *cli.Context) error {
	path := config.GetStorePath()

	if !keyring.HasPassword(path) {
		fmt.Println("No password saved in keyring")
		return nil
	}
	if err := keyring.DeletePassword(path); err != nil {
		return friendly(fmt.Errorf("failed to remove from keyring: %w", err))
	}
	fmt.Println("Password removed from keyring")
	return nil
}

func keyringStatusAction(ctx *cli.Context) error {
	if keyring.HasPassword(config.GetStorePath()) {
		fmt.Println("Password saved in keyring")
	} else {
		fmt.Println("No password saved in keyring")
	}
	return nil
}
