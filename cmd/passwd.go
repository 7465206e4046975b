package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/vaultd/vaultd/internal/crypto"
	"github.com/vaultd/vaultd/internal/keyring"
)

var passwd = &cli.Command{
	Name:   "passwd",
	Usage:  "change the store password",
	Action: passwdAction,
}

func passwdAction(ctx *cli.Context) error {
	// unlocking verifies the current password
	s, err := openSession()
	if err != nil {
		return friendly(err)
	}

	newPassword, err := ReadNewPassword()
	if err != nil {
		return friendly(err)
	}
	defer crypto.ClearBytes(newPassword)

	if err := s.ChangePassword(newPassword); err != nil {
		return friendly(err)
	}

	// keep a saved keyring entry in sync with the new password
	if keyring.HasPassword(s.Path()) {
		if err := keyring.SavePassword(s.Path(), string(newPassword)); err != nil {
			fmt.Println("Password changed, but updating the OS keyring failed; run 'vaultd keyring save' again.")
			return nil
		}
	}

	fmt.Println("Password changed")
	return nil
}
