// Package cmd implements the vaultd CLI commands on top of the store
// session, the hd deriver and the RPC client.
package cmd

import (
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/vaultd/vaultd/internal/config"
	"github.com/vaultd/vaultd/internal/crypto"
	"github.com/vaultd/vaultd/internal/hdwallet"
	"github.com/vaultd/vaultd/internal/keyring"
	"github.com/vaultd/vaultd/internal/store"
)

// Commands returns every top-level CLI command
func Commands() []*cli.Command {
	return []*cli.Command{
		createWallet,
		importMnemonic,
		derive,
		wallets,
		accounts,
		rmAccount,
		rmWallet,
		importKey,
		importKeystore,
		exportKey,
		exportKeystore,
		networks,
		tokens,
		use,
		status,
		balance,
		passwd,
		keyringCmd,
	}
}

// openSession resolves the store password and unlocks the store. The
// password comes from the environment, the OS keyring or an
// interactive prompt, in that order.
func openSession() (*store.Session, error) {
	path := config.GetStorePath()

	legacy, err := store.IsLegacyPlaintext(path)
	if err != nil {
		return nil, err
	}
	if legacy {
		fmt.Fprintln(os.Stderr, "The store file is currently unencrypted. It will be sealed with the password you choose now.")
		if !Confirm("Continue?") {
			return nil, errors.New("aborted")
		}
	}

	_, statErr := os.Stat(path)
	initializing := legacy || os.IsNotExist(statErr)

	password, err := resolvePassword(path, initializing)
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(password)

	s, err := store.Unlock(path, password)
	if err != nil {
		return nil, err
	}
	log.WithField("path", path).Debug("store unlocked")
	return s, nil
}

func resolvePassword(path string, initializing bool) ([]byte, error) {
	if env := config.GetString(config.PasswordKey); env != "" {
		return []byte(env), nil
	}
	if !initializing {
		if pw, err := keyring.GetPassword(path); err == nil {
			log.Debug("using password from OS keyring")
			return []byte(pw), nil
		}
	}
	if initializing {
		return ReadNewPassword()
	}
	return ReadPassword("Enter password: ")
}

func newRegistry(s *store.Session) *store.Registry {
	return store.NewRegistry(s, hdwallet.NewDeriver())
}

// friendly maps store errors to short actionable CLI messages; unknown
// errors pass through untouched.
func friendly(err error) error {
	if err == nil {
		return nil
	}

	for sentinel, msg := range map[error]string{
		store.ErrStoreLocked:                "the store is locked: unlock it first",
		store.ErrIncorrectPassword:          "incorrect password",
		store.ErrCorruptedDocument:          "the store file is corrupted or not a vaultd store",
		store.ErrWalletNotFound:             "wallet not found",
		store.ErrAccountNotFound:            "account not found",
		store.ErrNetworkNotFound:            "network not found",
		store.ErrTokenAlreadyExists:         "this token is already tracked on that network",
		store.ErrNetworkAlreadyExists:       "a network with this id already exists",
		store.ErrInvalidMnemonic:            "invalid recovery phrase",
		store.ErrCannotDeleteDefaultNetwork: "built-in networks cannot be removed",
		store.ErrNoActiveWallet:             "no active wallet: create or select one first",
		store.ErrNoActiveAccount:            "no active account: derive or select one first",
		store.ErrNotHDWallet:                "this wallet has no seed to derive from",
		store.ErrInvalidAccountState:        "the active account has no usable key material",
	} {
		if errors.Is(err, sentinel) {
			return cli.Exit(fmt.Sprintf("Error: %s", msg), 1)
		}
	}
	return cli.Exit(fmt.Sprintf("Error: %s", err), 1)
}
