package store

import "errors"

var (
	// ErrStoreLocked is returned when an operation is attempted without an
	// unlocked session
	ErrStoreLocked = errors.New("store is locked")
	// ErrIncorrectPassword is returned when the envelope fails
	// authentication under the derived key
	ErrIncorrectPassword = errors.New("incorrect password")
	// ErrCorruptedDocument is returned when the store file matches neither
	// the envelope nor the legacy plaintext shape
	ErrCorruptedDocument = errors.New("store file is corrupted")

	// ErrWalletNotFound ...
	ErrWalletNotFound = errors.New("wallet not found")
	// ErrAccountNotFound ...
	ErrAccountNotFound = errors.New("account not found")
	// ErrNetworkNotFound ...
	ErrNetworkNotFound = errors.New("network not found")
	// ErrNetworkAlreadyExists ...
	ErrNetworkAlreadyExists = errors.New("network already exists")
	// ErrTokenAlreadyExists ...
	ErrTokenAlreadyExists = errors.New("token already tracked for this chain")
	// ErrInvalidMnemonic ...
	ErrInvalidMnemonic = errors.New("invalid mnemonic phrase")
	// ErrCannotDeleteDefaultNetwork ...
	ErrCannotDeleteDefaultNetwork = errors.New("built-in networks cannot be deleted")
	// ErrNotHDWallet is returned when deriving from a wallet that carries
	// no seed
	ErrNotHDWallet = errors.New("wallet has no seed to derive from")
	// ErrNoActiveWallet ...
	ErrNoActiveWallet = errors.New("no active wallet")
	// ErrNoActiveAccount ...
	ErrNoActiveAccount = errors.New("no active account")
	// ErrInvalidAccountState indicates an account with neither a raw key
	// nor a usable derivation path; a broken invariant, returned instead
	// of panicking
	ErrInvalidAccountState = errors.New("account has no key source")
)
