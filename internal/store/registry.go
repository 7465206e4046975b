package store

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

func defaultWalletID() string {
	return uuid.NewString()
}

// AccountDeriver is the contract for the mnemonic and key-math
// collaborator. The store never performs key derivation itself.
type AccountDeriver interface {
	// NewMnemonic generates a fresh BIP-39 phrase
	NewMnemonic() (string, error)
	// ValidMnemonic reports whether a phrase passes checksum validation
	ValidMnemonic(mnemonic string) bool
	// DeriveAccount derives the account at index from a mnemonic,
	// returning its canonical address and derivation path
	DeriveAccount(mnemonic string, index uint32) (address, path string, err error)
	// AddressFromPrivateKey validates a raw hex key and resolves its
	// address; fails on malformed input
	AddressFromPrivateKey(hexKey string) (string, error)
	// ParsePathIndex extracts the account index from a derivation path
	ParsePathIndex(path string) (uint32, error)
	// DecryptKeystore recovers the raw hex key from password-protected
	// keystore JSON
	DecryptKeystore(keystoreJSON []byte, password string) (string, error)
}

// WalletIDGenerator assigns wallet ids; overridable in tests
type WalletIDGenerator func() string

// Registry exposes the wallet/account operations on top of an unlocked
// session. Every mutation ends in a save.
type Registry struct {
	sess    *Session
	deriver AccountDeriver
	newID   WalletIDGenerator
}

// NewRegistry binds a registry to an unlocked session and a deriver
func NewRegistry(s *Session, d AccountDeriver) *Registry {
	return &Registry{sess: s, deriver: d, newID: defaultWalletID}
}

// eagerImportAccounts is how many accounts are derived up front when a
// mnemonic is imported
const eagerImportAccounts = 10

const minMnemonicWords = 12

// CreateHDWallet generates a fresh mnemonic, derives its first account
// and appends a new active hd wallet. The mnemonic is returned exactly
// once, for user backup; it is never displayed again.
func (r *Registry) CreateHDWallet(name string) (string, error) {
	if err := r.sess.ensureUnlocked(); err != nil {
		return "", err
	}

	mnemonic, err := r.deriver.NewMnemonic()
	if err != nil {
		return "", fmt.Errorf("failed to generate mnemonic: %w", err)
	}

	if _, err := r.appendHDWallet(name, mnemonic, 1); err != nil {
		return "", err
	}
	return mnemonic, nil
}

// ImportMnemonic validates and imports an existing phrase, eagerly
// deriving its first ten accounts, and activates the new wallet.
func (r *Registry) ImportMnemonic(name, mnemonic string) (Wallet, error) {
	if err := r.sess.ensureUnlocked(); err != nil {
		return Wallet{}, err
	}

	words := strings.Fields(mnemonic)
	if len(words) < minMnemonicWords {
		return Wallet{}, ErrInvalidMnemonic
	}
	normalized := strings.Join(words, " ")
	if !r.deriver.ValidMnemonic(normalized) {
		return Wallet{}, ErrInvalidMnemonic
	}

	return r.appendHDWallet(name, normalized, eagerImportAccounts)
}

// appendHDWallet derives accounts 0..count-1, appends the wallet and
// points both active pointers at it.
func (r *Registry) appendHDWallet(name, mnemonic string, count int) (Wallet, error) {
	accounts := make([]Account, 0, count)
	for i := 0; i < count; i++ {
		address, path, err := r.deriver.DeriveAccount(mnemonic, uint32(i))
		if err != nil {
			return Wallet{}, fmt.Errorf("failed to derive account %d: %w", i, err)
		}
		accounts = append(accounts, Account{
			Address:        address,
			Name:           fmt.Sprintf("Account %d", i+1),
			DerivationPath: path,
		})
	}

	w := Wallet{
		ID:       r.newID(),
		Name:     name,
		Type:     WalletTypeHD,
		Mnemonic: mnemonic,
		Accounts: accounts,
	}

	doc := r.sess.doc
	doc.Wallets = append(doc.Wallets, w)
	doc.ActiveWalletID = w.ID
	doc.ActiveAccountAddress = w.Accounts[0].Address
	if err := r.sess.save(); err != nil {
		return Wallet{}, err
	}
	return w, nil
}

// DeriveNewAccount derives the next sequential account for an hd
// wallet and activates it. Indices are monotonic: the next index is one
// past the highest ever derived, so an index freed by deletion is never
// handed out again.
func (r *Registry) DeriveNewAccount(walletID string) (Account, error) {
	if err := r.sess.ensureUnlocked(); err != nil {
		return Account{}, err
	}

	w := r.sess.doc.Wallet(walletID)
	if w == nil {
		return Account{}, ErrWalletNotFound
	}
	if w.Type != WalletTypeHD || w.Mnemonic == "" {
		return Account{}, ErrNotHDWallet
	}

	index := r.nextDerivationIndex(w)
	address, path, err := r.deriver.DeriveAccount(w.Mnemonic, index)
	if err != nil {
		return Account{}, fmt.Errorf("failed to derive account %d: %w", index, err)
	}

	account := Account{
		Address:        address,
		Name:           fmt.Sprintf("Account %d", index+1),
		DerivationPath: path,
	}
	w.Accounts = append(w.Accounts, account)

	doc := r.sess.doc
	doc.ActiveWalletID = w.ID
	doc.ActiveAccountAddress = account.Address
	if err := r.sess.save(); err != nil {
		return Account{}, err
	}
	return account, nil
}

func (r *Registry) nextDerivationIndex(w *Wallet) uint32 {
	next := uint32(0)
	for i := range w.Accounts {
		if w.Accounts[i].DerivationPath == "" {
			continue
		}
		idx, err := r.deriver.ParsePathIndex(w.Accounts[i].DerivationPath)
		if err != nil {
			continue
		}
		if idx+1 > next {
			next = idx + 1
		}
	}
	return next
}

// ImportPrivateKey appends a standalone imported key to an existing
// wallet and activates it. The raw key is stored verbatim; the whole
// document envelope is its only encryption layer.
func (r *Registry) ImportPrivateKey(name, rawKey, walletID string) (Account, error) {
	if err := r.sess.ensureUnlocked(); err != nil {
		return Account{}, err
	}

	w := r.sess.doc.Wallet(walletID)
	if w == nil {
		return Account{}, ErrWalletNotFound
	}

	address, err := r.deriver.AddressFromPrivateKey(rawKey)
	if err != nil {
		return Account{}, err
	}

	account := Account{
		Address:    address,
		Name:       name,
		PrivateKey: rawKey,
	}
	w.Accounts = append(w.Accounts, account)

	doc := r.sess.doc
	doc.ActiveWalletID = w.ID
	doc.ActiveAccountAddress = account.Address
	if err := r.sess.save(); err != nil {
		return Account{}, err
	}
	return account, nil
}

// ImportKeystore decrypts a password-protected keystore document through
// the collaborator and funnels the recovered key through
// ImportPrivateKey.
func (r *Registry) ImportKeystore(name string, keystoreJSON []byte, keystorePassword, walletID string) (Account, error) {
	if err := r.sess.ensureUnlocked(); err != nil {
		return Account{}, err
	}

	rawKey, err := r.deriver.DecryptKeystore(keystoreJSON, keystorePassword)
	if err != nil {
		return Account{}, fmt.Errorf("failed to decrypt keystore: %w", err)
	}
	return r.ImportPrivateKey(name, rawKey, walletID)
}

// DeleteActiveAccount removes the active account from the active wallet
// and re-targets the account pointer to the wallet's first remaining
// account, or unsets it.
func (r *Registry) DeleteActiveAccount() error {
	if err := r.sess.ensureUnlocked(); err != nil {
		return err
	}

	doc := r.sess.doc
	if doc.ActiveWalletID == "" {
		return ErrNoActiveWallet
	}
	if doc.ActiveAccountAddress == "" {
		return ErrNoActiveAccount
	}

	w := doc.Wallet(doc.ActiveWalletID)
	if w == nil {
		return ErrNoActiveWallet
	}
	if !w.removeAccount(doc.ActiveAccountAddress) {
		return ErrAccountNotFound
	}

	doc.ActiveAccountAddress = ""
	doc.repairActive()
	return r.sess.save()
}

// DeleteActiveWallet removes the active wallet entirely and re-targets
// both wallet and account pointers to the first remaining wallet, or
// unsets them.
func (r *Registry) DeleteActiveWallet() error {
	if err := r.sess.ensureUnlocked(); err != nil {
		return err
	}

	doc := r.sess.doc
	if doc.ActiveWalletID == "" {
		return ErrNoActiveWallet
	}
	if !doc.removeWallet(doc.ActiveWalletID) {
		return ErrWalletNotFound
	}

	doc.ActiveWalletID = ""
	doc.ActiveAccountAddress = ""
	doc.repairActive()
	return r.sess.save()
}

// SigningIdentity is the key source resolved for the active account:
// either the imported raw key, or the material to re-derive it.
type SigningIdentity interface {
	signingIdentity()
}

// RawKeyIdentity wraps an imported raw private key
type RawKeyIdentity struct {
	Key string
}

// DerivedIdentity describes a key re-derivable from a wallet seed
type DerivedIdentity struct {
	Mnemonic string
	Index    uint32
}

func (RawKeyIdentity) signingIdentity()  {}
func (DerivedIdentity) signingIdentity() {}

// ResolveSigningIdentity resolves the active wallet+account to a
// signing key source. A raw key wins over derivation; an account with
// neither source violates the document invariants and surfaces as
// ErrInvalidAccountState.
func (r *Registry) ResolveSigningIdentity() (SigningIdentity, error) {
	if err := r.sess.ensureUnlocked(); err != nil {
		return nil, err
	}

	w, err := r.sess.ActiveWallet()
	if err != nil {
		return nil, err
	}
	a, err := r.sess.ActiveAccount()
	if err != nil {
		return nil, err
	}

	if a.PrivateKey != "" {
		return RawKeyIdentity{Key: a.PrivateKey}, nil
	}

	if w.Type == WalletTypeHD && w.Mnemonic != "" && a.DerivationPath != "" {
		index, err := r.deriver.ParsePathIndex(a.DerivationPath)
		if err != nil {
			return nil, ErrInvalidAccountState
		}
		return DerivedIdentity{Mnemonic: w.Mnemonic, Index: index}, nil
	}

	return nil, ErrInvalidAccountState
}
