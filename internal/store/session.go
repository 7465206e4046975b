package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/vaultd/vaultd/internal/crypto"
)

// Session is the unlocked handle to the store. It is only ever
// constructed by a successful Unlock, holds the derived key, the salt it
// was derived with and the decrypted document for the rest of the
// process lifetime, and re-encrypts and persists the whole document
// after every mutation. There is no re-lock operation.
//
// A Session has no internal locking; callers must serialize operations.
type Session struct {
	path string
	key  []byte
	salt []byte
	doc  *Document
}

// Unlock establishes a session against the store file at path. Three
// on-disk states are recognized:
//
//   - no file: a fresh default document is created, sealed under a key
//     derived from the supplied password with a new salt, and persisted
//   - encrypted envelope: the salt is read from the file, the key
//     derived, and the envelope decoded; an authentication failure
//     surfaces as ErrIncorrectPassword and no session is returned
//   - legacy plaintext: the document is adopted as-is and immediately
//     re-persisted under the encrypted envelope (one-way upgrade; a
//     plaintext file carries no authenticator, so any password is
//     accepted here and becomes the store password)
//
// After a successful decode, absent networks/tokens fields from older
// schemas are populated with defaults and re-persisted. This migration
// is idempotent.
func Unlock(path string, password []byte) (*Session, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return createStore(path, password)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store: %w", err)
	}

	envf, legacy, err := parseStoreFile(raw)
	if err != nil {
		return nil, err
	}

	if legacy != nil {
		return upgradeLegacyStore(path, password, legacy)
	}

	salt, env, err := envf.decode()
	if err != nil {
		return nil, err
	}

	key, err := crypto.DeriveKey(password, salt)
	if err != nil {
		return nil, err
	}

	plaintext, err := crypto.NewEncryptor(key).Decrypt(env)
	if err != nil {
		crypto.ClearBytes(key)
		return nil, ErrIncorrectPassword
	}

	var doc Document
	if err := json.Unmarshal(plaintext, &doc); err != nil {
		crypto.ClearBytes(key)
		crypto.ClearBytes(plaintext)
		return nil, ErrCorruptedDocument
	}
	crypto.ClearBytes(plaintext)

	s := &Session{path: path, key: key, salt: salt, doc: &doc}
	if migrateDocument(&doc) {
		if err := s.save(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// createStore handles first unlock with no existing file
func createStore(path string, password []byte) (*Session, error) {
	salt, err := crypto.GenerateSalt()
	if err != nil {
		return nil, err
	}
	key, err := crypto.DeriveKey(password, salt)
	if err != nil {
		return nil, err
	}

	s := &Session{path: path, key: key, salt: salt, doc: NewDocument()}
	if err := s.save(); err != nil {
		return nil, err
	}
	return s, nil
}

// upgradeLegacyStore seals a plaintext-era document under the supplied
// password. The plaintext contents are adopted without verification;
// there is nothing to authenticate against.
func upgradeLegacyStore(path string, password []byte, doc *Document) (*Session, error) {
	migrateDocument(doc)

	salt, err := crypto.GenerateSalt()
	if err != nil {
		return nil, err
	}
	key, err := crypto.DeriveKey(password, salt)
	if err != nil {
		return nil, err
	}

	s := &Session{path: path, key: key, salt: salt, doc: doc}
	if err := s.save(); err != nil {
		return nil, err
	}
	return s, nil
}

// migrateDocument fills fields absent from older schemas. Returns true
// if anything changed and the document needs re-persisting.
func migrateDocument(doc *Document) bool {
	changed := false
	if doc.Networks == nil {
		doc.Networks = DefaultNetworks()
		changed = true
	}
	if doc.Tokens == nil {
		doc.Tokens = make([]Token, 0)
		changed = true
	}
	if doc.Wallets == nil {
		doc.Wallets = make([]Wallet, 0)
		changed = true
	}
	if doc.Network(doc.ActiveNetworkID) == nil {
		doc.ActiveNetworkID = NetworkSepolia
		changed = true
	}
	return changed
}

func (s *Session) ensureUnlocked() error {
	if s == nil || s.key == nil || s.doc == nil {
		return ErrStoreLocked
	}
	return nil
}

// save re-encrypts the whole document and atomically rewrites the file
func (s *Session) save() error {
	if err := s.ensureUnlocked(); err != nil {
		return err
	}

	plaintext, err := json.Marshal(s.doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	env, err := crypto.NewEncryptor(s.key).Encrypt(plaintext)
	crypto.ClearBytes(plaintext)
	if err != nil {
		return fmt.Errorf("failed to encrypt document: %w", err)
	}

	raw, err := encodeEnvelopeFile(s.salt, env)
	if err != nil {
		return fmt.Errorf("failed to encode envelope: %w", err)
	}

	return atomicWrite(s.path, raw)
}

// ChangePassword re-derives the key from a fresh salt and re-seals the
// document under the new password.
func (s *Session) ChangePassword(newPassword []byte) error {
	if err := s.ensureUnlocked(); err != nil {
		return err
	}

	salt, err := crypto.GenerateSalt()
	if err != nil {
		return err
	}
	key, err := crypto.DeriveKey(newPassword, salt)
	if err != nil {
		return err
	}

	oldKey, oldSalt := s.key, s.salt
	s.key, s.salt = key, salt
	if err := s.save(); err != nil {
		s.key, s.salt = oldKey, oldSalt
		crypto.ClearBytes(key)
		return err
	}
	crypto.ClearBytes(oldKey)
	return nil
}

// Path returns the backing file path
func (s *Session) Path() string {
	return s.path
}

// Wallets returns a copy of all wallets
func (s *Session) Wallets() ([]Wallet, error) {
	if err := s.ensureUnlocked(); err != nil {
		return nil, err
	}
	out := make([]Wallet, len(s.doc.Wallets))
	copy(out, s.doc.Wallets)
	return out, nil
}

// ActiveWallet returns the wallet the active pointer references
func (s *Session) ActiveWallet() (Wallet, error) {
	if err := s.ensureUnlocked(); err != nil {
		return Wallet{}, err
	}
	if s.doc.ActiveWalletID == "" {
		return Wallet{}, ErrNoActiveWallet
	}
	w := s.doc.Wallet(s.doc.ActiveWalletID)
	if w == nil {
		return Wallet{}, ErrNoActiveWallet
	}
	return *w, nil
}

// ActiveAccount returns the account the active pointer references
func (s *Session) ActiveAccount() (Account, error) {
	w, err := s.ActiveWallet()
	if err != nil {
		return Account{}, err
	}
	if s.doc.ActiveAccountAddress == "" {
		return Account{}, ErrNoActiveAccount
	}
	a := w.Account(s.doc.ActiveAccountAddress)
	if a == nil {
		return Account{}, ErrNoActiveAccount
	}
	return *a, nil
}

// ActiveNetwork returns the network the active pointer references
func (s *Session) ActiveNetwork() (Network, error) {
	if err := s.ensureUnlocked(); err != nil {
		return Network{}, err
	}
	n := s.doc.Network(s.doc.ActiveNetworkID)
	if n == nil {
		return Network{}, ErrNetworkNotFound
	}
	return *n, nil
}

// SelectWallet moves the active wallet pointer. The active account is
// re-targeted to the wallet's first account, or unset if it has none.
func (s *Session) SelectWallet(id string) error {
	if err := s.ensureUnlocked(); err != nil {
		return err
	}
	w := s.doc.Wallet(id)
	if w == nil {
		return ErrWalletNotFound
	}
	s.doc.ActiveWalletID = w.ID
	s.doc.ActiveAccountAddress = ""
	s.doc.repairActive()
	return s.save()
}

// SelectAccount moves the active account pointer to an account of the
// active wallet.
func (s *Session) SelectAccount(address string) error {
	if err := s.ensureUnlocked(); err != nil {
		return err
	}
	if s.doc.ActiveWalletID == "" {
		return ErrNoActiveWallet
	}
	w := s.doc.Wallet(s.doc.ActiveWalletID)
	if w == nil {
		return ErrNoActiveWallet
	}
	a := w.Account(address)
	if a == nil {
		return ErrAccountNotFound
	}
	s.doc.ActiveAccountAddress = a.Address
	return s.save()
}

// SelectNetwork moves the active network pointer
func (s *Session) SelectNetwork(id string) error {
	if err := s.ensureUnlocked(); err != nil {
		return err
	}
	if s.doc.Network(id) == nil {
		return ErrNetworkNotFound
	}
	s.doc.ActiveNetworkID = id
	return s.save()
}
