package hdwallet

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/vulpemventures/go-bip39"

	"github.com/vaultd/vaultd/internal/store"
)

const mnemonicEntropySize = 128

// Deriver derives Ethereum accounts from BIP-39 mnemonics along the
// standard m/44'/60'/0'/0 tree. It satisfies store.AccountDeriver.
type Deriver struct {
	basePath DerivationPath
}

// NewDeriver returns a deriver rooted at the default Ethereum base
// path
func NewDeriver() *Deriver {
	return &Deriver{basePath: DefaultBaseDerivationPath}
}

// NewMnemonic generates a fresh 12-word BIP-39 phrase
func (d *Deriver) NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(mnemonicEntropySize)
	if err != nil {
		return "", fmt.Errorf("failed to generate entropy: %w", err)
	}
	return bip39.NewMnemonic(entropy)
}

// ValidMnemonic reports whether the phrase passes BIP-39 checksum
// validation
func (d *Deriver) ValidMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(mnemonic)
}

// DeriveAccount derives the account at index, returning its
// checksummed address and canonical path string
func (d *Deriver) DeriveAccount(mnemonic string, index uint32) (string, string, error) {
	key, path, err := d.deriveKey(mnemonic, index)
	if err != nil {
		return "", "", err
	}
	return ethcrypto.PubkeyToAddress(key.PublicKey).Hex(), path.String(), nil
}

// AddressFromPrivateKey resolves the checksummed address of a raw hex
// key, rejecting malformed input
func (d *Deriver) AddressFromPrivateKey(hexKey string) (string, error) {
	key, err := ethcrypto.HexToECDSA(strip0x(hexKey))
	if err != nil {
		return "", fmt.Errorf("invalid private key: %w", err)
	}
	return ethcrypto.PubkeyToAddress(key.PublicKey).Hex(), nil
}

// ParsePathIndex extracts the account index from a derivation path
// string
func (d *Deriver) ParsePathIndex(strPath string) (uint32, error) {
	path, err := ParseDerivationPath(strPath)
	if err != nil {
		return 0, err
	}
	return path.AccountIndex()
}

// PrivateKeyForIdentity materializes the signing key behind a resolved
// identity. Callers own the returned key and should discard it as soon
// as the signature is made.
func (d *Deriver) PrivateKeyForIdentity(id store.SigningIdentity) (*ecdsa.PrivateKey, error) {
	switch v := id.(type) {
	case store.RawKeyIdentity:
		key, err := ethcrypto.HexToECDSA(strip0x(v.Key))
		if err != nil {
			return nil, fmt.Errorf("invalid private key: %w", err)
		}
		return key, nil
	case store.DerivedIdentity:
		key, _, err := d.deriveKey(v.Mnemonic, v.Index)
		return key, err
	default:
		return nil, fmt.Errorf("unknown signing identity %T", id)
	}
}

func (d *Deriver) deriveKey(mnemonic string, index uint32) (*ecdsa.PrivateKey, DerivationPath, error) {
	seed := bip39.NewSeed(mnemonic, "")
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to derive master key: %w", err)
	}

	path := d.basePath.Extend(index)
	key := master
	for _, component := range path {
		key, err = key.Derive(component)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to derive %s: %w", path, err)
		}
	}

	privKey, err := key.ECPrivKey()
	if err != nil {
		return nil, nil, err
	}
	return privKey.ToECDSA(), path, nil
}

// HexFromPrivateKey renders an ECDSA key as the bare hex form stored
// in account documents
func HexFromPrivateKey(key *ecdsa.PrivateKey) string {
	return hex.EncodeToString(ethcrypto.FromECDSA(key))
}

func strip0x(s string) string {
	return strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
}
