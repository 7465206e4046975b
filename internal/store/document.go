package store

import (
	"strings"
)

// WalletType distinguishes seed-backed wallets from collections of
// independently imported keys.
type WalletType string

const (
	WalletTypeHD     WalletType = "hd"
	WalletTypeSimple WalletType = "simple"
)

// Built-in network ids. These two networks exist in every document and
// cannot be deleted; Sepolia is the primary (the fallback for the active
// network pointer).
const (
	NetworkSepolia = "sepolia"
	NetworkMainnet = "mainnet"
)

// Account is one spendable identity. Exactly one key source must hold:
// either DerivationPath is set and the parent wallet carries a mnemonic,
// or PrivateKey holds an imported raw key.
type Account struct {
	Address        string `json:"address"`
	Name           string `json:"name"`
	DerivationPath string `json:"derivationPath,omitempty"`
	PrivateKey     string `json:"privateKey,omitempty"`
}

// Wallet is a named container of accounts. An hd wallet always carries a
// non-empty mnemonic; a simple wallet never does.
type Wallet struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Type     WalletType `json:"type"`
	Mnemonic string     `json:"mnemonic,omitempty"`
	Accounts []Account  `json:"accounts"`
}

// Network describes one chain endpoint
type Network struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	RPCURL      string `json:"rpcUrl"`
	ChainID     uint64 `json:"chainId"`
	Symbol      string `json:"symbol"`
	ExplorerURL string `json:"explorerUrl,omitempty"`
}

// Token is a tracked ERC-20 contract, unique per
// (lowercased address, chainId).
type Token struct {
	Address  string `json:"address"`
	ChainID  uint64 `json:"chainId"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
	Name     string `json:"name,omitempty"`
}

// Document is the root aggregate held in memory by an unlocked session
// and serialized (encrypted) as a whole on every mutation.
type Document struct {
	Wallets              []Wallet  `json:"wallets"`
	Networks             []Network `json:"networks"`
	Tokens               []Token   `json:"tokens"`
	ActiveWalletID       string    `json:"activeWalletId,omitempty"`
	ActiveAccountAddress string    `json:"activeAccountAddress,omitempty"`
	ActiveNetworkID      string    `json:"activeNetworkId,omitempty"`
}

// DefaultNetworks returns the two built-in networks, primary first
func DefaultNetworks() []Network {
	return []Network{
		{
			ID:          NetworkSepolia,
			Name:        "Sepolia",
			RPCURL:      "https://ethereum-sepolia-rpc.publicnode.com",
			ChainID:     11155111,
			Symbol:      "ETH",
			ExplorerURL: "https://sepolia.etherscan.io",
		},
		{
			ID:          NetworkMainnet,
			Name:        "Ethereum",
			RPCURL:      "https://ethereum-rpc.publicnode.com",
			ChainID:     1,
			Symbol:      "ETH",
			ExplorerURL: "https://etherscan.io",
		},
	}
}

// NewDocument creates the document written on first unlock: no wallets,
// no tokens, the built-in networks, Sepolia active.
func NewDocument() *Document {
	return &Document{
		Wallets:         make([]Wallet, 0),
		Networks:        DefaultNetworks(),
		Tokens:          make([]Token, 0),
		ActiveNetworkID: NetworkSepolia,
	}
}

func isBuiltinNetwork(id string) bool {
	return id == NetworkSepolia || id == NetworkMainnet
}

// Wallet finds a wallet by id
func (d *Document) Wallet(id string) *Wallet {
	for i := range d.Wallets {
		if d.Wallets[i].ID == id {
			return &d.Wallets[i]
		}
	}
	return nil
}

// Network finds a network by id
func (d *Document) Network(id string) *Network {
	for i := range d.Networks {
		if d.Networks[i].ID == id {
			return &d.Networks[i]
		}
	}
	return nil
}

// Account finds an account by address. Addresses are compared
// case-insensitively; the stored form is canonical.
func (w *Wallet) Account(address string) *Account {
	for i := range w.Accounts {
		if strings.EqualFold(w.Accounts[i].Address, address) {
			return &w.Accounts[i]
		}
	}
	return nil
}

func (w *Wallet) removeAccount(address string) bool {
	for i := range w.Accounts {
		if strings.EqualFold(w.Accounts[i].Address, address) {
			w.Accounts = append(w.Accounts[:i], w.Accounts[i+1:]...)
			return true
		}
	}
	return false
}

func (d *Document) removeWallet(id string) bool {
	for i := range d.Wallets {
		if d.Wallets[i].ID == id {
			d.Wallets = append(d.Wallets[:i], d.Wallets[i+1:]...)
			return true
		}
	}
	return false
}

func (d *Document) findToken(address string, chainID uint64) *Token {
	for i := range d.Tokens {
		if d.Tokens[i].ChainID == chainID &&
			strings.EqualFold(d.Tokens[i].Address, address) {
			return &d.Tokens[i]
		}
	}
	return nil
}

// repairActive restores the active-pointer invariants after a mutation:
// each pointer either references an existing entity of the correct
// relationship or is unset. A dangling wallet pointer falls back to the
// first remaining wallet, the account pointer to the active wallet's
// first account, the network pointer to the primary built-in.
func (d *Document) repairActive() {
	if d.Wallet(d.ActiveWalletID) == nil {
		if len(d.Wallets) > 0 {
			d.ActiveWalletID = d.Wallets[0].ID
		} else {
			d.ActiveWalletID = ""
		}
	}

	if d.ActiveWalletID == "" {
		d.ActiveAccountAddress = ""
	} else {
		w := d.Wallet(d.ActiveWalletID)
		if w.Account(d.ActiveAccountAddress) == nil {
			if len(w.Accounts) > 0 {
				d.ActiveAccountAddress = w.Accounts[0].Address
			} else {
				d.ActiveAccountAddress = ""
			}
		}
	}

	if d.Network(d.ActiveNetworkID) == nil {
		d.ActiveNetworkID = NetworkSepolia
	}
}
