// Package hdwallet implements BIP-39/BIP-44 key derivation for
// Ethereum-style accounts, plus keystore v3 import and export. It is
// the key-math collaborator behind the wallet registry: mnemonics in,
// addresses and signing keys out.
package hdwallet
