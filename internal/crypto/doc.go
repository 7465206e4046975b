// Package crypto provides cryptographic operations for vaultd.
//
// Encryption uses AES-256-GCM with:
//   - 32-byte key derived from password via scrypt
//   - 12-byte random nonce generated per encryption operation
//   - 16-byte authentication tag kept as a separate envelope field
//
// Key derivation uses scrypt with:
//   - 16-byte random salt (stored unencrypted next to the envelope)
//   - N=32768, r=8, p=1
//
// Memory safety:
//   - Use ClearBytes() to zero sensitive data after use
//   - Call Encryptor.Destroy() when done with encryption operations
package crypto
