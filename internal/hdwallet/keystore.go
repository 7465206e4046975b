package hdwallet

import (
	"crypto/ecdsa"
	"fmt"

	ethkeystore "github.com/ethereum/go-ethereum/accounts/keystore"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
)

// DecryptKeystore recovers the bare hex private key from a
// password-protected keystore v3 document
func (d *Deriver) DecryptKeystore(keystoreJSON []byte, password string) (string, error) {
	key, err := ethkeystore.DecryptKey(keystoreJSON, password)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt keystore: %w", err)
	}
	return HexFromPrivateKey(key.PrivateKey), nil
}

// EncryptKeystore seals a signing key into a keystore v3 document
// under the given password, using the standard scrypt parameters
func EncryptKeystore(key *ecdsa.PrivateKey, password string) ([]byte, error) {
	ksKey := &ethkeystore.Key{
		Id:         uuid.New(),
		Address:    ethcrypto.PubkeyToAddress(key.PublicKey),
		PrivateKey: key,
	}
	return ethkeystore.EncryptKey(ksKey, password, ethkeystore.StandardScryptN, ethkeystore.StandardScryptP)
}
