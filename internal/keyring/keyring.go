package keyring

import (
	"github.com/zalando/go-keyring"
)

const serviceName = "vaultd"

// SavePassword stores a store password in the OS keyring, keyed by the
// store file path
func SavePassword(storePath string, password string) error {
	return keyring.Set(serviceName, storePath, password)
}

// GetPassword retrieves a store password from the OS keyring
func GetPassword(storePath string) (string, error) {
	return keyring.Get(serviceName, storePath)
}

// DeletePassword removes a store password from the OS keyring
func DeletePassword(storePath string) error {
	return keyring.Delete(serviceName, storePath)
}

// HasPassword checks if a password is stored in the keyring
func HasPassword(storePath string) bool {
	_, err := keyring.Get(serviceName, storePath)
	return err == nil
}
