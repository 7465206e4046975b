package store

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vaultd/vaultd/internal/crypto"
)

const (
	DirPermSecure  = 0700 // Directory: owner rwx only
	FilePermSecure = 0600 // File: owner rw only
)

// envelopeFile is the encrypted on-disk shape: the cipher envelope plus
// the key-derivation salt and a format marker, all hex-encoded in a
// single JSON document.
type envelopeFile struct {
	Encrypted bool   `json:"encrypted"`
	Salt      string `json:"salt"`
	IV        string `json:"iv"`
	Tag       string `json:"tag"`
	Data      string `json:"data"`
}

func encodeEnvelopeFile(salt []byte, env *crypto.Envelope) ([]byte, error) {
	out := envelopeFile{
		Encrypted: true,
		Salt:      hex.EncodeToString(salt),
		IV:        hex.EncodeToString(env.IV),
		Tag:       hex.EncodeToString(env.Tag),
		Data:      hex.EncodeToString(env.Data),
	}
	return json.Marshal(out)
}

func (f *envelopeFile) decode() (salt []byte, env *crypto.Envelope, err error) {
	salt, err = hex.DecodeString(f.Salt)
	if err != nil {
		return nil, nil, ErrCorruptedDocument
	}
	iv, err := hex.DecodeString(f.IV)
	if err != nil {
		return nil, nil, ErrCorruptedDocument
	}
	tag, err := hex.DecodeString(f.Tag)
	if err != nil {
		return nil, nil, ErrCorruptedDocument
	}
	data, err := hex.DecodeString(f.Data)
	if err != nil {
		return nil, nil, ErrCorruptedDocument
	}
	return salt, &crypto.Envelope{IV: iv, Tag: tag, Data: data}, nil
}

// parseStoreFile classifies raw file contents as one of the two
// recognized shapes. The legacy plaintext shape is a bare JSON document
// with a wallets field and no envelope marker.
func parseStoreFile(raw []byte) (*envelopeFile, *Document, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, nil, ErrCorruptedDocument
	}

	if _, ok := probe["encrypted"]; ok {
		var envf envelopeFile
		if err := json.Unmarshal(raw, &envf); err != nil || !envf.Encrypted {
			return nil, nil, ErrCorruptedDocument
		}
		return &envf, nil, nil
	}

	if _, ok := probe["wallets"]; !ok {
		return nil, nil, ErrCorruptedDocument
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, ErrCorruptedDocument
	}
	return nil, &doc, nil
}

// IsLegacyPlaintext reports whether the file at path exists and holds
// the historical unencrypted document shape. Callers use it to warn
// before an unlock silently seals the file.
func IsLegacyPlaintext(path string) (bool, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	_, doc, err := parseStoreFile(raw)
	if err != nil {
		return false, err
	}
	return doc != nil, nil
}

// atomicWrite replaces path with data via a temp file and rename, so a
// crash mid-write never leaves a truncated store behind.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DirPermSecure); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".store-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write store: %w", err)
	}
	if err := tmp.Chmod(FilePermSecure); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to set store permissions: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close store: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace store: %w", err)
	}
	return nil
}
