package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultd/vaultd/internal/crypto"
)

func storePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "store.json")
}

func TestUnlockFreshStore(t *testing.T) {
	path := storePath(t)

	s, err := Unlock(path, []byte("correct-horse"))
	require.NoError(t, err)

	require.Len(t, s.doc.Networks, 2)
	assert.Equal(t, NetworkSepolia, s.doc.Networks[0].ID)
	assert.Equal(t, NetworkMainnet, s.doc.Networks[1].ID)
	assert.Empty(t, s.doc.Wallets)
	assert.Empty(t, s.doc.Tokens)
	assert.Equal(t, NetworkSepolia, s.doc.ActiveNetworkID)
	assert.Empty(t, s.doc.ActiveWalletID)
	assert.Empty(t, s.doc.ActiveAccountAddress)

	// The fresh store is persisted immediately, in envelope shape
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"encrypted":true`)
	assert.NotContains(t, string(raw), NetworkSepolia)
}

func TestUnlockWrongPassword(t *testing.T) {
	path := storePath(t)

	_, err := Unlock(path, []byte("correct-horse"))
	require.NoError(t, err)

	s, err := Unlock(path, []byte("wrong-horse"))
	assert.ErrorIs(t, err, ErrIncorrectPassword)
	assert.Nil(t, s)
}

func TestUnlockPersistedDocument(t *testing.T) {
	path := storePath(t)
	password := []byte("correct-horse")

	s, err := Unlock(path, password)
	require.NoError(t, err)
	require.NoError(t, s.AddToken(Token{Address: "0xAb", ChainID: 1, Symbol: "TST", Decimals: 18}))

	s2, err := Unlock(path, password)
	require.NoError(t, err)
	tokens, err := s2.TokensForChain(1)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "TST", tokens[0].Symbol)
}

func TestUnlockCorruptedFile(t *testing.T) {
	cases := map[string]string{
		"not json":           "not json at all",
		"wrong shape":        `{"foo": 1}`,
		"bad marker":         `{"encrypted": "yes"}`,
		"bad hex":            `{"encrypted": true, "salt": "zz", "iv": "zz", "tag": "zz", "data": "zz"}`,
		"ciphertext garbage": `{"encrypted": true, "salt": "00112233445566778899aabbccddeeff", "iv": "000000000000000000000000", "tag": "00000000000000000000000000000000", "data": "00"}`,
	}

	for name, contents := range cases {
		t.Run(name, func(t *testing.T) {
			path := storePath(t)
			require.NoError(t, os.WriteFile(path, []byte(contents), 0600))

			_, err := Unlock(path, []byte("pw"))
			if name == "ciphertext garbage" {
				// Parseable envelope, wrong key/tag: an auth failure
				assert.ErrorIs(t, err, ErrIncorrectPassword)
			} else {
				assert.ErrorIs(t, err, ErrCorruptedDocument)
			}
		})
	}
}

func TestLegacyPlaintextUpgrade(t *testing.T) {
	path := storePath(t)

	legacy := `{
		"wallets": [{
			"id": "w1", "name": "Old", "type": "simple",
			"accounts": [{"address": "0xaa", "name": "A", "privateKey": "deadbeef"}]
		}],
		"activeWalletId": "w1",
		"activeAccountAddress": "0xaa"
	}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0600))

	// Any password is accepted here: plaintext carries no authenticator
	s, err := Unlock(path, []byte("chosen-password"))
	require.NoError(t, err)

	// Document adopted, missing fields filled with defaults
	require.Len(t, s.doc.Wallets, 1)
	assert.Equal(t, "w1", s.doc.ActiveWalletID)
	require.Len(t, s.doc.Networks, 2)
	assert.Equal(t, NetworkSepolia, s.doc.ActiveNetworkID)
	assert.NotNil(t, s.doc.Tokens)

	// File was re-persisted under the envelope; the upgrade is one-way
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"encrypted":true`)
	assert.NotContains(t, string(raw), "deadbeef")

	// The chosen password is now the store password
	_, err = Unlock(path, []byte("other-password"))
	assert.ErrorIs(t, err, ErrIncorrectPassword)

	s2, err := Unlock(path, []byte("chosen-password"))
	require.NoError(t, err)
	assert.Equal(t, "w1", s2.doc.ActiveWalletID)
}

func TestMigrationOnLoadIdempotent(t *testing.T) {
	path := storePath(t)
	password := []byte("pw")

	// Build an envelope-shaped file whose document predates the
	// networks/tokens fields.
	salt, err := crypto.GenerateSalt()
	require.NoError(t, err)
	key, err := crypto.DeriveKey(password, salt)
	require.NoError(t, err)
	env, err := crypto.NewEncryptor(key).Encrypt([]byte(`{"wallets": []}`))
	require.NoError(t, err)
	raw, err := encodeEnvelopeFile(salt, env)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0600))

	s, err := Unlock(path, password)
	require.NoError(t, err)
	require.Len(t, s.doc.Networks, 2)
	assert.Equal(t, NetworkSepolia, s.doc.ActiveNetworkID)
	first, err := json.Marshal(s.doc)
	require.NoError(t, err)

	// A second unlock must not append another set of defaults
	s2, err := Unlock(path, password)
	require.NoError(t, err)
	require.Len(t, s2.doc.Networks, 2)
	second, err := json.Marshal(s2.doc)
	require.NoError(t, err)
	assert.JSONEq(t, string(first), string(second))
}

func TestChangePassword(t *testing.T) {
	path := storePath(t)

	s, err := Unlock(path, []byte("old-password"))
	require.NoError(t, err)
	require.NoError(t, s.AddToken(Token{Address: "0xAb", ChainID: 1, Symbol: "TST", Decimals: 18}))

	oldSalt := make([]byte, len(s.salt))
	copy(oldSalt, s.salt)

	require.NoError(t, s.ChangePassword([]byte("new-password")))
	assert.NotEqual(t, oldSalt, s.salt, "rotation must generate a fresh salt")

	_, err = Unlock(path, []byte("old-password"))
	assert.ErrorIs(t, err, ErrIncorrectPassword)

	s2, err := Unlock(path, []byte("new-password"))
	require.NoError(t, err)
	tokens, err := s2.TokensForChain(1)
	require.NoError(t, err)
	assert.Len(t, tokens, 1)
}

func TestLockedSession(t *testing.T) {
	var s *Session

	_, err := s.Wallets()
	assert.ErrorIs(t, err, ErrStoreLocked)
	_, err = s.ActiveWallet()
	assert.ErrorIs(t, err, ErrStoreLocked)
	assert.ErrorIs(t, s.AddToken(Token{}), ErrStoreLocked)
	assert.ErrorIs(t, s.SelectNetwork(NetworkMainnet), ErrStoreLocked)
	assert.ErrorIs(t, s.ChangePassword([]byte("x")), ErrStoreLocked)

	r := NewRegistry(s, fakeDeriver{})
	_, err = r.CreateHDWallet("w")
	assert.ErrorIs(t, err, ErrStoreLocked)
	assert.ErrorIs(t, r.DeleteActiveWallet(), ErrStoreLocked)
}

func TestSelectOperations(t *testing.T) {
	s, r := newTestStore(t)

	w1, err := r.ImportMnemonic("W1", testMnemonic)
	require.NoError(t, err)
	w2, err := r.ImportMnemonic("W2", strings.Repeat("other ", 11)+"other")
	require.NoError(t, err)
	require.Equal(t, w2.ID, s.doc.ActiveWalletID)

	require.NoError(t, s.SelectWallet(w1.ID))
	assert.Equal(t, w1.ID, s.doc.ActiveWalletID)
	assert.Equal(t, w1.Accounts[0].Address, s.doc.ActiveAccountAddress)

	require.NoError(t, s.SelectAccount(w1.Accounts[3].Address))
	assert.Equal(t, w1.Accounts[3].Address, s.doc.ActiveAccountAddress)

	assert.ErrorIs(t, s.SelectAccount("0xunknown"), ErrAccountNotFound)
	assert.ErrorIs(t, s.SelectWallet("nope"), ErrWalletNotFound)

	require.NoError(t, s.SelectNetwork(NetworkMainnet))
	assert.Equal(t, NetworkMainnet, s.doc.ActiveNetworkID)
	assert.ErrorIs(t, s.SelectNetwork("nope"), ErrNetworkNotFound)
}
