package hdwallet

import (
	"strings"
	"testing"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultd/vaultd/internal/store"
)

// the canonical BIP-39 test phrase, with well-known derived addresses
const vectorMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestDeriveAccountKnownVector(t *testing.T) {
	d := NewDeriver()

	address, path, err := d.DeriveAccount(vectorMnemonic, 0)
	require.NoError(t, err)
	assert.Equal(t, "0x9858EfFD232B4033E47d90003D41EC34EcaEda94", address)
	assert.Equal(t, "m/44'/60'/0'/0/0", path)

	address, path, err = d.DeriveAccount(vectorMnemonic, 1)
	require.NoError(t, err)
	assert.Equal(t, "0x6Fac4D18c912343BF86fa7049364Dd4E424Ab9C0", address)
	assert.Equal(t, "m/44'/60'/0'/0/1", path)
}

func TestDeriveAccountDeterministic(t *testing.T) {
	d := NewDeriver()

	a1, _, err := d.DeriveAccount(vectorMnemonic, 7)
	require.NoError(t, err)
	a2, _, err := d.DeriveAccount(vectorMnemonic, 7)
	require.NoError(t, err)
	assert.Equal(t, a1, a2)
}

func TestNewMnemonicIsValid(t *testing.T) {
	d := NewDeriver()

	mnemonic, err := d.NewMnemonic()
	require.NoError(t, err)
	assert.Len(t, strings.Fields(mnemonic), 12)
	assert.True(t, d.ValidMnemonic(mnemonic))

	// two calls must not collide
	other, err := d.NewMnemonic()
	require.NoError(t, err)
	assert.NotEqual(t, mnemonic, other)
}

func TestValidMnemonic(t *testing.T) {
	d := NewDeriver()

	assert.True(t, d.ValidMnemonic(vectorMnemonic))
	assert.False(t, d.ValidMnemonic("abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon"))
	assert.False(t, d.ValidMnemonic("definitely not words from the list at all no sir nope never ever"))
}

func TestAddressFromPrivateKey(t *testing.T) {
	d := NewDeriver()

	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	want := ethcrypto.PubkeyToAddress(key.PublicKey).Hex()

	hexKey := HexFromPrivateKey(key)
	got, err := d.AddressFromPrivateKey(hexKey)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// 0x prefix is tolerated
	got, err = d.AddressFromPrivateKey("0x" + hexKey)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = d.AddressFromPrivateKey("zz not hex")
	assert.Error(t, err)
	_, err = d.AddressFromPrivateKey("deadbeef")
	assert.Error(t, err, "too short for a secp256k1 scalar")
}

func TestParsePathIndex(t *testing.T) {
	d := NewDeriver()

	idx, err := d.ParsePathIndex("m/44'/60'/0'/0/5")
	require.NoError(t, err)
	assert.Equal(t, uint32(5), idx)

	_, err = d.ParsePathIndex("")
	assert.ErrorIs(t, err, ErrNullDerivationPath)
	_, err = d.ParsePathIndex("m//0")
	assert.ErrorIs(t, err, ErrMalformedDerivationPath)
	_, err = d.ParsePathIndex("m/44'/60'/0'/0/5'")
	assert.Error(t, err, "hardened account component")
}

func TestDerivationPathRoundTrip(t *testing.T) {
	for _, str := range []string{
		"m/44'/60'/0'/0/0",
		"m/44'/60'/0'/0/2147483647",
		"m/84'/0'/1'/1/42",
	} {
		path, err := ParseDerivationPath(str)
		require.NoError(t, err, str)
		assert.Equal(t, str, path.String())
	}
}

func TestPrivateKeyForIdentity(t *testing.T) {
	d := NewDeriver()

	derived, err := d.PrivateKeyForIdentity(store.DerivedIdentity{Mnemonic: vectorMnemonic, Index: 0})
	require.NoError(t, err)
	assert.Equal(t, "0x9858EfFD232B4033E47d90003D41EC34EcaEda94",
		ethcrypto.PubkeyToAddress(derived.PublicKey).Hex())

	raw, err := d.PrivateKeyForIdentity(store.RawKeyIdentity{Key: HexFromPrivateKey(derived)})
	require.NoError(t, err)
	assert.Equal(t, HexFromPrivateKey(derived), HexFromPrivateKey(raw))
}

func TestKeystoreRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("scrypt keystore parameters are deliberately slow")
	}
	d := NewDeriver()

	key, err := ethcrypto.GenerateKey()
	require.NoError(t, err)

	blob, err := EncryptKeystore(key, "keystore-pass")
	require.NoError(t, err)

	hexKey, err := d.DecryptKeystore(blob, "keystore-pass")
	require.NoError(t, err)
	assert.Equal(t, HexFromPrivateKey(key), hexKey)

	_, err = d.DecryptKeystore(blob, "wrong")
	assert.Error(t, err)
}
