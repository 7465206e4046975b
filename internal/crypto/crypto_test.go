package crypto

import (
	"bytes"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := make([]byte, KeySize)
	copy(key, []byte("0123456789abcdef0123456789abcdef"))

	enc := NewEncryptor(key)

	plaintexts := [][]byte{
		[]byte("hello"),
		[]byte(""),
		[]byte(`{"wallets":[],"networks":[]}`),
		bytes.Repeat([]byte{0xff}, 4096),
	}

	for _, plaintext := range plaintexts {
		env, err := enc.Encrypt(plaintext)
		if err != nil {
			t.Fatalf("Encrypt failed: %v", err)
		}
		if len(env.IV) != NonceSize {
			t.Errorf("Expected %d byte nonce, got %d", NonceSize, len(env.IV))
		}
		if len(env.Tag) != TagSize {
			t.Errorf("Expected %d byte tag, got %d", TagSize, len(env.Tag))
		}

		decrypted, err := enc.Decrypt(env)
		if err != nil {
			t.Fatalf("Decrypt failed: %v", err)
		}
		if !bytes.Equal(decrypted, plaintext) {
			t.Errorf("Round trip mismatch: got %q, want %q", decrypted, plaintext)
		}
	}
}

func TestFreshNoncePerEncrypt(t *testing.T) {
	key := make([]byte, KeySize)
	enc := NewEncryptor(key)

	env1, err := enc.Encrypt([]byte("same plaintext"))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	env2, err := enc.Encrypt([]byte("same plaintext"))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	if bytes.Equal(env1.IV, env2.IV) {
		t.Error("Nonce reused across encrypt calls")
	}
	if bytes.Equal(env1.Data, env2.Data) {
		t.Error("Identical ciphertext for two encryptions of the same plaintext")
	}
}

func TestDecryptDetectsTampering(t *testing.T) {
	key := make([]byte, KeySize)
	copy(key, []byte("another-32-byte-test-key-value!!"))
	enc := NewEncryptor(key)

	env, err := enc.Encrypt([]byte("sensitive payload"))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	flip := func(src []byte, i int) []byte {
		out := make([]byte, len(src))
		copy(out, src)
		out[i] ^= 0x01
		return out
	}

	cases := []struct {
		name string
		env  Envelope
	}{
		{"ciphertext", Envelope{IV: env.IV, Tag: env.Tag, Data: flip(env.Data, 0)}},
		{"tag", Envelope{IV: env.IV, Tag: flip(env.Tag, TagSize - 1), Data: env.Data}},
		{"iv", Envelope{IV: flip(env.IV, 3), Tag: env.Tag, Data: env.Data}},
	}

	for _, tc := range cases {
		if _, err := enc.Decrypt(&tc.env); err != ErrAuthFailed {
			t.Errorf("Flipped %s: expected ErrAuthFailed, got %v", tc.name, err)
		}
	}
}

func TestDecryptWrongKey(t *testing.T) {
	key1 := make([]byte, KeySize)
	key2 := make([]byte, KeySize)
	key2[0] = 0x01

	env, err := NewEncryptor(key1).Encrypt([]byte("payload"))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	if _, err := NewEncryptor(key2).Decrypt(env); err != ErrAuthFailed {
		t.Errorf("Expected ErrAuthFailed with wrong key, got %v", err)
	}
}

func TestDecryptMalformedEnvelope(t *testing.T) {
	key := make([]byte, KeySize)
	enc := NewEncryptor(key)

	bad := &Envelope{IV: []byte{1, 2, 3}, Tag: make([]byte, TagSize), Data: []byte("x")}
	if _, err := enc.Decrypt(bad); err != ErrInvalidCiphertext {
		t.Errorf("Expected ErrInvalidCiphertext, got %v", err)
	}
}

func TestDeriveKeyDeterministic(t *testing.T) {
	salt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt failed: %v", err)
	}
	if len(salt) != SaltSize {
		t.Fatalf("Expected %d byte salt, got %d", SaltSize, len(salt))
	}

	key1, err := DeriveKey([]byte("correct-horse"), salt)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	key2, err := DeriveKey([]byte("correct-horse"), salt)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	if !bytes.Equal(key1, key2) {
		t.Error("Identical password+salt produced different keys")
	}
	if len(key1) != KeySize {
		t.Errorf("Expected %d byte key, got %d", KeySize, len(key1))
	}

	key3, err := DeriveKey([]byte("battery-staple"), salt)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	if bytes.Equal(key1, key3) {
		t.Error("Different passwords produced the same key")
	}

	otherSalt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt failed: %v", err)
	}
	key4, err := DeriveKey([]byte("correct-horse"), otherSalt)
	if err != nil {
		t.Fatalf("DeriveKey failed: %v", err)
	}
	if bytes.Equal(key1, key4) {
		t.Error("Different salts produced the same key")
	}
}

func TestClearBytes(t *testing.T) {
	b := []byte("secret")
	ClearBytes(b)
	for i, v := range b {
		if v != 0 {
			t.Errorf("Byte %d not cleared", i)
		}
	}
}
