package dreocloud

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
)

// keySize is the AES-256 key length required for payload encryption.
const keySize = 32

// CryptoParams holds the symmetric key material for one region. The struct
// is opaque so the cipher suite can change without touching callers; the
// current suite is AES-256-GCM with a random nonce prefixed to the
// ciphertext.
type CryptoParams struct {
	key []byte
}

// NewCryptoParams validates and wraps a 32-byte AES key.
func NewCryptoParams(key []byte) (CryptoParams, error) {
	if len(key) != keySize {
		return CryptoParams{}, fmt.Errorf("crypto key must be %d bytes, got %d", keySize, len(key))
	}
	k := make([]byte, keySize)
	copy(k, key)
	return CryptoParams{key: k}, nil
}

// EncryptPayload seals a plaintext payload with the region's key. Each call
// uses a fresh random nonce, so two encryptions of the same payload produce
// different ciphertexts; any ciphertext this function produces decrypts
// successfully with the same parameters.
func EncryptPayload(params CryptoParams, plainPayload []byte) ([]byte, error) {
	aead, err := newAEAD(params)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	// Ciphertext layout: nonce || sealed payload.
	return aead.Seal(nonce, nonce, plainPayload, nil), nil
}

// DecryptPayload opens a ciphertext produced by EncryptPayload or by the
// regional server. Malformed, truncated, or tampered ciphertext fails with
// PayloadIntegrityError, distinguishable from transport failures.
func DecryptPayload(params CryptoParams, cipherBytes []byte) ([]byte, error) {
	aead, err := newAEAD(params)
	if err != nil {
		return nil, err
	}

	if len(cipherBytes) < aead.NonceSize() {
		return nil, NewPayloadIntegrityError("ciphertext shorter than nonce", nil)
	}

	nonce, sealed := cipherBytes[:aead.NonceSize()], cipherBytes[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, NewPayloadIntegrityError("ciphertext failed authentication", err)
	}
	return plain, nil
}

func newAEAD(params CryptoParams) (cipher.AEAD, error) {
	block, err := aes.NewCipher(params.key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init GCM: %w", err)
	}
	return aead, nil
}
