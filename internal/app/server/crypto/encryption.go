package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"primer/internal/domain/errs"
)

// envelopeVersion prefixes every sealed value and is bound as associated data.
const envelopeVersion byte = 0x01

const hkdfInfo = "primer vault entry key v1"

var (
	ErrInvalidKey = errors.New("vault key must be 32 bytes")

	// enc is strict so that flipped padding bits are rejected instead of ignored.
	enc = base64.RawURLEncoding.Strict()
)

// ServerEncryptor encrypts vault entry secrets at rest with XChaCha20-Poly1305.
//
// A sealed value is base64url(version || nonce || ciphertext+tag). The key is
// fixed at construction and never exposed.
type ServerEncryptor struct {
	key []byte
}

// NewServerEncryptor builds an encryptor from a raw 32-byte key.
func NewServerEncryptor(key []byte) (*ServerEncryptor, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, ErrInvalidKey
	}

	k := make([]byte, len(key))
	copy(k, key)
	return &ServerEncryptor{key: k}, nil
}

// NewServerEncryptorFromHex decodes a hex key (64 chars).
func NewServerEncryptorFromHex(keyHex string) (*ServerEncryptor, error) {
	key, err := ParseKeyHex(keyHex)
	if err != nil {
		return nil, err
	}
	return NewServerEncryptor(key)
}

// ParseKeyHex decodes and length-checks a hex key.
func ParseKeyHex(keyHex string) ([]byte, error) {
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	if len(key) != chacha20poly1305.KeySize {
		return nil, ErrInvalidKey
	}
	return key, nil
}

// DeriveKey stretches a passphrase into a 32-byte key with HKDF-SHA256.
// Only meant for deployments that keep a passphrase instead of a random key.
func DeriveKey(passphrase string) ([]byte, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("%w: empty passphrase", ErrInvalidKey)
	}

	key := make([]byte, chacha20poly1305.KeySize)
	r := hkdf.New(sha256.New, []byte(passphrase), nil, []byte(hkdfInfo))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return key, nil
}

// GenerateKey returns a fresh random key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return key, nil
}

// Encrypt seals plaintext into a self-describing token.
func (e *ServerEncryptor) Encrypt(plaintext []byte) (string, error) {
	aead, err := chacha20poly1305.NewX(e.key)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	out := make([]byte, 1+aead.NonceSize(), 1+aead.NonceSize()+len(plaintext)+aead.Overhead())
	out[0] = envelopeVersion
	nonce := out[1:]
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	out = aead.Seal(out, nonce, plaintext, out[:1])
	return enc.EncodeToString(out), nil
}

// Decrypt opens a token produced by Encrypt. Any decoding, version or
// authentication failure is reported as errs.ErrIntegrity.
func (e *ServerEncryptor) Decrypt(token string) ([]byte, error) {
	raw, err := enc.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", errs.ErrIntegrity, err)
	}

	aead, err := chacha20poly1305.NewX(e.key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	if len(raw) < 1+aead.NonceSize()+aead.Overhead() {
		return nil, fmt.Errorf("%w: ciphertext too short", errs.ErrIntegrity)
	}
	if raw[0] != envelopeVersion {
		return nil, fmt.Errorf("%w: unknown envelope version %d", errs.ErrIntegrity, raw[0])
	}

	nonce := raw[1 : 1+aead.NonceSize()]
	plaintext, err := aead.Open(nil, nonce, raw[1+aead.NonceSize():], raw[:1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrIntegrity, err)
	}

	return plaintext, nil
}
