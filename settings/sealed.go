package settings

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/vstakhov/go-base32"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/rocketgeek/akismetclient-go/errors"
)

// SealedPrefix marks values written by a SealedStore
const SealedPrefix = "sealed:"

// SealedStore encrypts values before handing them to an underlying Store.
//
// Values are sealed with XChaCha20-Poly1305 under a key derived from a
// passphrase with BLAKE2b, bound to the option name, and stored as
// SealedPrefix followed by the zbase32 encoding of nonce||ciphertext.
// Values without the prefix are returned unchanged, so options written by
// other integrations in plain text stay readable.
type SealedStore struct {
	inner Store
	key   [chacha20poly1305.KeySize]byte
}

// NewSealedStore wraps inner with encryption keyed by passphrase
func NewSealedStore(inner Store, passphrase string) (*SealedStore, error) {
	if passphrase == "" {
		return nil, errors.NewEncryptionError("empty passphrase")
	}
	return &SealedStore{
		inner: inner,
		key:   blake2b.Sum256([]byte(passphrase)),
	}, nil
}

// Get implements Store
func (s *SealedStore) Get(ctx context.Context, name string) (string, bool, error) {
	value, ok, err := s.inner.Get(ctx, name)
	if err != nil || !ok {
		return value, ok, err
	}
	if !strings.HasPrefix(value, SealedPrefix) {
		return value, true, nil
	}
	plain, err := s.open(name, strings.TrimPrefix(value, SealedPrefix))
	if err != nil {
		return "", false, err
	}
	return plain, true, nil
}

// Set implements Store
func (s *SealedStore) Set(ctx context.Context, name, value string) error {
	sealed, err := s.seal(name, value)
	if err != nil {
		return err
	}
	return s.inner.Set(ctx, name, SealedPrefix+sealed)
}

func (s *SealedStore) seal(name, value string) (string, error) {
	aead, err := chacha20poly1305.NewX(s.key[:])
	if err != nil {
		return "", errors.NewEncryptionError(fmt.Sprintf("failed to create cipher: %v", err))
	}
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(value)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", errors.NewEncryptionError(fmt.Sprintf("failed to generate nonce: %v", err))
	}
	out := aead.Seal(nonce, nonce, []byte(value), []byte(name))
	return base32.Encode(out), nil
}

func (s *SealedStore) open(name, encoded string) (string, error) {
	data, err := base32.DecodeString(encoded)
	if err != nil {
		return "", errors.NewEncryptionError(fmt.Sprintf("invalid sealed value for %s: %v", name, err))
	}
	aead, err := chacha20poly1305.NewX(s.key[:])
	if err != nil {
		return "", errors.NewEncryptionError(fmt.Sprintf("failed to create cipher: %v", err))
	}
	if len(data) < aead.NonceSize()+aead.Overhead() {
		return "", errors.NewEncryptionError(fmt.Sprintf("sealed value for %s is too short", name))
	}
	nonce, ciphertext := data[:aead.NonceSize()], data[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ciphertext, []byte(name))
	if err != nil {
		return "", errors.NewEncryptionError(fmt.Sprintf("failed to open sealed value for %s", name))
	}
	return string(plain), nil
}
