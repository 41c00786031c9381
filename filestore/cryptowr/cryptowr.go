// Package cryptowr wraps a filestore.FileStore with AES-256-GCM encryption
// at rest. Each upload gets a fresh key and nonce; the caller owns the
// returned key material and must present it again to read the object back.
package cryptowr

import (
	"bytes"
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"io"

	"github.com/code19m/errx"

	"github.com/crudkit-go/crudkit/filestore"
)

// CodeDecryptFailed is returned when stored content cannot be decrypted
// with the presented key material.
const CodeDecryptFailed = "FILE_DECRYPT_FAILED"

const keySize = 32

// KeyMaterial holds the per-object encryption secret. It is never persisted
// by this package.
type KeyMaterial struct {
	Key []byte
	IV  []byte
}

// Store encrypts objects before handing them to the inner FileStore.
type Store struct {
	inner filestore.FileStore
}

// New wraps the given store.
func New(inner filestore.FileStore) *Store {
	return &Store{inner: inner}
}

// Upload encrypts the reader's content with a fresh AES-256-GCM key and
// stores the ciphertext at path. The reported size is the ciphertext size.
func (s *Store) Upload(ctx context.Context, path string, reader io.Reader) (*filestore.FileInfo, *KeyMaterial, error) {
	plaintext, err := io.ReadAll(reader)
	if err != nil {
		return nil, nil, errx.Wrap(err)
	}

	km, gcm, err := newKeyMaterial()
	if err != nil {
		return nil, nil, err
	}

	ciphertext := gcm.Seal(nil, km.IV, plaintext, nil)

	info, err := s.inner.Upload(ctx, path, bytes.NewReader(ciphertext))
	if err != nil {
		return nil, nil, errx.Wrap(err)
	}
	return info, km, nil
}

// Download fetches the object at path and decrypts it with the given key
// material.
func (s *Store) Download(ctx context.Context, path string, km KeyMaterial) ([]byte, error) {
	file, err := s.inner.Get(ctx, path)
	if err != nil {
		return nil, errx.Wrap(err)
	}
	defer file.Content.Close() //nolint:errcheck

	ciphertext, err := io.ReadAll(file.Content)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	gcm, err := newGCM(km.Key)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, km.IV, ciphertext, nil)
	if err != nil {
		return nil, errx.New(
			"cannot decrypt stored file",
			errx.WithCode(CodeDecryptFailed),
			errx.WithFields(errx.M{"path": path}),
		)
	}
	return plaintext, nil
}

// Delete removes the object at path.
func (s *Store) Delete(ctx context.Context, path string) error {
	return s.inner.Delete(ctx, path)
}

// Exists reports whether an object is stored at path.
func (s *Store) Exists(ctx context.Context, path string) (bool, error) {
	return s.inner.Exists(ctx, path)
}

func newKeyMaterial() (*KeyMaterial, cipher.AEAD, error) {
	key := make([]byte, keySize)
	if _, err := rand.Read(key); err != nil {
		return nil, nil, errx.Wrap(err)
	}

	gcm, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}

	iv := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(iv); err != nil {
		return nil, nil, errx.Wrap(err)
	}

	return &KeyMaterial{Key: key, IV: iv}, gcm, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errx.Wrap(err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errx.Wrap(err)
	}
	return gcm, nil
}
