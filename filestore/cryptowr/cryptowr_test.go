package cryptowr_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crudkit-go/crudkit/filestore"
	"github.com/crudkit-go/crudkit/filestore/cryptowr"
)

type memStore struct {
	objects map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}}
}

func (m *memStore) Upload(_ context.Context, path string, reader io.Reader) (*filestore.FileInfo, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	m.objects[path] = content
	return &filestore.FileInfo{Path: path, Size: int64(len(content))}, nil
}

func (m *memStore) Get(_ context.Context, path string) (*filestore.File, error) {
	content, ok := m.objects[path]
	if !ok {
		return nil, errx.New("no such file", errx.WithCode(filestore.CodeFileNotFound))
	}
	return &filestore.File{
		Content: io.NopCloser(bytes.NewReader(content)),
		Info:    filestore.FileInfo{Path: path, Size: int64(len(content))},
	}, nil
}

func (m *memStore) Delete(_ context.Context, path string) error {
	delete(m.objects, path)
	return nil
}

func (m *memStore) Exists(_ context.Context, path string) (bool, error) {
	_, ok := m.objects[path]
	return ok, nil
}

func TestUploadDownloadRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	inner := newMemStore()
	store := cryptowr.New(inner)

	plaintext := []byte("invoice 42: amount due 1050.00")

	info, km, err := store.Upload(ctx, "invoices/42.txt", bytes.NewReader(plaintext))
	require.NoError(t, err)
	require.NotNil(t, km)
	assert.Len(t, km.Key, 32)
	assert.NotEmpty(t, km.IV)
	assert.Equal(t, "invoices/42.txt", info.Path)

	// ciphertext at rest must differ from the plaintext
	assert.NotEqual(t, plaintext, inner.objects["invoices/42.txt"])

	got, err := store.Download(ctx, "invoices/42.txt", *km)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestUpload_FreshKeyPerObject(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := cryptowr.New(newMemStore())

	_, first, err := store.Upload(ctx, "a", bytes.NewReader([]byte("same")))
	require.NoError(t, err)
	_, second, err := store.Upload(ctx, "b", bytes.NewReader([]byte("same")))
	require.NoError(t, err)

	assert.NotEqual(t, first.Key, second.Key)
	assert.NotEqual(t, first.IV, second.IV)
}

func TestDownload_WrongKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := cryptowr.New(newMemStore())

	_, km, err := store.Upload(ctx, "secret", bytes.NewReader([]byte("payload")))
	require.NoError(t, err)

	wrong := *km
	wrong.Key = bytes.Repeat([]byte{0x7f}, 32)

	got, err := store.Download(ctx, "secret", wrong)

	require.Error(t, err)
	assert.Nil(t, got)
	assert.Equal(t, cryptowr.CodeDecryptFailed, errx.AsErrorX(err).Code())
}

func TestDownload_MissingObject(t *testing.T) {
	t.Parallel()

	store := cryptowr.New(newMemStore())

	_, err := store.Download(context.Background(), "absent", cryptowr.KeyMaterial{})

	require.Error(t, err)
}
