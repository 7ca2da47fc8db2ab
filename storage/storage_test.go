package storage

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvidencePath(t *testing.T) {
	id := uuid.MustParse("a1b2c3d4-0000-0000-0000-000000000000")

	path := evidencePath(id, "obstructed sign.jpg")
	assert.Equal(t, "evidence/a1/a1b2c3d4-0000-0000-0000-000000000000_obstructed_sign.jpg", path)

	// Path separators in the filename cannot escape the layout
	path = evidencePath(id, "../../etc/passwd")
	assert.False(t, strings.Contains(path, ".."))
	assert.True(t, strings.HasPrefix(path, "evidence/a1/"))
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "application/pdf", contentTypeFor("receipt.pdf"))
	assert.Equal(t, "application/octet-stream", contentTypeFor("noextension"))
	assert.True(t, strings.HasPrefix(contentTypeFor("sign.png"), "image/png"))
}

func TestNewStorageDispatch(t *testing.T) {
	local, err := NewStorage(StorageConfig{Type: StorageTypeLocal, LocalPath: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, local)

	_, err = NewStorage(StorageConfig{Type: "ftp"})
	assert.ErrorContains(t, err, "unknown storage type")
}

func TestNewStorageFromEnv(t *testing.T) {
	t.Run("defaults to local", func(t *testing.T) {
		t.Setenv("STORAGE_TYPE", "")
		t.Setenv("STORAGE_LOCAL_PATH", t.TempDir())

		store, err := NewStorageFromEnv()
		require.NoError(t, err)
		assert.IsType(t, &LocalStorage{}, store)
	})

	t.Run("s3 requires a bucket", func(t *testing.T) {
		t.Setenv("STORAGE_TYPE", "s3")
		t.Setenv("AWS_S3_BUCKET", "")

		_, err := NewStorageFromEnv()
		assert.ErrorContains(t, err, "AWS_S3_BUCKET")
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		t.Setenv("STORAGE_TYPE", "carrier-pigeon")

		_, err := NewStorageFromEnv()
		assert.ErrorContains(t, err, "unknown storage type")
	})
}

func TestLocalStorageRoundTrip(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	id := uuid.New()

	path, err := store.Upload(ctx, id, "meter photo.jpg", bytes.NewReader([]byte("jpeg bytes")))
	require.NoError(t, err)

	reader, err := store.Download(ctx, path)
	require.NoError(t, err)
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.NoError(t, reader.Close())
	assert.Equal(t, []byte("jpeg bytes"), data)

	require.NoError(t, store.Delete(ctx, path))
	_, err = store.Download(ctx, path)
	assert.ErrorContains(t, err, "file not found")

	// Deleting a missing file is not an error
	assert.NoError(t, store.Delete(ctx, path))
}
