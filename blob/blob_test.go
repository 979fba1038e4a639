package blob

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorePutAndDelete(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir, "/uploads/")
	ctx := context.Background()

	url, err := store.Put(ctx, "products", "Bag.JPG", bytes.NewBufferString("image-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/products/"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))

	onDisk := filepath.Join(dir, strings.TrimPrefix(url, "/uploads/"))
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))

	require.NoError(t, store.Delete(ctx, url))
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, store.Delete(ctx, url), "deleting twice is fine")
}

func TestLocalStoreRejects(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "/uploads")
	ctx := context.Background()

	_, err := store.Put(ctx, "products", "notes.txt", bytes.NewBufferString("x"))
	assert.ErrorIs(t, err, ErrInvalidType)

	big := bytes.NewReader(make([]byte, MaxImageSize+10))
	_, err = store.Put(ctx, "products", "big.png", big)
	assert.ErrorIs(t, err, ErrTooLarge)

	url, err := store.Put(ctx, "../../etc", "a.png", bytes.NewBufferString("x"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/etc/"), "folder is confined to the upload dir")

	assert.Error(t, store.Delete(ctx, "https://elsewhere.com/a.png"))
}

func TestValidateImage(t *testing.T) {
	assert.NoError(t, ValidateImage("a.webp", 10))
	assert.ErrorIs(t, ValidateImage("a.exe", 10), ErrInvalidType)
	assert.ErrorIs(t, ValidateImage("a.png", MaxImageSize+1), ErrTooLarge)
}
