package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheshine/backoffice/pkg/storage"
)

func TestLocalDiskRoundTrip(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	d := storage.NewLocalDisk(root, "http://cdn.test/storage/")

	key := "ecommerce/products/lipsticks/product-1.png"
	require.NoError(t, d.Put(ctx, key, strings.NewReader("png-bytes"), "image/png"))

	data, err := os.ReadFile(filepath.Join(root, "ecommerce", "products", "lipsticks", "product-1.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	ok, err := d.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "http://cdn.test/storage/"+key, d.URL(key))

	require.NoError(t, d.Delete(ctx, key))
	ok, err = d.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, d.Delete(ctx, key), "deleting a missing object is not an error")
}

func TestLocalDiskStaysInsideRoot(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	d := storage.NewLocalDisk(root, "http://cdn.test")

	require.NoError(t, d.Put(ctx, "../../escape.txt", strings.NewReader("x"), "text/plain"))

	_, err := os.Stat(filepath.Join(root, "escape.txt"))
	assert.NoError(t, err)
	assert.Error(t, d.Put(ctx, "", strings.NewReader("x"), "text/plain"))
}

func TestRegisterAndUse(t *testing.T) {
	d := storage.NewLocalDisk(t.TempDir(), "http://cdn.test")
	storage.RegisterDisk("archive", d)

	got, err := storage.Use("archive")
	require.NoError(t, err)
	assert.Same(t, d, got)

	_, err = storage.Use("nope")
	assert.Error(t, err)
}
