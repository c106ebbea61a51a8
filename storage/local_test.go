package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveAndOpen(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	id := uuid.New()

	path, err := store.Save(ctx, id, "ruling one.html", strings.NewReader("<html>acordão</html>"))
	require.NoError(t, err)
	assert.Contains(t, path, id.String())
	assert.Contains(t, path, "ruling_one.html")

	reader, err := store.Open(ctx, path)
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "<html>acordão</html>", string(data))
}

func TestLocalStorage_OpenMissing(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Open(context.Background(), "ab/missing.html")
	assert.Error(t, err)
}

func TestLocalStorage_Delete(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	path, err := store.Save(ctx, uuid.New(), "ruling.html", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, path))
	_, err = store.Open(ctx, path)
	assert.Error(t, err)

	// Deleting a path that is already gone is not an error
	assert.NoError(t, store.Delete(ctx, path))
}
