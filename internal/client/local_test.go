package client

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLocalClient(t *testing.T) {
	root := t.TempDir()
	writeArtifact(t, filepath.Join(root, "react", "fade-in.json"), fadeInJSON)
	writeArtifact(t, filepath.Join(root, "index.json"), indexJSON)
	c := NewLocal(root)
	ctx := context.Background()

	item, err := c.FetchItem(ctx, "fade-in", "react")
	require.NoError(t, err)
	assert.Equal(t, "Fade", item.Description)

	_, err = c.FetchItem(ctx, "fade-in", "vue")
	assert.True(t, IsNotFound(err))

	_, err = c.FetchItem(ctx, "../index", "react")
	assert.True(t, IsNotFound(err))

	ok, err := c.Exists(ctx, "fade-in", "react")
	require.NoError(t, err)
	assert.True(t, ok)

	idx, err := c.FetchIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"react"}, idx.Frameworks)

	assert.Equal(t, []string{"react"}, Availability(ctx, c, "fade-in", ""))
}

func TestLocalFetchIndexIncompatible(t *testing.T) {
	root := t.TempDir()
	writeArtifact(t, filepath.Join(root, "index.json"), `{"version": "2.0.0", "frameworks": [], "animations": []}`)

	_, err := NewLocal(root).FetchIndex(context.Background())
	assert.ErrorIs(t, err, ErrIncompatibleIndex)
}

func TestLocalCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLocal(t.TempDir()).FetchItem(ctx, "x", "react")
	assert.ErrorIs(t, err, context.Canceled)
}
