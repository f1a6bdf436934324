package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocal(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(filepath.Join(t.TempDir(), "covers"))
	require.NoError(t, err)
	return s
}

func TestLocalStorage_SaveAndOpen(t *testing.T) {
	s := newLocal(t)
	ctx := context.Background()

	n, err := s.Save(ctx, "7.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, int64(9), n)

	rc, err := s.Open(ctx, "7.png")
	require.NoError(t, err)
	defer rc.Close()
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(got))
}

func TestLocalStorage_SaveOverwrites(t *testing.T) {
	s := newLocal(t)
	ctx := context.Background()

	_, err := s.Save(ctx, "7.png", strings.NewReader("old"))
	require.NoError(t, err)
	_, err = s.Save(ctx, "7.png", strings.NewReader("new"))
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(s.Dir(), "7.png"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestLocalStorage_FailedSaveLeavesNoFile(t *testing.T) {
	s := newLocal(t)
	ctx := context.Background()

	_, err := s.Save(ctx, "7.png", io.MultiReader(strings.NewReader("partial"), failingReader{}))
	require.Error(t, err)

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = s.Open(ctx, "7.png")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestLocalStorage_FailedSaveKeepsPreviousArtifact(t *testing.T) {
	s := newLocal(t)
	ctx := context.Background()

	_, err := s.Save(ctx, "7.png", strings.NewReader("old"))
	require.NoError(t, err)
	_, err = s.Save(ctx, "7.png", io.MultiReader(strings.NewReader("partial"), failingReader{}))
	require.Error(t, err)

	got, err := os.ReadFile(filepath.Join(s.Dir(), "7.png"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(got))
}

func TestLocalStorage_SaveRecreatesRemovedDir(t *testing.T) {
	s := newLocal(t)
	ctx := context.Background()
	require.NoError(t, os.RemoveAll(s.Dir()))

	_, err := s.Save(ctx, "7.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(s.Dir(), "7.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(got))
}

func TestLocalStorage_CancelledContext(t *testing.T) {
	s := newLocal(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Save(ctx, "7.png", strings.NewReader("data"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalStorage_DeleteAndList(t *testing.T) {
	s := newLocal(t)
	ctx := context.Background()

	for _, k := range []string{"1.png", "2.png"} {
		_, err := s.Save(ctx, k, strings.NewReader(k))
		require.NoError(t, err)
	}

	objects, err := s.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1.png", "2.png"}, keysOf(objects))
	assert.False(t, objects[0].LastModified.IsZero())

	require.NoError(t, s.Delete(ctx, "1.png"))
	require.NoError(t, s.Delete(ctx, "1.png"), "deleting a missing artifact is a no-op")

	objects, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2.png"}, keysOf(objects))
}

func keysOf(objects []ObjectInfo) []string {
	keys := make([]string, 0, len(objects))
	for _, o := range objects {
		keys = append(keys, o.Key)
	}
	return keys
}

func TestLocalStorage_RejectsUnsafeKeys(t *testing.T) {
	s := newLocal(t)
	ctx := context.Background()

	for _, key := range []string{"", "..", "../x.png", "a/b.png", `a\b.png`, ".hidden"} {
		_, err := s.Save(ctx, key, strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}
}
