package scanner

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWrite(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestListImages(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "a.JPG"))
	mustWrite(t, filepath.Join(root, "b.txt"))
	mustWrite(t, filepath.Join(root, "c.png"))

	got := New(nil).ListImages(root)
	assert.ElementsMatch(t, []string{filepath.Join(root, "a.JPG"), filepath.Join(root, "c.png")}, got)
}

func TestListImagesAllDefaultExtensions(t *testing.T) {
	root := t.TempDir()
	names := []string{"1.jpg", "2.JPEG", "3.Png", "4.bmp", "5.gif"}
	for _, n := range names {
		mustWrite(t, filepath.Join(root, n))
	}
	mustWrite(t, filepath.Join(root, "6.webp"))
	mustWrite(t, filepath.Join(root, "noext"))
	mustWrite(t, filepath.Join(root, ".png"))

	assert.Len(t, New(nil).ListImages(root), len(names))
}

func TestListImagesSkipsDirectoriesAndNested(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "album.png"), 0o755))
	mustWrite(t, filepath.Join(root, "sub", "nested.png"))
	mustWrite(t, filepath.Join(root, "top.gif"))

	assert.Equal(t, []string{filepath.Join(root, "top.gif")}, New(nil).ListImages(root))
}

func TestListImagesMissingFolder(t *testing.T) {
	got := New(nil).ListImages(filepath.Join(t.TempDir(), "missing"))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListImagesNotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a.png")
	mustWrite(t, file)
	assert.Empty(t, New(nil).ListImages(file))
}

func TestListImagesNotCached(t *testing.T) {
	root := t.TempDir()
	s := New(nil)
	assert.Empty(t, s.ListImages(root))

	mustWrite(t, filepath.Join(root, "new.png"))
	assert.Len(t, s.ListImages(root), 1)
}

func TestCustomExtensions(t *testing.T) {
	s := New([]string{".WEBP", "png"})
	assert.True(t, s.IsImage("a.webp"))
	assert.True(t, s.IsImage("a.PNG"))
	assert.False(t, s.IsImage("a.jpg"))
	assert.False(t, s.IsImage("webp"))
}

func TestWatch(t *testing.T) {
	root := t.TempDir()
	log := logrus.New()
	log.SetOutput(io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 8)
	err := Watch(ctx, root, log, func() { changed <- struct{}{} })
	require.NoError(t, err)

	mustWrite(t, filepath.Join(root, "a.png"))
	mustWrite(t, filepath.Join(root, "b.png"))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatchMissingFolder(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	err := Watch(context.Background(), filepath.Join(t.TempDir(), "missing"), log, func() {})
	assert.Error(t, err)
}
