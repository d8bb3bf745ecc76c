package assets

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padview/padview/internal/padviewd/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil))
	return buf.Bytes()
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"starlink thumb (1).jpg", "starlink_thumb__1_.jpg"},
		{"image.PNG", "image.png"},
		{".jpeg", "image.jpeg"},
		{strings.Repeat("a", 200) + ".png", strings.Repeat("a", 150) + ".png"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.in), "input %q", tt.in)
	}
}

func TestFormatFromPath(t *testing.T) {
	for _, ok := range []string{"a.jpg", "b.JPEG", "c.png"} {
		_, err := FormatFromPath(ok)
		assert.NoError(t, err, ok)
	}
	for _, bad := range []string{"a.gif", "b.webp", "noext"} {
		_, err := FormatFromPath(bad)
		assert.True(t, errors.IsUnsupportedFormat(err), bad)
	}
}

func TestLoadPNGDoublesDimensions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "thumb.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, 100, 100), 0o644))

	asset, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, asset.Format)
	assert.Equal(t, 200, asset.Width)
	assert.Equal(t, 200, asset.Height)
}

func TestLoadJPEGKeepsDimensions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.jpg")
	require.NoError(t, os.WriteFile(path, encodeJPEG(t, 320, 240), 0o644))

	asset, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, FormatJPEG, asset.Format)
	assert.Equal(t, 320, asset.Width)
	assert.Equal(t, 240, asset.Height)
}

func TestLoadCorruptData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.png")
	require.NoError(t, os.WriteFile(path, []byte("not a png"), 0o644))

	_, err := Load(path)
	assert.True(t, errors.IsAssetUnavailable(err))
}

func TestStoreClear(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	_, err = store.Save("old.jpg", bytes.NewReader([]byte("x")))
	require.NoError(t, err)

	require.NoError(t, store.Clear())
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDiscardRemovesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "thumb.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, 10, 10), 0o644))

	asset, err := Load(path)
	require.NoError(t, err)
	asset.Discard()

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	// Safe on nil.
	var nilAsset *Asset
	nilAsset.Discard()
}

func TestFetcherDownload(t *testing.T) {
	body := encodeJPEG(t, 64, 64)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer srv.Close()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	fetcher := NewFetcher(store, testLogger())

	path, err := fetcher.Download(context.Background(), srv.URL+"/gallery/mission_thumb.jpg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(store.Dir(), "mission_thumb.jpg"), path)

	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, body, saved)
}

func TestFetcherRejectsBadURLs(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	fetcher := NewFetcher(store, testLogger())

	_, err = fetcher.Download(context.Background(), "ftp://example.com/a.jpg")
	assert.True(t, errors.IsAssetUnavailable(err))

	_, err = fetcher.Download(context.Background(), "https://example.com/a.gif")
	assert.True(t, errors.IsUnsupportedFormat(err))
}
