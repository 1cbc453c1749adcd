package avatar

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/user-identity/internal/models"
)

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newTestProcessor(t *testing.T) (*Processor, string, string) {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "public", "avatars")
	tmpDir := filepath.Join(root, "tmp")
	p, err := NewProcessor(dir, tmpDir, newNoopLogger())
	require.NoError(t, err)
	return p, dir, tmpDir
}

func pngBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestProcess_CoverCropToCanonicalSize(t *testing.T) {
	p, dir, tmpDir := newTestProcessor(t)

	tests := []struct {
		name string
		w, h int
	}{
		{name: "landscape", w: 800, h: 300},
		{name: "portrait", w: 120, h: 640},
		{name: "small square", w: 50, h: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, err := p.Process(context.Background(), bytes.NewReader(pngBytes(t, tt.w, tt.h, color.RGBA{R: 200, A: 255})), "acc-1")
			require.NoError(t, err)
			assert.Equal(t, "/avatars/acc-1.jpg", url)

			img, err := imaging.Open(filepath.Join(dir, "acc-1.jpg"))
			require.NoError(t, err)
			assert.Equal(t, Size, img.Bounds().Dx())
			assert.Equal(t, Size, img.Bounds().Dy())

			assertDirEmpty(t, tmpDir)
		})
	}
}

func TestProcess_SamePathOverwrites(t *testing.T) {
	p, dir, _ := newTestProcessor(t)
	ctx := context.Background()

	first, err := p.Process(ctx, bytes.NewReader(pngBytes(t, 300, 300, color.RGBA{R: 255, A: 255})), "acc-2")
	require.NoError(t, err)
	firstBytes, err := os.ReadFile(filepath.Join(dir, "acc-2.jpg"))
	require.NoError(t, err)

	second, err := p.Process(ctx, bytes.NewReader(pngBytes(t, 300, 300, color.RGBA{B: 255, A: 255})), "acc-2")
	require.NoError(t, err)
	secondBytes, err := os.ReadFile(filepath.Join(dir, "acc-2.jpg"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEqual(t, firstBytes, secondBytes)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "only the canonical file must remain")
}

func TestProcess_UnsupportedImage(t *testing.T) {
	p, dir, tmpDir := newTestProcessor(t)

	url, err := p.Process(context.Background(), strings.NewReader("definitely not an image"), "acc-3")
	assert.ErrorIs(t, err, models.ErrUnsupportedImage)
	assert.Empty(t, url)

	assertDirEmpty(t, tmpDir)
	assertDirEmpty(t, dir)
}

func TestProcess_CanceledContext(t *testing.T) {
	p, _, tmpDir := newTestProcessor(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Process(ctx, bytes.NewReader(pngBytes(t, 10, 10, color.White)), "acc-4")
	assert.ErrorIs(t, err, context.Canceled)
	assertDirEmpty(t, tmpDir)
}
