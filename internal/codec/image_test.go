package codec

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writePNG writes a small solid-color PNG for the adapter to chew on.
func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestImageAdapter_RequiresInitialize(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writePNG(t, in)

	a := NewImageAdapter(0)
	err := a.Compress(in, filepath.Join(dir, "out.png"))
	require.ErrorIs(t, err, ErrNotInitialized)

	a.Shutdown() // shutdown before initialize is a no-op
	err = a.Compress(in, filepath.Join(dir, "out.png"))
	require.ErrorIs(t, err, ErrNotInitialized)
}

func TestImageAdapter_LifecycleIdempotent(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.jpg")
	writePNG(t, in)

	a := NewImageAdapter(0)
	a.Initialize()
	a.Initialize()
	require.NoError(t, a.Compress(in, out))

	a.Shutdown()
	a.Shutdown()
	require.ErrorIs(t, a.Compress(in, out), ErrNotInitialized)
}

func TestImageAdapter_ConvertsFormat(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "photo.png")
	out := filepath.Join(dir, "photo.jpg")
	writePNG(t, in)

	a := NewImageAdapter(85)
	a.Initialize()
	defer a.Shutdown()

	require.NoError(t, a.Compress(in, out))

	fi, err := os.Stat(out)
	require.NoError(t, err)
	assert.Greater(t, fi.Size(), int64(0))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	_, format, err := image.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestImageAdapter_LoadFailure(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(in, []byte("not an image"), 0o644))

	a := NewImageAdapter(0)
	a.Initialize()
	defer a.Shutdown()

	err := a.Compress(in, filepath.Join(dir, "out.png"))
	assert.Error(t, err)
}

func TestImageAdapter_UnsupportedOutputFormat(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writePNG(t, in)

	a := NewImageAdapter(0)
	a.Initialize()
	defer a.Shutdown()

	err := a.Compress(in, filepath.Join(dir, "out.xyz"))
	assert.Error(t, err)
}
