package pipeline

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/shrinkray/internal/config"
)

// writePNG writes a small real PNG so Run can exercise the in-process
// image adapter end to end.
func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 16), B: 90, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func runCfg(root string) config.Config {
	cfg := config.DefaultConfig()
	cfg.Root = root
	cfg.Threads = 2
	cfg.ColorMode = config.ColorNever
	return cfg
}

func TestRun_MissingRootIsFatal(t *testing.T) {
	cfg := runCfg(filepath.Join(t.TempDir(), "nope"))
	_, err := Run(context.Background(), &cfg, quietLogger(t))
	require.Error(t, err)
}

func TestRun_ConvertImagesAndSkipUnconfiguredAudio(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.mp3"), []byte("audio"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.txt"), []byte("text"), 0o644))

	cfg := runCfg(dir)
	cfg.Image = config.Target{Enabled: true, Ext: "jpg"}

	stats, err := Run(context.Background(), &cfg, quietLogger(t))
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Total, "only a.png and b.mp3 are indexed")
	assert.Equal(t, 1, stats.Compressed)
	assert.Equal(t, 1, stats.Skipped, "audio has no target configured")
	assert.Equal(t, 0, stats.Failed)

	assert.FileExists(t, filepath.Join(dir, "a.jpg"))
	assert.NoFileExists(t, filepath.Join(dir, "a.png"), "default retention deletes the original")
	assert.FileExists(t, filepath.Join(dir, "b.mp3"))
	assert.FileExists(t, filepath.Join(dir, "c.txt"))
}

func TestRun_FailureIsolation(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "good.png"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.png"), []byte("not a png"), 0o644))

	cfg := runCfg(dir)
	cfg.Image = config.Target{Enabled: true, Ext: "jpg"}

	stats, err := Run(context.Background(), &cfg, quietLogger(t))
	require.NoError(t, err, "per-file failures never surface as run errors")

	assert.Equal(t, 1, stats.Compressed)
	assert.Equal(t, 1, stats.Failed)
	assert.FileExists(t, filepath.Join(dir, "good.jpg"))
	assert.FileExists(t, filepath.Join(dir, "bad.png"), "failed file keeps its source")
	assert.NoFileExists(t, filepath.Join(dir, "bad.jpg"))
}

func TestRun_InPlaceTwiceDoesNotCorrupt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.png")
	writePNG(t, path)

	cfg := runCfg(dir)
	cfg.Image = config.Target{Enabled: true} // keep extension: in-place

	for i := 0; i < 2; i++ {
		stats, err := Run(context.Background(), &cfg, quietLogger(t))
		require.NoError(t, err, "run %d", i+1)
		assert.Equal(t, 1, stats.Compressed, "run %d", i+1)
	}

	assert.NoFileExists(t, path+".tmp")
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, format, err := image.Decode(f)
	require.NoError(t, err, "output must stay a valid image across runs")
	assert.Equal(t, "png", format)
}

func TestRun_KeepOriginalsProducesBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.png")
	writePNG(t, path)

	cfg := runCfg(dir)
	cfg.Image = config.Target{Enabled: true}
	cfg.KeepOriginals = true

	_, err := Run(context.Background(), &cfg, quietLogger(t))
	require.NoError(t, err)

	assert.FileExists(t, path)
	assert.FileExists(t, path+".backup")
	assert.NoFileExists(t, path+".tmp")
}

func TestRun_CancelledContextStopsDispatch(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := runCfg(dir)
	cfg.Image = config.Target{Enabled: true, Ext: "jpg"}

	stats, err := Run(ctx, &cfg, quietLogger(t))
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Compressed)
	assert.FileExists(t, filepath.Join(dir, "a.png"))
}

func TestRun_DryRunSummary(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"))

	cfg := runCfg(dir)
	cfg.Image = config.Target{Enabled: true, Ext: "jpg"}
	cfg.DryRun = true

	stats, err := Run(context.Background(), &cfg, quietLogger(t))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Compressed)
	assert.NoFileExists(t, filepath.Join(dir, "a.jpg"))
	assert.FileExists(t, filepath.Join(dir, "a.png"))
}
