package codec

import (
	"errors"
	"fmt"
	"sync"

	"github.com/disintegration/imaging"
)

// ErrNotInitialized is returned by ImageAdapter.Compress when the adapter
// lifecycle was not started.
var ErrNotInitialized = errors.New("image codec not initialized")

// ImageAdapter compresses image files in-process. The codec library's
// process-wide startup is modeled as an explicit, idempotent
// Initialize/Shutdown lifecycle invoked once by the orchestrator around
// the batch, rather than a hidden once-flag.
type ImageAdapter struct {
	mu          sync.Mutex
	initialized bool
	quality     int
}

// NewImageAdapter returns an adapter that applies quality (1-100) when
// encoding lossy formats. Quality 0 leaves the encoder default.
func NewImageAdapter(quality int) *ImageAdapter {
	return &ImageAdapter{quality: quality}
}

// Initialize prepares the codec for use. Calling it again is a no-op.
func (a *ImageAdapter) Initialize() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.initialized = true
}

// Shutdown tears the codec down. Calling it again, or before Initialize,
// is a no-op.
func (a *ImageAdapter) Shutdown() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.initialized = false
}

// Compress loads input and writes it to output in the format implied by
// output's extension, applying the configured quality when set. Load and
// encode failures surface as errors; the encoder may or may not leave a
// partial output file behind.
func (a *ImageAdapter) Compress(input, output string) error {
	a.mu.Lock()
	ready := a.initialized
	quality := a.quality
	a.mu.Unlock()
	if !ready {
		return ErrNotInitialized
	}

	img, err := imaging.Open(input)
	if err != nil {
		return fmt.Errorf("load image: %w", err)
	}

	var opts []imaging.EncodeOption
	if quality > 0 {
		opts = append(opts, imaging.JPEGQuality(quality))
	}
	if err := imaging.Save(img, output, opts...); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	return nil
}
