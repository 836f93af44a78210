package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/backmassage/shrinkray/internal/config"
	"github.com/backmassage/shrinkray/internal/display"
	"github.com/backmassage/shrinkray/internal/index"
	"github.com/backmassage/shrinkray/internal/logging"
)

// ImageCompressor compresses one image file in-process.
type ImageCompressor interface {
	Compress(input, output string) error
}

// StreamCompressor re-encodes one audio or video file through the
// external encoding tool.
type StreamCompressor interface {
	Compress(input, output, ext string) error
}

// Job is the unit of work for one indexed file. It carries an immutable
// snapshot of everything it needs; jobs share no mutable state beyond
// the filesystem, the stats counters, and the claim table.
type Job struct {
	Entry  index.Entry
	Target config.Target
	Keep   bool
	DryRun bool

	Image  ImageCompressor
	Stream StreamCompressor
	Log    *logging.Logger
	Stats  *RunStats
	Claims *ClaimTable
}

// Run drives the per-file state machine:
//
//	compute output → claim it → move aside when in-place →
//	skip when output exists → compress → apply retention policy
//
// Every failure, filesystem mutations included, stays at this boundary:
// the job is reported and the rest of the batch is unaffected. A failed
// compression leaves a moved-aside ".tmp" input on disk rather than
// restoring it; the data always survives somewhere.
func (j *Job) Run() {
	if !j.Target.Enabled {
		j.Stats.AddSkipped()
		return
	}

	src := j.Entry.Path
	srcExt := filepath.Ext(src)
	outExt := j.Target.Ext
	if outExt == "" {
		outExt = strings.ToLower(strings.TrimPrefix(srcExt, "."))
	}
	output := strings.TrimSuffix(src, srcExt) + "." + outExt
	inPlace := output == src

	// First claim on an output path wins; a colliding later job skips
	// instead of racing the winner to the same path.
	if !j.Claims.Claim(output, src) {
		j.Log.Warn("Skipped %s, output %s claimed by another job", src, filepath.Base(output))
		j.Stats.AddSkipped()
		return
	}

	if !inPlace {
		if _, err := os.Stat(output); err == nil {
			j.Log.Warn("Skipped %s, output already exists", src)
			j.Stats.AddSkipped()
			return
		}
	}

	if j.DryRun {
		j.Log.Info("[DRY] Would compress %s -> %s", src, output)
		j.Stats.AddCompressed(0, 0)
		return
	}

	// In-place conversion: the source must move aside before the codec
	// can read it and write a new file at the original path.
	input := src
	if inPlace {
		input = src + ".tmp"
		if err := os.Rename(src, input); err != nil {
			j.Log.Error("Cannot move %s aside: %v", src, err)
			j.Stats.AddFailed()
			return
		}
	}

	var inSize int64
	if fi, err := os.Stat(input); err == nil {
		inSize = fi.Size()
	}

	j.Log.Info("Compressing %s..", output)

	var err error
	switch j.Entry.Type {
	case index.Image:
		err = j.Image.Compress(input, output)
	default:
		err = j.Stream.Compress(input, output, outExt)
	}
	if err != nil {
		// The moved-aside input stays on disk as-is.
		j.Log.Error("Compression of %s failed:\n%v", input, err)
		j.Stats.AddFailed()
		return
	}

	j.applyRetention(input, inPlace)

	var outSize int64
	if fi, err := os.Stat(output); err == nil {
		outSize = fi.Size()
	}
	j.Stats.AddCompressed(inSize, outSize)
	j.Log.Success("Compressed %s (%s -> %s)",
		filepath.Base(output), display.FormatBytes(inSize), display.FormatBytes(outSize))
}

// applyRetention disposes of the input file after a successful
// compression: delete it, keep it as a ".backup" sibling when it was
// moved aside, or leave it untouched. Retention failures are reported
// but never undo the successful compression.
func (j *Job) applyRetention(input string, inPlace bool) {
	if !j.Keep {
		if err := os.Remove(input); err != nil {
			j.Log.Error("Cannot remove original %s: %v", input, err)
		}
		return
	}
	if inPlace {
		backup := strings.TrimSuffix(input, ".tmp") + ".backup"
		if err := os.Rename(input, backup); err != nil {
			j.Log.Error("Cannot rename %s to backup: %v", input, err)
		}
	}
}
