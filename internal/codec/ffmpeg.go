package codec

import (
	"bytes"
	"fmt"
	"os/exec"
	"sort"
)

// encoderFlags maps target extensions to the extra encoder arguments used
// for that container/codec combination. Extensions absent from the table
// are re-encoded with ffmpeg defaults (pass-through container change).
// Built once at startup and never mutated.
var encoderFlags = map[string][]string{
	// Audio, lossy. See: https://trac.ffmpeg.org/wiki/Encode/MP3
	"mp3": {"-qscale:a", "2"},
	// Audio, lossless. Maximum FLAC compression.
	"flac": {"-compression_level", "12"},
	// Video: H.265 at CRF 28.
	"mp4": {"-vcodec", "libx265", "-crf", "28"},
	"mkv": {"-vcodec", "libx265", "-crf", "28"},
	"mov": {"-vcodec", "libx265", "-crf", "28"},
	"avi": {"-vcodec", "libx265", "-crf", "28"},
}

// EncoderTargets returns the extensions with dedicated encoder flags,
// sorted. Used by --check diagnostics.
func EncoderTargets() []string {
	targets := make([]string, 0, len(encoderFlags))
	for ext := range encoderFlags {
		targets = append(targets, ext)
	}
	sort.Strings(targets)
	return targets
}

// ExecError is a failed external encoder invocation. Both captured
// streams are carried verbatim for diagnostics; they are never parsed
// for control flow.
type ExecError struct {
	Stdout string
	Stderr string
	Err    error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("ffmpeg execution failed: %v\nStdErr: %s\nStdOut: %s", e.Err, e.Stderr, e.Stdout)
}

func (e *ExecError) Unwrap() error { return e.Err }

// FFmpegAdapter re-encodes audio and video files through the external
// ffmpeg binary.
type FFmpegAdapter struct {
	bin string
}

// NewFFmpegAdapter returns an adapter that invokes "ffmpeg" from PATH.
func NewFFmpegAdapter() *FFmpegAdapter {
	return &FFmpegAdapter{bin: "ffmpeg"}
}

// buildArgs assembles the invocation: -i <input> <output> [flags] -y.
// Overwrite is always forced at the tool level; the orchestrator decides
// beforehand whether the output path may be written.
func buildArgs(input, output, ext string) []string {
	args := []string{"-i", input, output}
	args = append(args, encoderFlags[ext]...)
	return append(args, "-y")
}

// Compress runs one ffmpeg invocation for input→output using the encoder
// flags registered for ext. The call blocks its caller for the full
// encode; it is never cancelled or timed out. A non-zero exit status is
// returned as an *ExecError carrying both captured streams.
func (a *FFmpegAdapter) Compress(input, output, ext string) error {
	cmd := exec.Command(a.bin, buildArgs(input, output, ext)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &ExecError{
			Stdout: stdout.String(),
			Stderr: stderr.String(),
			Err:    err,
		}
	}
	return nil
}
