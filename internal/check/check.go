// Package check provides system diagnostics (--check mode) and
// pre-pipeline dependency validation for the external ffmpeg encoder.
package check

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/backmassage/shrinkray/internal/codec"
	"github.com/backmassage/shrinkray/internal/config"
)

// ErrFfmpegNotFound is returned by CheckDeps when an audio or video
// target is configured but ffmpeg is missing from PATH.
var ErrFfmpegNotFound = errors.New("ffmpeg not found on PATH")

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck runs the interactive --check flow: ffmpeg availability and
// version, encoder availability for each flagged target extension, and
// the in-process image formats. Informational only; it does not stop on
// failure.
func RunCheck(log Logger) {
	log.Info("=== System Check ===")

	checkFfmpeg(log)
	checkEncoders(log)
	checkImageFormats(log)
}

// checkFfmpeg verifies ffmpeg is on PATH and logs its version string.
func checkFfmpeg(log Logger) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		log.Error("ffmpeg not found (audio/video compression unavailable)")
		return
	}
	cmd := exec.Command("ffmpeg", "-version")
	out, err := cmd.Output()
	if err != nil {
		log.Warn("ffmpeg found but -version failed: %v", err)
		return
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("ffmpeg: %s", firstLine)
}

// checkEncoders lists which of the flagged target extensions have their
// encoder available in this ffmpeg build.
func checkEncoders(log Logger) {
	cmd := exec.Command("ffmpeg", "-hide_banner", "-encoders")
	out, err := cmd.Output()
	if err != nil {
		log.Warn("Could not list encoders: %v", err)
		return
	}
	encoders := string(out)

	log.Info("Encoder targets:")
	for _, ext := range codec.EncoderTargets() {
		needed := encoderFor(ext)
		if needed == "" || strings.Contains(encoders, needed) {
			log.Success("  %s: ok", ext)
		} else {
			log.Warn("  %s: encoder %s not available", ext, needed)
		}
	}
}

// encoderFor names the ffmpeg encoder a flagged extension relies on.
func encoderFor(ext string) string {
	switch ext {
	case "mp4", "mkv", "mov", "avi":
		return "libx265"
	case "flac":
		return "flac"
	case "mp3":
		return "mp3"
	}
	return ""
}

// checkImageFormats lists the formats the in-process image codec can
// write; no external tool is involved.
func checkImageFormats(log Logger) {
	log.Info("Image codec (in-process):")
	log.Success("  write formats: jpg jpeg png gif tif tiff bmp")
}

// CheckDeps is the pre-pipeline validation: when an audio or video target
// is enabled, ffmpeg must be on PATH. Images compress in-process and need
// no external tool.
func CheckDeps(cfg *config.Config) error {
	if !cfg.Audio.Enabled && !cfg.Video.Enabled {
		return nil
	}
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return ErrFfmpegNotFound
	}
	return nil
}
