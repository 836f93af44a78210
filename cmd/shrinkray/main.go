// Command shrinkray is the CLI entrypoint for the shrinkray media
// recompressor. It binds flags into config, validates, and runs either
// system diagnostics (--check) or the compression pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/backmassage/shrinkray/internal/check"
	"github.com/backmassage/shrinkray/internal/config"
	"github.com/backmassage/shrinkray/internal/display"
	"github.com/backmassage/shrinkray/internal/logging"
	"github.com/backmassage/shrinkray/internal/pipeline"
)

// version is injected at build time via -ldflags.
var version = "1.0.0-dev"

// keepExtension is the sentinel a bare media-type flag resolves to,
// meaning "compress but keep each file's extension".
const keepExtension = "keep"

func main() {
	cfg := config.DefaultConfig()
	cmd := newRootCmd(&cfg)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "shrinkray: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shrinkray [directory]",
		Short: "Recompress media files in place",
		Long: `shrinkray walks a directory tree, classifies files by media type from
their extension, and recompresses each file across a fixed pool of
workers. Images are compressed in-process; audio and video are
re-encoded through ffmpeg.

A media type is only processed when its flag is present: the bare flag
(--image) keeps each file's extension, the =EXT form (--image=webp)
converts to that extension. Failed files are logged and skipped.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyTargets(cmd, cfg)
			if len(args) == 1 {
				cfg.Root = config.NormalizeDirArg(args[0])
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runPipeline(cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringP("image", "i", "", "Compress image files; --image=EXT converts (e.g. --image=webp)")
	flags.StringP("audio", "a", "", "Compress audio files; --audio=EXT converts (e.g. --audio=mp3)")
	flags.StringP("video", "v", "", "Compress video files; --video=EXT converts (e.g. --video=mkv)")
	for _, name := range []string{"image", "audio", "video"} {
		flags.Lookup(name).NoOptDefVal = keepExtension
	}
	flags.BoolVarP(&cfg.KeepOriginals, "keep-files", "k", false, "Keep originals; overwritten sources become .backup files")
	flags.IntVarP(&cfg.Quality, "quality", "q", 0, "Image compression quality (1-100)")
	flags.IntVarP(&cfg.Threads, "threads", "t", cfg.Threads, "Number of worker threads")
	flags.BoolVarP(&cfg.DryRun, "dry-run", "d", false, "Preview only; do not write or delete anything")
	flags.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	flags.StringVarP(&cfg.LogFile, "log", "l", "", "Append logs to file")
	flags.StringVar((*string)(&cfg.ColorMode), "color", string(cfg.ColorMode), "Color mode: auto | always | never")
	flags.BoolVarP(&cfg.CheckOnly, "check", "c", false, "Run system diagnostics and exit")

	cmd.Version = version
	cmd.SetVersionTemplate("shrinkray {{.Version}}\n")
	return cmd
}

// applyTargets copies the three media-type flags into cfg. An untouched
// flag leaves its media type disabled entirely.
func applyTargets(cmd *cobra.Command, cfg *config.Config) {
	bind := func(name string, t *config.Target) {
		f := cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			return
		}
		t.Enabled = true
		if v := f.Value.String(); v != keepExtension {
			t.Ext = v
		}
	}
	bind("image", &cfg.Image)
	bind("audio", &cfg.Audio)
	bind("video", &cfg.Video)
}

func runPipeline(cfg *config.Config) error {
	log, err := logging.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	display.PrintBanner()

	if cfg.CheckOnly {
		check.RunCheck(log)
		return nil
	}

	// Canonicalization failure is fatal; everything after this point
	// works on the resolved path.
	rootAbs, err := absPath(cfg.Root)
	if err != nil {
		return fmt.Errorf("cannot resolve directory %q: %w", cfg.Root, err)
	}
	cfg.Root = rootAbs

	if err := check.CheckDeps(cfg); err != nil {
		log.Warn("%v; audio/video files will fail individually", err)
	}

	// SIGINT/SIGTERM stop dispatch of new jobs; submitted work always
	// drains. Exit status stays 0 even when individual files failed.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, finishing in-flight files..")
		cancel()
	}()

	if _, err := pipeline.Run(ctx, cfg, log); err != nil {
		return err
	}
	log.Info("Operation completed.")
	return nil
}

// absPath returns the absolute path with symlinks resolved.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
