// Package pipeline orchestrates directory indexing, job dispatch across
// the worker pool, and batch summary reporting.
package pipeline

import (
	"context"
	"fmt"

	"github.com/backmassage/shrinkray/internal/codec"
	"github.com/backmassage/shrinkray/internal/config"
	"github.com/backmassage/shrinkray/internal/display"
	"github.com/backmassage/shrinkray/internal/index"
	"github.com/backmassage/shrinkray/internal/logging"
	"github.com/backmassage/shrinkray/internal/pool"
)

// Run is the top-level batch entry point: index the root, dispatch one
// job per entry to the worker pool, drain the pool, and log a summary.
// It returns an error only when indexing or pool setup fails; per-file
// failures are logged and absorbed. Cancelling ctx stops dispatch of
// further jobs but never interrupts work already submitted.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (*RunStats, error) {
	entries, err := index.Scan(cfg.Root, index.Extensions)
	if err != nil {
		return nil, fmt.Errorf("indexing %s: %w", cfg.Root, err)
	}

	stats := &RunStats{Total: len(entries)}
	log.Info("Starting compression of %d files..", len(entries))

	img := codec.NewImageAdapter(cfg.Quality)
	img.Initialize()
	defer img.Shutdown()
	ff := codec.NewFFmpegAdapter()

	p, err := pool.New(cfg.Threads)
	if err != nil {
		return nil, err
	}
	claims := NewClaimTable()

	for _, e := range entries {
		if ctx.Err() != nil {
			log.Warn("Interrupted, draining in-flight jobs")
			break
		}
		p.Submit(&Job{
			Entry:  e,
			Target: targetFor(cfg, e.Type),
			Keep:   cfg.KeepOriginals,
			DryRun: cfg.DryRun,
			Image:  img,
			Stream: ff,
			Log:    log,
			Stats:  stats,
			Claims: claims,
		})
	}
	p.Shutdown()

	logSummary(cfg, log, stats)
	return stats, nil
}

// targetFor selects the configured target for a media type.
func targetFor(cfg *config.Config, mt index.MediaType) config.Target {
	switch mt {
	case index.Image:
		return cfg.Image
	case index.Audio:
		return cfg.Audio
	default:
		return cfg.Video
	}
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	log.Info("Done: %d compressed, %d skipped, %d failed",
		stats.Compressed, stats.Skipped, stats.Failed)

	if cfg.DryRun {
		log.Info("Space saved: n/a (dry run)")
		return
	}

	saved := stats.SpaceSaved()
	if saved >= 0 {
		log.Success("Space saved: %s (input %s -> output %s)",
			display.FormatBytes(saved),
			display.FormatBytes(stats.InputBytes),
			display.FormatBytes(stats.OutputBytes))
	} else {
		log.Warn("Space saved: %s (overall output is larger)",
			display.FormatBytesWithSign(saved))
	}
}
