// Package organizer copies downloaded episode files into the library
// under their canonical names. Copies never overwrite; a lock file in
// the destination keeps concurrent runs from interleaving.
package organizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"shunt/internal/config"
	"shunt/internal/fileutil"
	"shunt/internal/library"
	"shunt/internal/logging"
	"shunt/internal/match"
	"shunt/internal/services"
	"shunt/internal/textutil"
)

// Summary aggregates the outcome of one copy or rename run.
type Summary struct {
	Scanned              int
	Copied               int
	SkippedExisting      int
	SkippedUnmapped      int
	SkippedLowConfidence int
	DryRun               bool
}

// Options controls one run.
type Options struct {
	SourceDir string
	DestDir   string
	DryRun    bool
}

// Organizer places source files into the library.
type Organizer struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New constructs an organizer.
func New(cfg *config.Config, logger *slog.Logger) *Organizer {
	return &Organizer{cfg: cfg, logger: logging.NewComponentLogger(logger, "organizer")}
}

// CopyMapped copies source files whose extracted titles appear in the
// mapping table, renaming them to the mapped target filename. Files
// without a mapping and targets that already exist are skipped and
// counted.
func (o *Organizer) CopyMapped(ctx context.Context, mappings []match.Mapping, opts Options) (*Summary, error) {
	index, conflicts := match.Index(mappings)
	for _, title := range conflicts {
		o.logger.Warn("duplicate mapping title ignored", logging.String("title", title))
	}
	if len(index) == 0 {
		return nil, errors.New("mapping table contains no target filenames")
	}

	stripper := match.NewPrefixStripper(o.cfg.Matching.SeriesPrefix)
	resolve := func(filename string) (string, bool) {
		raw := stripper.RawTitleFromFilename(filename)
		target, ok := index[textutil.Normalize(raw)]
		if !ok {
			o.logger.Warn("no mapping for source file",
				logging.String("file", filename),
				logging.String("extracted_title", raw))
		}
		return target, ok
	}
	summary, err := o.run(ctx, opts, resolve)
	if err != nil {
		return nil, err
	}
	summary.SkippedUnmapped = summary.Scanned - summary.Copied - summary.SkippedExisting - summary.SkippedLowConfidence
	return summary, nil
}

// RenameMatched copies source files straight off the catalog: each
// extracted title is fuzzy-matched and accepted matches land under the
// canonical filename. Low-confidence matches are skipped and counted.
func (o *Organizer) RenameMatched(ctx context.Context, matcher *match.Matcher, opts Options) (*Summary, error) {
	var lowConfidence int
	resolve := func(filename string) (string, bool) {
		raw, result := matcher.BestFilename(filename)
		if !result.Found {
			o.logger.Warn("no catalog match for source file",
				logging.String("file", filename),
				logging.String("extracted_title", raw))
			lowConfidence++
			return "", false
		}
		if !matcher.Accept(result.Score) {
			o.logger.Warn("match below threshold, skipping",
				logging.String("file", filename),
				logging.String("extracted_title", raw),
				logging.String("candidate", result.Episode.Title),
				logging.Float64("score", result.Score))
			lowConfidence++
			return "", false
		}
		o.logger.Info("matched source file",
			logging.String("file", filename),
			logging.String("candidate", result.Episode.Title),
			logging.Float64("score", result.Score))
		target := result.Episode.TargetFilename
		if target == "" {
			// Catalog entries loaded from partial exports may lack the
			// precomputed name.
			target = o.targetName(result)
		}
		return target, true
	}
	summary, err := o.run(ctx, opts, resolve)
	if err != nil {
		return nil, err
	}
	summary.SkippedLowConfidence = lowConfidence
	return summary, nil
}

func (o *Organizer) targetName(result match.Result) string {
	ep := result.Episode
	return fmt.Sprintf("%s %s - %s - %d - %s%s",
		o.cfg.Naming.SeriesLabel, ep.Code, ep.AirDateISO, ep.AbsEpisode,
		textutil.SanitizeFileName(ep.Title), o.cfg.Naming.Extension)
}

// run scans the source directory and copies every file the resolver
// maps to a target name.
func (o *Organizer) run(ctx context.Context, opts Options, resolve func(filename string) (string, bool)) (*Summary, error) {
	if opts.SourceDir == "" || opts.DestDir == "" {
		return nil, errors.New("source and destination directories required")
	}
	if err := os.MkdirAll(opts.DestDir, 0o755); err != nil {
		return nil, fmt.Errorf("create destination: %w", err)
	}

	if !opts.DryRun {
		if err := o.cfg.EnsureDirectories(); err != nil {
			return nil, fmt.Errorf("ensure directories: %w", err)
		}
		lock := flock.New(filepath.Join(o.cfg.Paths.DataDir, "organize.lock"))
		ok, err := lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("acquire library lock: %w", err)
		}
		if !ok {
			return nil, services.Wrap(services.ErrTransient, "organize", "lock",
				"another run is writing to this library", nil)
		}
		defer func() { _ = lock.Unlock() }()
	}

	sources, err := library.ScanVideos([]string{opts.SourceDir}, false)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Scanned: len(sources), DryRun: opts.DryRun}
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		filename := filepath.Base(src)
		target, ok := resolve(filename)
		if !ok {
			continue
		}
		dst := filepath.Join(opts.DestDir, target)
		if _, err := os.Stat(dst); err == nil {
			o.logger.Info("target already exists, skipping", logging.String("target", target))
			summary.SkippedExisting++
			continue
		}

		if opts.DryRun {
			o.logger.Info("dry-run would copy",
				logging.String("source", filename),
				logging.String("target", target))
			summary.Copied++
			continue
		}

		if err := fileutil.CopyFileVerified(src, dst); err != nil {
			return summary, services.Wrap(services.ErrTransient, "organize", "copy",
				fmt.Sprintf("copy %s", filename), err)
		}
		o.logger.Info("copied",
			logging.String("source", filename),
			logging.String("target", target))
		summary.Copied++
	}
	return summary, nil
}
