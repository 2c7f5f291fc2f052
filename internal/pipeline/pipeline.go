package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"ytshorts/internal/domain/geometry"
	"ytshorts/internal/domain/timespec"
	"ytshorts/internal/ports"
	"ytshorts/internal/ports/adapters/ffmpeg"
	"ytshorts/internal/ports/adapters/ytdlp"
	"ytshorts/internal/types"
	"ytshorts/internal/usecase"
)

// ErrNoValidSegments means every requested segment was dropped by
// clamping, or the spec was empty. Front ends treat it as a usage error.
var ErrNoValidSegments = errors.New("no valid segments")

const maxPrefixLen = 60

type Config struct {
	URL string
	// Segments is the raw range spec. When empty, PromptSegments is asked
	// for one after the duration is known; without a prompt the run fails.
	Segments       string
	PromptSegments func(duration time.Duration) (string, error)

	Aspect     string
	Resolution string
	FPS        int
	OutDir     string

	// KeepSource moves the downloaded file into OutDir as
	// {prefix}_source.mp4 instead of leaving it to be discarded with the
	// work dir. Rename failures are logged, never fatal.
	KeepSource bool

	// WorkDir receives the downloaded source file. The caller owns its
	// lifecycle and cleanup.
	WorkDir string

	YtdlpPath string
	Logf      func(format string, args ...any)
}

func (c Config) Validate() error {
	if c.URL == "" {
		return errors.New("url is empty")
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be > 0")
	}
	if c.WorkDir == "" {
		return errors.New("work dir is empty")
	}
	if c.OutDir == "" {
		return errors.New("output dir is empty")
	}
	_, err := geometry.ParseRatio(c.Aspect)
	return err
}

type Result struct {
	SourcePath string
	Duration   time.Duration
	Artifacts  []types.Artifact
}

type deps struct {
	video      ports.VideoTool
	downloader ports.Downloader
}

// Run downloads the source, parses the segment spec against its actual
// duration and renders one clip per surviving segment into cfg.OutDir.
func Run(ctx context.Context, cfg Config) (Result, error) {
	return run(ctx, cfg, deps{
		video:      ffmpeg.New(),
		downloader: ytdlp.New(cfg.YtdlpPath),
	})
}

func run(ctx context.Context, cfg Config, d deps) (Result, error) {
	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	if err := cfg.Validate(); err != nil {
		return Result{}, fmt.Errorf("config: %w", err)
	}
	aspect, err := geometry.ParseRatio(cfg.Aspect)
	if err != nil {
		return Result{}, err
	}
	resolution, err := geometry.ResolveResolution(cfg.Resolution, aspect)
	if err != nil {
		return Result{}, err
	}
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return Result{}, err
	}

	logf("downloading %s", cfg.URL)
	src, err := d.downloader.Download(ctx, cfg.URL, cfg.WorkDir)
	if err != nil {
		return Result{}, err
	}
	media, err := d.video.Probe(ctx, src)
	if err != nil {
		return Result{}, err
	}
	logf("downloaded %s (%.2fs)", filepath.Base(src), media.Duration.Seconds())

	spec := strings.TrimSpace(cfg.Segments)
	if spec == "" {
		if cfg.PromptSegments == nil {
			return Result{}, fmt.Errorf("%w: no segment spec given", ErrNoValidSegments)
		}
		spec, err = cfg.PromptSegments(media.Duration)
		if err != nil {
			return Result{}, err
		}
		spec = strings.TrimSpace(spec)
	}

	segments, err := timespec.ParseSegments(spec, media.Duration)
	if err != nil {
		return Result{}, err
	}
	if len(segments) == 0 {
		return Result{}, ErrNoValidSegments
	}

	prefix := InferPrefix(src)
	uc := usecase.New(usecase.Deps{Video: d.video})
	res, err := uc.Run(ctx, usecase.Input{
		SourcePath: src,
		Media:      media,
		Segments:   segments,
		Aspect:     aspect,
		Resolution: resolution,
		FPS:        cfg.FPS,
		OutDir:     cfg.OutDir,
		Prefix:     prefix,
		Logf:       logf,
	})
	if err != nil {
		return Result{}, err
	}

	if cfg.KeepSource {
		kept := filepath.Join(cfg.OutDir, prefix+"_source.mp4")
		if err := os.Rename(src, kept); err != nil {
			logf("warning: keep source: %v", err)
		} else {
			src = kept
		}
	}

	return Result{
		SourcePath: src,
		Duration:   media.Duration,
		Artifacts:  res.Artifacts,
	}, nil
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// InferPrefix derives the output-file prefix from the source filename:
// the stem with whitespace runs collapsed to underscores, truncated to
// 60 characters. No other characters are filtered.
func InferPrefix(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	stem = whitespaceRe.ReplaceAllString(stem, "_")
	if r := []rune(stem); len(r) > maxPrefixLen {
		return string(r[:maxPrefixLen])
	}
	return stem
}

// ensure adapters implement ports
var _ ports.VideoTool = (*ffmpeg.Adapter)(nil)
var _ ports.Downloader = (*ytdlp.Adapter)(nil)
