// Package ytdlp adapts the yt-dlp extractor to the Downloader port.
package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// ErrDownloadFailed wraps every resolution/network/extraction failure
// from the external downloader.
var ErrDownloadFailed = errors.New("download failed")

type Adapter struct {
	bin string
}

func New(bin string) *Adapter {
	if bin == "" {
		bin = "yt-dlp"
	}
	return &Adapter{bin: bin}
}

// Download fetches the best pre-muxed video+audio stream, preferring an
// mp4 container, into destDir. destDir is expected to be a fresh
// directory owned by the caller; the produced file is located by
// scanning it afterwards.
func (a *Adapter) Download(ctx context.Context, url, destDir string) (string, error) {
	cmd := exec.CommandContext(ctx, a.bin,
		"-f", "best[ext=mp4]/best",
		"-o", filepath.Join(destDir, "%(title)s.%(ext)s"),
		"--no-playlist",
		"--quiet",
		url,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%w: %v\n%s", ErrDownloadFailed, err, strings.TrimSpace(string(b)))
	}

	path, err := findDownloaded(destDir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	return path, nil
}

// findDownloaded returns the media file yt-dlp left in dir, preferring
// mp4 when the extractor produced more than one container.
func findDownloaded(dir string) (string, error) {
	var candidates []string
	for _, ext := range []string{".mp4", ".webm", ".mkv"} {
		matches, err := filepath.Glob(filepath.Join(dir, "*"+ext))
		if err != nil {
			return "", err
		}
		sort.Strings(matches)
		candidates = append(candidates, matches...)
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no media file found in %s", dir)
	}
	return candidates[0], nil
}
