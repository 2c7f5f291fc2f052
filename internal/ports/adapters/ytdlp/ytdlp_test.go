package ytdlp

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindDownloaded(t *testing.T) {
	t.Parallel()

	touch := func(t *testing.T, dir, name string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	t.Run("prefers mp4 over other containers", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		touch(t, dir, "a.webm")
		touch(t, dir, "b.mp4")

		got, err := findDownloaded(dir)
		if err != nil {
			t.Fatalf("findDownloaded: %v", err)
		}
		if filepath.Base(got) != "b.mp4" {
			t.Fatalf("findDownloaded = %s, want b.mp4", got)
		}
	})

	t.Run("falls back to webm", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		touch(t, dir, "clip.webm")
		touch(t, dir, "clip.description")

		got, err := findDownloaded(dir)
		if err != nil {
			t.Fatalf("findDownloaded: %v", err)
		}
		if filepath.Base(got) != "clip.webm" {
			t.Fatalf("findDownloaded = %s, want clip.webm", got)
		}
	})

	t.Run("empty dir is an error", func(t *testing.T) {
		t.Parallel()

		if _, err := findDownloaded(t.TempDir()); err == nil {
			t.Fatal("expected error for empty dir")
		}
	})
}

func TestNew_DefaultBinary(t *testing.T) {
	t.Parallel()

	if a := New(""); a.bin != "yt-dlp" {
		t.Fatalf("default binary = %q, want yt-dlp", a.bin)
	}
	if a := New("/opt/bin/yt-dlp"); a.bin != "/opt/bin/yt-dlp" {
		t.Fatalf("binary = %q, want /opt/bin/yt-dlp", a.bin)
	}
}
