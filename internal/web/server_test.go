package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ytshorts/internal/config"
	"ytshorts/internal/pipeline"
	"ytshorts/internal/types"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	tmp := t.TempDir()
	return config.Config{
		Port:      "8000",
		OutputDir: filepath.Join(tmp, "output"),
		WorkDir:   filepath.Join(tmp, "work"),
		FPS:       30,
		Aspect:    "9:16",
	}
}

func postForm(t *testing.T, values url.Values) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, "/process", strings.NewReader(values.Encode()))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestIndex(t *testing.T) {
	t.Parallel()

	app := newServer(testConfig(t), nil).app()

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `action="/process"`) {
		t.Fatalf("index page missing form: %s", body)
	}
}

func TestProcess_MissingURLRedirectsWithNotice(t *testing.T) {
	t.Parallel()

	app := newServer(testConfig(t), nil).app()

	resp, err := app.Test(postForm(t, url.Values{"segments": {"0:10"}}))
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("status = %d, want 302", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/" {
		t.Fatalf("location = %q, want /", loc)
	}
	cookie := resp.Header.Get("Set-Cookie")
	if !strings.Contains(cookie, flashCookie+"=") {
		t.Fatalf("expected flash cookie, got %q", cookie)
	}
	if !strings.Contains(cookie, url.QueryEscape("Vui lòng nhập link YouTube")) {
		t.Fatalf("unexpected notice cookie: %q", cookie)
	}
}

func TestProcess_MissingSegmentsRedirectsWithNotice(t *testing.T) {
	t.Parallel()

	app := newServer(testConfig(t), nil).app()

	resp, err := app.Test(postForm(t, url.Values{"url": {"https://youtube.com/watch?v=x"}}))
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("status = %d, want 302", resp.StatusCode)
	}
	cookie := resp.Header.Get("Set-Cookie")
	if !strings.Contains(cookie, url.QueryEscape("Vui lòng nhập khoảng cắt")) {
		t.Fatalf("unexpected notice cookie: %q", cookie)
	}
}

func TestProcess_RendersResultList(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	var gotCfg pipeline.Config
	fake := func(_ context.Context, pc pipeline.Config) (pipeline.Result, error) {
		gotCfg = pc
		return pipeline.Result{
			Duration: 50 * time.Second,
			Artifacts: []types.Artifact{
				{Index: 1, Path: filepath.Join(pc.OutDir, "clip_part1.mp4")},
				{Index: 2, Path: filepath.Join(pc.OutDir, "clip_part2.mp4")},
			},
		}, nil
	}
	app := newServer(cfg, fake).app()

	resp, err := app.Test(postForm(t, url.Values{
		"url":      {"https://youtube.com/watch?v=x"},
		"segments": {"0:10,30:45"},
		"aspect":   {"16:9"},
		"fps":      {"24"},
	}), int(5*time.Second/time.Millisecond))
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "clip_part1.mp4") || !strings.Contains(string(body), "/download/clip_part2.mp4") {
		t.Fatalf("result page missing artifacts: %s", body)
	}

	if gotCfg.Aspect != "16:9" || gotCfg.FPS != 24 {
		t.Fatalf("form values not forwarded: %+v", gotCfg)
	}
	if gotCfg.OutDir != cfg.OutputDir {
		t.Fatalf("out dir = %q, want %q", gotCfg.OutDir, cfg.OutputDir)
	}
	if !strings.HasPrefix(gotCfg.WorkDir, cfg.WorkDir) {
		t.Fatalf("work dir %q not under %q", gotCfg.WorkDir, cfg.WorkDir)
	}
	if _, err := os.Stat(gotCfg.WorkDir); !os.IsNotExist(err) {
		t.Fatalf("per-request work dir should be cleaned up, stat err=%v", err)
	}
}

func TestProcess_PipelineFailureIs500(t *testing.T) {
	t.Parallel()

	fake := func(_ context.Context, _ pipeline.Config) (pipeline.Result, error) {
		return pipeline.Result{}, errors.New("download failed: boom")
	}
	app := newServer(testConfig(t), fake).app()

	resp, err := app.Test(postForm(t, url.Values{
		"url":      {"https://youtube.com/watch?v=x"},
		"segments": {"0:10"},
	}))
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
}

func TestProcess_BadFPS(t *testing.T) {
	t.Parallel()

	app := newServer(testConfig(t), nil).app()

	resp, err := app.Test(postForm(t, url.Values{
		"url":      {"https://youtube.com/watch?v=x"},
		"segments": {"0:10"},
		"fps":      {"abc"},
	}))
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestDownload(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		t.Fatalf("mkdir output: %v", err)
	}
	if err := os.WriteFile(filepath.Join(cfg.OutputDir, "clip_part1.mp4"), []byte("data"), 0o644); err != nil {
		t.Fatalf("write clip: %v", err)
	}
	app := newServer(cfg, nil).app()

	t.Run("existing file served as attachment", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/download/clip_part1.mp4", nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("test request: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
			t.Fatalf("content-disposition = %q, want attachment", cd)
		}
	})

	t.Run("unknown file is 404", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/download/missing.mp4", nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("test request: %v", err)
		}
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", resp.StatusCode)
		}
	})

	t.Run("path traversal rejected", func(t *testing.T) {
		// double-encoded so the segment survives router path
		// normalization and reaches the handler intact
		req, _ := http.NewRequest(http.MethodGet, "/download/..%252F..%252Fetc%252Fpasswd", nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("test request: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
	})

	t.Run("plain traversal never serves a file", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/download/..%2Fclip_part1.mp4", nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("test request: %v", err)
		}
		if resp.StatusCode == http.StatusOK {
			t.Fatal("traversal request must not be served")
		}
	})
}

func TestSafeName(t *testing.T) {
	t.Parallel()

	good := []string{"clip_part1.mp4", "My_Video!!__part2.mp4"}
	for _, name := range good {
		if !safeName(name) {
			t.Fatalf("safeName(%q) = false, want true", name)
		}
	}
	bad := []string{"", ".", "..", "../x.mp4", "a/b.mp4", `a\b.mp4`}
	for _, name := range bad {
		if safeName(name) {
			t.Fatalf("safeName(%q) = true, want false", name)
		}
	}
}
