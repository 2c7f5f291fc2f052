package web

import (
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ytshorts/internal/pipeline"
)

const flashCookie = "flash"

type indexData struct {
	Notice string
	Aspect string
	FPS    int
}

type resultData struct {
	Files []string
}

func (s *Server) handleIndex(c *fiber.Ctx) error {
	notice := ""
	if v := c.Cookies(flashCookie); v != "" {
		notice, _ = url.QueryUnescape(v)
		clearFlash(c)
	}
	return s.render(c, "index.html", indexData{
		Notice: notice,
		Aspect: s.cfg.Aspect,
		FPS:    s.cfg.FPS,
	})
}

func (s *Server) handleProcess(c *fiber.Ctx) error {
	srcURL := strings.TrimSpace(c.FormValue("url"))
	segments := strings.TrimSpace(c.FormValue("segments"))
	aspect := strings.TrimSpace(c.FormValue("aspect"))
	resolution := strings.TrimSpace(c.FormValue("resolution"))
	fpsStr := strings.TrimSpace(c.FormValue("fps"))

	if srcURL == "" {
		return s.flashRedirect(c, "Vui lòng nhập link YouTube")
	}
	if segments == "" {
		return s.flashRedirect(c, "Vui lòng nhập khoảng cắt")
	}
	if aspect == "" {
		aspect = s.cfg.Aspect
	}
	fps := s.cfg.FPS
	if fpsStr != "" {
		n, err := strconv.Atoi(fpsStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "FPS không hợp lệ")
		}
		fps = n
	}

	workDir := filepath.Join(s.cfg.WorkDir, uuid.NewString())
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return err
	}
	defer os.RemoveAll(workDir)

	res, err := s.run(c.UserContext(), pipeline.Config{
		URL:        srcURL,
		Segments:   segments,
		Aspect:     aspect,
		Resolution: resolution,
		FPS:        fps,
		OutDir:     s.cfg.OutputDir,
		WorkDir:    workDir,
		YtdlpPath:  s.cfg.YtdlpPath,
		Logf:       log.Printf,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	files := make([]string, 0, len(res.Artifacts))
	for _, a := range res.Artifacts {
		files = append(files, filepath.Base(a.Path))
	}
	return s.render(c, "result.html", resultData{Files: files})
}

func (s *Server) handleDownload(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil || !safeName(name) {
		return fiber.ErrBadRequest
	}
	path := filepath.Join(s.cfg.OutputDir, name)
	if _, err := os.Stat(path); err != nil {
		return fiber.ErrNotFound
	}
	return c.Download(path)
}

// safeName admits plain file names only: no separators, no parent
// references, nothing the join could walk out of the output dir with.
func safeName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return name == filepath.Base(name)
}

func (s *Server) flashRedirect(c *fiber.Ctx, notice string) error {
	// cookie values cannot carry spaces or non-ASCII, so escape
	c.Cookie(&fiber.Cookie{
		Name:  flashCookie,
		Value: url.QueryEscape(notice),
		Path:  "/",
	})
	return c.Redirect("/", fiber.StatusFound)
}

func clearFlash(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:    flashCookie,
		Value:   "",
		Path:    "/",
		Expires: time.Now().Add(-time.Hour),
	})
}
