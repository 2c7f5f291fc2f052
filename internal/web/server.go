// Package web is the browser front end: a single form that feeds the
// same pipeline as the CLI and serves the produced files back.
package web

import (
	"bytes"
	"context"
	"embed"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"ytshorts/internal/config"
	"ytshorts/internal/pipeline"
)

//go:embed templates/*.html
var templateFS embed.FS

type runFunc func(ctx context.Context, cfg pipeline.Config) (pipeline.Result, error)

type Server struct {
	cfg  config.Config
	run  runFunc
	tmpl *template.Template
}

func NewServer(cfg config.Config) *fiber.App {
	return newServer(cfg, pipeline.Run).app()
}

func newServer(cfg config.Config, run runFunc) *Server {
	return &Server{
		cfg:  cfg,
		run:  run,
		tmpl: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

func (s *Server) app() *fiber.App {
	app := fiber.New()

	app.Get("/", s.handleIndex)
	app.Post("/process", s.handleProcess)
	app.Get("/download/:name", s.handleDownload)

	return app
}

func (s *Server) render(c *fiber.Ctx, name string, data any) error {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}
