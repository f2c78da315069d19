package web2pdf

import (
	"context"
	"log/slog"
)

// Service orchestrates the URL-to-PDF pipeline: stylesheet construction,
// the render session, and response assembly. One Service handles many
// concurrent requests; each request owns its own browser instance.
type Service struct {
	cfg      serviceConfig
	renderer pdfRenderer
	logger   *slog.Logger
}

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	browserBin string
	sandbox    bool
}

// Option configures a Service.
type Option func(*Service)

// WithBrowserBin points the session at a pre-installed browser binary
// (Docker/containerized environments) instead of rod's auto-resolved one.
func WithBrowserBin(path string) Option {
	return func(s *Service) {
		s.cfg.browserBin = path
	}
}

// WithSandbox re-enables the Chrome sandbox. It is off by default for
// CI and containerized environments.
func WithSandbox(enabled bool) Option {
	return func(s *Service) {
		s.cfg.sandbox = enabled
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New creates a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}
	// Create the render session factory if not injected (e.g., by tests)
	if s.renderer == nil {
		s.renderer = newRodSession(s.cfg.browserBin, s.cfg.sandbox, s.logger)
	}

	return s
}

// Render runs the full pipeline for one validated request and returns
// the generated document. Validation and rate limiting happen before
// this call; by the time Render fails, the browser instance and the
// temporary artifact are already gone.
func (s *Service) Render(ctx context.Context, req *RenderRequest) (*GeneratedDocument, error) {
	stylesheet := buildStylesheet(req)
	if stylesheet != "" {
		s.logger.Info("applying content-shaping stylesheet",
			"url", req.URL.String(), "bytes", len(stylesheet))
	}

	path, err := s.renderer.Render(ctx, req, stylesheet)
	if err != nil {
		return nil, err
	}

	doc, err := s.assemble(path, req.URL)
	if err != nil {
		return nil, err
	}

	s.logger.Info("PDF generated",
		"url", req.URL.String(), "bytes", len(doc.Data), "filename", doc.Filename)
	return doc, nil
}

// BrowserBin returns the configured browser binary override, if any.
func (s *Service) BrowserBin() string {
	return s.cfg.browserBin
}
