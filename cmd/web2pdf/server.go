package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-rod/rod/lib/launcher"

	web2pdf "github.com/alnah/go-web2pdf"
	"github.com/alnah/go-web2pdf/internal/fileutil"
)

// renderService is what the handlers need from the conversion library.
type renderService interface {
	Render(ctx context.Context, req *web2pdf.RenderRequest) (*web2pdf.GeneratedDocument, error)
	Inspect(ctx context.Context, rawURL string, timeout time.Duration) (*web2pdf.PageInventory, error)
	BrowserBin() string
}

var _ renderService = (*web2pdf.Service)(nil)

// server wires the HTTP routes to the conversion service.
type server struct {
	svc     renderService
	limiter *web2pdf.RateLimiter
	gate    *web2pdf.RenderGate
	logger  *slog.Logger
	env     string
	docs    []byte
}

func newServer(svc renderService, limiter *web2pdf.RateLimiter, gate *web2pdf.RenderGate, logger *slog.Logger, env string) (*server, error) {
	docs, err := renderDocsPage()
	if err != nil {
		return nil, err
	}
	return &server{
		svc:     svc,
		limiter: limiter,
		gate:    gate,
		logger:  logger,
		env:     env,
		docs:    docs,
	}, nil
}

// routes builds the gin engine with recovery, request logging and CORS.
func (s *server) routes() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(s.requestLogger())
	engine.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))

	engine.GET("/", s.handleRoot)
	engine.GET("/docs", s.handleDocs)
	engine.GET("/health", s.handleHealth)
	engine.GET("/pdf", s.handlePDF)
	engine.GET("/inspect", s.handleInspect)
	return engine
}

func (s *server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"client", c.ClientIP(),
			"duration", time.Since(start),
		)
	}
}

// resolveBrowserPath returns the browser binary the render sessions
// will use, preferring an explicit override over the system lookup.
func resolveBrowserPath(bin string) (string, error) {
	if bin != "" {
		if !fileutil.FileExists(bin) {
			return "", errors.New("configured browser binary not found: " + bin)
		}
		return bin, nil
	}
	if path, found := launcher.LookPath(); found {
		return path, nil
	}
	return "", errors.New("no Chrome or Chromium binary found on this host")
}

// browserEnvOverride lets deployments point at a system browser without
// flags, matching common container setups.
func browserEnvOverride() string {
	return os.Getenv("WEB2PDF_BROWSER_BIN")
}
