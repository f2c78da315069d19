package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/automaxprocs/maxprocs"

	web2pdf "github.com/alnah/go-web2pdf"
)

// Version is set at build time via ldflags.
var Version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags, err := parseFlags(args)
	if err != nil {
		return err
	}
	if flags.version {
		fmt.Println("web2pdf " + Version)
		return nil
	}

	logger := newLogger(flags.verbose)
	slog.SetDefault(logger)

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, a ...interface{}) {
		logger.Debug(fmt.Sprintf(format, a...))
	}))

	cfg, err := LoadConfig(flags.configPath)
	if err != nil {
		return err
	}
	cfg.ApplyFlags(flags)
	if cfg.Browser.Bin == "" {
		cfg.Browser.Bin = browserEnvOverride()
	}

	svc := web2pdf.New(
		web2pdf.WithBrowserBin(cfg.Browser.Bin),
		web2pdf.WithSandbox(cfg.Browser.Sandbox),
		web2pdf.WithLogger(logger),
	)
	limiter := web2pdf.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateWindow())

	var gate *web2pdf.RenderGate
	if cfg.Renders.MaxConcurrent != 0 {
		gate = web2pdf.NewRenderGate(web2pdf.ResolveGateSize(cfg.Renders.MaxConcurrent))
		logger.Info("render sessions bounded", "max", gate.Size())
	}

	if !flags.verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	srv, err := newServer(svc, limiter, gate, logger, cfg.Server.Environment)
	if err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()
	logger.Info("server listening", "addr", httpSrv.Addr, "version", Version)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}

// newLogger builds the process-wide structured logger.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
