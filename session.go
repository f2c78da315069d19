package web2pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-web2pdf/internal/fileutil"
)

// pdfRenderer abstracts the render session to enable testing without a
// browser. Render returns the path of a temporary PDF artifact; the
// caller owns its deletion.
type pdfRenderer interface {
	Render(ctx context.Context, req *RenderRequest, stylesheet string) (string, error)
}

// Compile-time interface check.
var _ pdfRenderer = (*rodSession)(nil)

// Fixed sub-wait caps. Navigation honors the validated per-request
// timeout; everything else is individually bounded so no request can
// hang indefinitely.
const (
	networkIdleTimeout  = 5 * time.Second
	networkIdleQuiet    = 300 * time.Millisecond
	styleInjectTimeout  = 5 * time.Second
	settleScriptTimeout = 30 * time.Second
)

// userAgentFormat is a fixed Chrome user agent carrying a viewport
// marker so target pages serve the desktop layout being rendered.
const userAgentFormat = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 PDF-Generator Viewport-%dx%d"

// Header and footer templates used when displayHeaderFooter is set.
const (
	headerTemplate = `<span class="title"></span>`
	footerTemplate = `<span class="pageNumber"></span> of <span class="totalPages"></span>`
)

// rodSession renders one URL per call, each call owning an isolated
// headless Chrome instance from launch to unconditional teardown.
// Rod automatically downloads Chromium on first run if not found.
type rodSession struct {
	bin     string // explicit browser binary, "" = auto-resolve
	sandbox bool
	logger  *slog.Logger
}

// newRodSession creates a session factory with the given browser
// configuration.
func newRodSession(bin string, sandbox bool, logger *slog.Logger) *rodSession {
	if logger == nil {
		logger = slog.Default()
	}
	return &rodSession{bin: bin, sandbox: sandbox, logger: logger}
}

// Render runs the full session lifecycle: launch, configure, navigate,
// inject styles, settle dynamic content, emit the PDF, tear down. The
// browser is terminated on every exit path; teardown errors are logged,
// never returned, so they cannot mask the original failure.
func (s *rodSession) Render(ctx context.Context, req *RenderRequest, stylesheet string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser, err := s.launch(req)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := browser.Close(); cerr != nil {
			s.logger.Warn("browser teardown failed", "error", cerr)
		}
	}()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	if err := s.configure(page, req); err != nil {
		return "", err
	}
	if err := s.navigate(page, req); err != nil {
		return "", err
	}
	s.inject(page, stylesheet)
	s.settle(page, req)
	return s.emit(page, req)
}

// launch starts an isolated headless browser bound to the requested
// viewport geometry.
func (s *rodSession) launch(req *RenderRequest) (*rod.Browser, error) {
	l := launcher.New().
		Headless(true).
		Set("disable-dev-shm-usage").
		Set("disable-web-security").
		Set("disable-features", "VizDisplayCompositor").
		Set("window-size", fmt.Sprintf("%d,%d", req.ViewportWidth, req.ViewportHeight))

	if s.bin != "" {
		l = l.Bin(s.bin)
	}
	if !s.sandbox {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserLaunch, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserLaunch, err)
	}
	return browser, nil
}

// configure applies viewport, print-media emulation, the fixed user
// agent, the JavaScript toggle, and the per-navigation timeout.
func (s *rodSession) configure(page *rod.Page, req *RenderRequest) error {
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             req.ViewportWidth,
		Height:            req.ViewportHeight,
		DeviceScaleFactor: req.DeviceScaleFactor,
		Mobile:            false,
	}); err != nil {
		return fmt.Errorf("%w: setting viewport: %v", ErrPageCreate, err)
	}

	if err := (proto.EmulationSetEmulatedMedia{Media: "print"}).Call(page); err != nil {
		return fmt.Errorf("%w: emulating print media: %v", ErrPageCreate, err)
	}

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent: fmt.Sprintf(userAgentFormat, req.ViewportWidth, req.ViewportHeight),
	}); err != nil {
		return fmt.Errorf("%w: setting user agent: %v", ErrPageCreate, err)
	}

	if !req.EnableJavaScript {
		if err := (proto.EmulationSetScriptExecutionDisabled{Value: true}).Call(page); err != nil {
			return fmt.Errorf("%w: disabling JavaScript: %v", ErrPageCreate, err)
		}
	}

	return nil
}

// navigate loads the target URL and waits for load completion plus a
// network-idle quiet period, all within the validated timeout.
func (s *rodSession) navigate(page *rod.Page, req *RenderRequest) error {
	p := page.Timeout(req.Timeout)
	if err := p.Navigate(req.URL.String()); err != nil {
		return classifyNavigationError(err)
	}
	if err := p.WaitLoad(); err != nil {
		return classifyNavigationError(err)
	}
	p.WaitRequestIdle(networkIdleQuiet, nil, nil, nil)()
	return nil
}

// classifyNavigationError maps a rod navigation failure onto the error
// taxonomy: deadline expiry is a timeout, Chrome network errors
// (net::ERR_*) mean the target is unreachable, anything else is a page
// load failure.
func classifyNavigationError(err error) error {
	msg := err.Error()
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrNavigationTimeout, err)
	case strings.Contains(msg, "net::") || strings.Contains(msg, "ERR_"):
		return fmt.Errorf("%w: %v", ErrTargetUnreachable, err)
	default:
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
}

// inject adds the built stylesheet as a single style tag. Best-effort:
// a failure is logged and rendering proceeds unstyled.
func (s *rodSession) inject(page *rod.Page, stylesheet string) {
	if stylesheet == "" {
		return
	}
	if err := page.Timeout(styleInjectTimeout).AddStyleTag("", stylesheet); err != nil {
		s.logger.Warn("stylesheet injection failed", "error", err)
	}
}

// emit prints the current page to a PDF and writes it to a temporary
// artifact. The caller owns deletion of the returned path.
func (s *rodSession) emit(page *rod.Page, req *RenderRequest) (string, error) {
	reader, err := page.PDF(buildPrintOptions(req))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	path := fileutil.TempArtifactPath("pdf")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("%w: writing artifact: %v", ErrPDFGeneration, err)
	}
	return path, nil
}

// buildPrintOptions translates the layout fields of req into Chrome
// print options. Explicit width+height take precedence over the named
// format; with only a format, its dimensions apply.
func buildPrintOptions(req *RenderRequest) *proto.PagePrintToPDF {
	opts := &proto.PagePrintToPDF{
		Landscape:         req.Landscape,
		PrintBackground:   req.PrintBackground,
		PreferCSSPageSize: req.PreferCSSPageSize,
		Scale:             floatPtr(req.Scale),
		MarginTop:         floatPtr(req.MarginTop),
		MarginBottom:      floatPtr(req.MarginBottom),
		MarginLeft:        floatPtr(req.MarginLeft),
		MarginRight:       floatPtr(req.MarginRight),
		PageRanges:        req.PageRanges,
	}

	if req.HasExplicitSize() {
		opts.PaperWidth = floatPtr(req.Width)
		opts.PaperHeight = floatPtr(req.Height)
	} else if size, ok := lookupFormat(req.Format); ok {
		opts.PaperWidth = floatPtr(size.Width)
		opts.PaperHeight = floatPtr(size.Height)
	}

	if req.DisplayHeaderFooter {
		opts.DisplayHeaderFooter = true
		opts.HeaderTemplate = headerTemplate
		opts.FooterTemplate = footerTemplate
	}

	return opts
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
