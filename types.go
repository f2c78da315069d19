package web2pdf

import (
	"net/url"
	"time"
)

// Timeout and wait bounds in milliseconds.
const (
	MinTimeoutMs  = 5000
	MaxTimeoutMs  = 180000
	MinWaitTimeMs = 0
	MaxWaitTimeMs = 30000
)

// Scale bounds.
const (
	MinScale = 0.1
	MaxScale = 2.0
)

// Viewport bounds in pixels.
const (
	MinViewportWidth  = 320
	MaxViewportWidth  = 4000
	MinViewportHeight = 240
	MaxViewportHeight = 4000
)

// Defaults applied when a query parameter is absent.
const (
	DefaultFormat            = "Letter"
	DefaultScale             = 0.9
	DefaultTimeoutMs         = 180000
	DefaultWaitTimeMs        = 2000
	DefaultViewportWidth     = 1280
	DefaultViewportHeight    = 720
	DefaultDeviceScaleFactor = 1.0
)

// Default margins as dimension strings, accepted by the margin
// parameters, with their numeric values in inches.
const (
	DefaultMarginTop    = "0.75in"
	DefaultMarginBottom = "0.5in"
	DefaultMarginLeft   = "0.2in"
	DefaultMarginRight  = "0.2in"

	defaultMarginTopIn    = 0.75
	defaultMarginBottomIn = 0.5
	defaultMarginLeftIn   = 0.2
	defaultMarginRightIn  = 0.2
)

// RenderRequest is an immutable, fully validated set of rendering
// parameters. Build one with ParseRenderRequest; a hand-built value
// bypasses range checks.
type RenderRequest struct {
	URL *url.URL

	// Layout.
	Landscape           bool
	Format              string  // named page format; ignored when Width and Height are both set
	Width               float64 // explicit page width in inches, 0 = unset
	Height              float64 // explicit page height in inches, 0 = unset
	MarginTop           float64 // inches
	MarginBottom        float64
	MarginLeft          float64
	MarginRight         float64
	Scale               float64
	PageRanges          string
	DisplayHeaderFooter bool
	PreferCSSPageSize   bool
	PrintBackground     bool

	// Viewport.
	ViewportWidth     int
	ViewportHeight    int
	DeviceScaleFactor float64

	// Behavior.
	EnableJavaScript bool
	Timeout          time.Duration
	WaitForImages    bool
	WaitForIframes   bool
	WaitTime         time.Duration

	// Content shaping. Each hide list produces display:none rules;
	// the break lists control pagination.
	HideSelectors []string
	HideClasses   []string
	HideIDs       []string
	HideTags      []string
	BreakBefore   []string
	BreakAfter    []string
	KeepTogether  []string

	// CustomCSS is appended verbatim, unescaped, after all generated
	// rules so it can override anything prior. This is a deliberate
	// trust boundary: the service performs no sanitization on
	// caller-supplied CSS.
	CustomCSS string
}

// DefaultRenderRequest returns a request with every parameter at its
// default and no target URL.
func DefaultRenderRequest() *RenderRequest {
	return &RenderRequest{
		Format:              DefaultFormat,
		MarginTop:           defaultMarginTopIn,
		MarginBottom:        defaultMarginBottomIn,
		MarginLeft:          defaultMarginLeftIn,
		MarginRight:         defaultMarginRightIn,
		Scale:               DefaultScale,
		PageRanges:          "",
		DisplayHeaderFooter: true,
		PrintBackground:     true,
		ViewportWidth:       DefaultViewportWidth,
		ViewportHeight:      DefaultViewportHeight,
		DeviceScaleFactor:   DefaultDeviceScaleFactor,
		EnableJavaScript:    true,
		Timeout:             DefaultTimeoutMs * time.Millisecond,
		WaitForImages:       true,
		WaitForIframes:      true,
		WaitTime:            DefaultWaitTimeMs * time.Millisecond,
	}
}

// HasExplicitSize reports whether explicit width and height override the
// named format. Both must be present; a lone width or height is ignored.
func (r *RenderRequest) HasExplicitSize() bool {
	return r.Width > 0 && r.Height > 0
}

// hasShaping reports whether any content-shaping field is set. When none
// are, no stylesheet is injected at all.
func (r *RenderRequest) hasShaping() bool {
	return len(r.HideSelectors) > 0 ||
		len(r.HideClasses) > 0 ||
		len(r.HideIDs) > 0 ||
		len(r.HideTags) > 0 ||
		len(r.BreakBefore) > 0 ||
		len(r.BreakAfter) > 0 ||
		len(r.KeepTogether) > 0 ||
		r.CustomCSS != ""
}

// GeneratedDocument is the transient result of a render: the PDF bytes
// and a suggested download filename. The temporary on-disk artifact it
// was read from is already deleted by the time a value exists.
type GeneratedDocument struct {
	Data     []byte
	Filename string
}
