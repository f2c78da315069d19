package web2pdf

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ValidateURL parses raw and checks that it is a well-formed http or
// https URL with a non-empty host.
func ValidateURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: url parameter is required", ErrInvalidURL)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: scheme must be http or https, got %q", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	return u, nil
}

// ParseRenderRequest builds a fully-typed, range-checked RenderRequest
// from raw query parameters. Checks run in a fixed order (URL, timeout,
// wait time, scale, viewport width, viewport height) and the first
// violation wins; the checks themselves are independent.
func ParseRenderRequest(q url.Values) (*RenderRequest, error) {
	req := DefaultRenderRequest()

	u, err := ValidateURL(q.Get("url"))
	if err != nil {
		return nil, err
	}
	req.URL = u

	timeout, err := intParam(q, "timeout", DefaultTimeoutMs, ErrInvalidTimeout)
	if err != nil {
		return nil, err
	}
	if timeout < MinTimeoutMs || timeout > MaxTimeoutMs {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTimeout, timeout)
	}
	req.Timeout = time.Duration(timeout) * time.Millisecond

	waitTime, err := intParam(q, "waitTime", DefaultWaitTimeMs, ErrInvalidWaitTime)
	if err != nil {
		return nil, err
	}
	if waitTime < MinWaitTimeMs || waitTime > MaxWaitTimeMs {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWaitTime, waitTime)
	}
	req.WaitTime = time.Duration(waitTime) * time.Millisecond

	scale, err := floatParam(q, "scale", DefaultScale, ErrInvalidScale)
	if err != nil {
		return nil, err
	}
	if scale < MinScale || scale > MaxScale {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidScale, scale)
	}
	req.Scale = scale

	vw, err := intParam(q, "viewportWidth", DefaultViewportWidth, ErrInvalidViewportWidth)
	if err != nil {
		return nil, err
	}
	if vw < MinViewportWidth || vw > MaxViewportWidth {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidViewportWidth, vw)
	}
	req.ViewportWidth = vw

	vh, err := intParam(q, "viewportHeight", DefaultViewportHeight, ErrInvalidViewportHeight)
	if err != nil {
		return nil, err
	}
	if vh < MinViewportHeight || vh > MaxViewportHeight {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidViewportHeight, vh)
	}
	req.ViewportHeight = vh

	// Remaining parameters are unordered with respect to the fixed
	// check sequence above.
	dsf, err := floatParam(q, "deviceScaleFactor", DefaultDeviceScaleFactor, ErrInvalidDeviceScale)
	if err != nil {
		return nil, err
	}
	if dsf <= 0 {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidDeviceScale, dsf)
	}
	req.DeviceScaleFactor = dsf

	if err := parseBools(q, req); err != nil {
		return nil, err
	}
	if err := parseLayout(q, req); err != nil {
		return nil, err
	}

	req.PageRanges = q.Get("pageRanges")
	req.HideSelectors = splitList(q.Get("hideElements"))
	req.HideClasses = splitList(q.Get("hideClasses"))
	req.HideIDs = splitList(q.Get("hideIds"))
	req.HideTags = splitList(q.Get("hideTags"))
	req.BreakBefore = splitList(q.Get("pageBreakBefore"))
	req.BreakAfter = splitList(q.Get("pageBreakAfter"))
	req.KeepTogether = splitList(q.Get("keepTogether"))
	req.CustomCSS = q.Get("customCSS")

	return req, nil
}

// parseBools fills every boolean toggle, keeping defaults for absent
// parameters.
func parseBools(q url.Values, req *RenderRequest) error {
	for _, b := range []struct {
		name string
		dst  *bool
	}{
		{"displayHeaderFooter", &req.DisplayHeaderFooter},
		{"landscape", &req.Landscape},
		{"printBackground", &req.PrintBackground},
		{"preferCSSPageSize", &req.PreferCSSPageSize},
		{"enableJavaScript", &req.EnableJavaScript},
		{"waitForImages", &req.WaitForImages},
		{"waitForIframes", &req.WaitForIframes},
	} {
		raw := q.Get(b.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidBoolean, b.name, raw)
		}
		*b.dst = v
	}
	return nil
}

// parseLayout fills margins, the named format, and explicit dimensions.
func parseLayout(q url.Values, req *RenderRequest) error {
	for _, m := range []struct {
		name string
		def  string
		dst  *float64
	}{
		{"marginTop", DefaultMarginTop, &req.MarginTop},
		{"marginBottom", DefaultMarginBottom, &req.MarginBottom},
		{"marginLeft", DefaultMarginLeft, &req.MarginLeft},
		{"marginRight", DefaultMarginRight, &req.MarginRight},
	} {
		raw := q.Get(m.name)
		if raw == "" {
			raw = m.def
		}
		v, err := parseDimension(raw)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidMargin, m.name, raw)
		}
		*m.dst = v
	}

	if f := q.Get("format"); f != "" {
		if _, ok := lookupFormat(f); !ok {
			return fmt.Errorf("%w: %q", ErrInvalidFormat, f)
		}
		req.Format = f
	}

	// Explicit width+height take precedence over the named format; a
	// lone width or height is ignored.
	w, h := q.Get("width"), q.Get("height")
	if w != "" && h != "" {
		pw, err := parseDimension(w)
		if err != nil {
			return err
		}
		ph, err := parseDimension(h)
		if err != nil {
			return err
		}
		req.Width, req.Height = pw, ph
	}

	return nil
}

// intParam parses an optional integer parameter, wrapping parse failures
// in the given sentinel so an unparseable value surfaces as the same
// violation as an out-of-range one.
func intParam(q url.Values, name string, def int, sentinel error) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", sentinel, name, raw)
	}
	return v, nil
}

// floatParam parses an optional float parameter.
func floatParam(q url.Values, name string, def float64, sentinel error) (float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", sentinel, name, raw)
	}
	return v, nil
}

// splitList splits a comma-separated parameter, trimming whitespace and
// dropping empty entries. Order is preserved.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
