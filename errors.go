package web2pdf

import "errors"

// Sentinel errors for library operations.
var (
	// Request validation errors. Detected before any browser resource is
	// acquired.
	ErrInvalidURL            = errors.New("invalid URL format")
	ErrInvalidTimeout        = errors.New("timeout must be between 5000 and 180000 milliseconds")
	ErrInvalidWaitTime       = errors.New("wait time must be between 0 and 30000 milliseconds")
	ErrInvalidScale          = errors.New("scale must be between 0.1 and 2.0")
	ErrInvalidViewportWidth  = errors.New("viewport width must be between 320 and 4000 pixels")
	ErrInvalidViewportHeight = errors.New("viewport height must be between 240 and 4000 pixels")
	ErrInvalidDeviceScale    = errors.New("invalid device scale factor")
	ErrInvalidMargin         = errors.New("invalid margin")
	ErrInvalidFormat         = errors.New("invalid page format")
	ErrInvalidDimension      = errors.New("invalid page dimension")
	ErrInvalidBoolean        = errors.New("invalid boolean parameter")

	// Rate limiting.
	ErrRateLimited = errors.New("rate limit exceeded")

	// Render session errors.
	ErrBrowserLaunch     = errors.New("failed to launch browser")
	ErrPageCreate        = errors.New("failed to create browser page")
	ErrNavigationTimeout = errors.New("navigation timed out")
	ErrTargetUnreachable = errors.New("unable to reach target URL")
	ErrPageLoad          = errors.New("failed to load page")
	ErrPDFGeneration     = errors.New("PDF generation failed")

	// Response assembly errors.
	ErrReadDocument = errors.New("failed to read generated PDF")
	ErrEmptyPDF     = errors.New("generated PDF is empty")
)

// validationErrors lists every error ParseRenderRequest can return.
var validationErrors = []error{
	ErrInvalidURL,
	ErrInvalidTimeout,
	ErrInvalidWaitTime,
	ErrInvalidScale,
	ErrInvalidViewportWidth,
	ErrInvalidViewportHeight,
	ErrInvalidDeviceScale,
	ErrInvalidMargin,
	ErrInvalidFormat,
	ErrInvalidDimension,
	ErrInvalidBoolean,
}

// IsValidationError reports whether err stems from request validation,
// as opposed to a failure inside or after the render session.
func IsValidationError(err error) bool {
	for _, verr := range validationErrors {
		if errors.Is(err, verr) {
			return true
		}
	}
	return false
}
