package web2pdf

import (
	"fmt"
	"strconv"
	"strings"
)

// pageSize holds paper dimensions in inches.
type pageSize struct {
	Width  float64
	Height float64
}

// pageFormats maps named formats to their dimensions. Chrome's print
// command only accepts inches, so named formats resolve here.
var pageFormats = map[string]pageSize{
	"letter":  {8.5, 11},
	"legal":   {8.5, 14},
	"tabloid": {11, 17},
	"ledger":  {17, 11},
	"a0":      {33.1, 46.8},
	"a1":      {23.4, 33.1},
	"a2":      {16.54, 23.4},
	"a3":      {11.7, 16.54},
	"a4":      {8.27, 11.7},
	"a5":      {5.83, 8.27},
	"a6":      {4.13, 5.83},
}

// lookupFormat resolves a named page format (case-insensitive).
func lookupFormat(name string) (pageSize, bool) {
	size, ok := pageFormats[strings.ToLower(name)]
	return size, ok
}

// Unit conversion factors to inches.
const (
	pxPerInch = 96.0
	mmPerInch = 25.4
	cmPerInch = 2.54
)

// parseDimension converts a CSS-style dimension string ("0.5in", "10mm",
// "2cm", "96px") to inches. A bare number is treated as pixels.
func parseDimension(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty dimension", ErrInvalidDimension)
	}

	factor := 1.0 / pxPerInch
	num := s
	switch {
	case strings.HasSuffix(s, "in"):
		factor = 1.0
		num = strings.TrimSuffix(s, "in")
	case strings.HasSuffix(s, "mm"):
		factor = 1.0 / mmPerInch
		num = strings.TrimSuffix(s, "mm")
	case strings.HasSuffix(s, "cm"):
		factor = 1.0 / cmPerInch
		num = strings.TrimSuffix(s, "cm")
	case strings.HasSuffix(s, "px"):
		num = strings.TrimSuffix(s, "px")
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDimension, s)
	}
	if value < 0 {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalidDimension, s)
	}
	return value * factor, nil
}
