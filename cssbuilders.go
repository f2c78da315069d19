package web2pdf

import (
	"fmt"
	"strings"
)

// containerSelectors are common page-width containers pinned to the
// viewport width so the page reflows to the rendering width instead of
// its responsive default.
const containerSelectors = ".container, .main, #main, #content, .content"

// printDefaults are fixed baseline rules applied inside the print-media
// wrapper: exact color reproduction, readable body typography, and
// pagination protection for headings, images, tables, and block quotes.
const printDefaults = `
/* Print defaults */
* {
  -webkit-print-color-adjust: exact !important;
  color-adjust: exact !important;
}
body {
  font-size: 12pt;
  line-height: 1.4;
}
h1, h2, h3, h4, h5, h6 {
  break-after: avoid !important;
  page-break-after: avoid !important;
}
p, li {
  orphans: 3;
  widows: 3;
}
img {
  max-width: 100% !important;
  break-inside: avoid !important;
  page-break-inside: avoid !important;
}
table {
  break-inside: avoid !important;
  page-break-inside: avoid !important;
}
pre, blockquote {
  break-inside: avoid !important;
  page-break-inside: avoid !important;
}
`

// buildStylesheet translates the content-shaping fields of req into a
// single stylesheet. Rule emission order is fixed and deterministic:
// width-lock rules, hide rules (selectors, classes, ids, tags), page
// break rules (before, after, keep-together), then the raw custom CSS
// block verbatim. The whole set is wrapped once for print media with the
// baseline print defaults and re-emitted unscoped for screen media.
//
// Returns the empty string when no shaping field is set, in which case
// no stylesheet is injected at all.
//
// The custom CSS block is intentionally appended unescaped and
// unsanitized so callers can override any generated rule; see
// RenderRequest.CustomCSS.
func buildStylesheet(req *RenderRequest) string {
	if !req.hasShaping() {
		return ""
	}

	rules := buildShapingRules(req)
	joined := strings.Join(rules, "\n")

	var buf strings.Builder
	buf.WriteString("@media print {\n")
	buf.WriteString(joined)
	buf.WriteString("\n")
	buf.WriteString(printDefaults)
	buf.WriteString("}\n\n")

	// Re-emit unscoped so the screen rendering the PDF is printed from
	// matches what the rules shaped.
	buf.WriteString(joined)
	buf.WriteString("\n")
	return buf.String()
}

// buildShapingRules emits the ordered rule list shared by the print and
// screen contexts.
func buildShapingRules(req *RenderRequest) []string {
	var rules []string

	rules = append(rules,
		fmt.Sprintf(`body {
  width: %dpx !important;
  max-width: %dpx !important;
  min-width: %dpx !important;
}`, req.ViewportWidth, req.ViewportWidth, req.ViewportWidth),
		fmt.Sprintf(`%s {
  width: %dpx !important;
  max-width: %dpx !important;
}`, containerSelectors, req.ViewportWidth, req.ViewportWidth),
	)

	for _, sel := range req.HideSelectors {
		rules = append(rules, hideRule(sel))
	}
	for _, class := range req.HideClasses {
		rules = append(rules, hideRule("."+strings.TrimPrefix(class, ".")))
	}
	for _, id := range req.HideIDs {
		rules = append(rules, hideRule("#"+strings.TrimPrefix(id, "#")))
	}
	for _, tag := range req.HideTags {
		rules = append(rules, hideRule(tag))
	}

	for _, sel := range req.BreakBefore {
		rules = append(rules, fmt.Sprintf("%s { break-before: page !important; page-break-before: always !important; }", sel))
	}
	for _, sel := range req.BreakAfter {
		rules = append(rules, fmt.Sprintf("%s { break-after: page !important; page-break-after: always !important; }", sel))
	}
	for _, sel := range req.KeepTogether {
		rules = append(rules, fmt.Sprintf("%s { break-inside: avoid !important; page-break-inside: avoid !important; }", sel))
	}

	if req.CustomCSS != "" {
		rules = append(rules, req.CustomCSS)
	}

	return rules
}

// hideRule emits a display:none rule for one selector.
func hideRule(selector string) string {
	return fmt.Sprintf("%s { display: none !important; }", selector)
}
