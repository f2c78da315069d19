package main

import (
	"bytes"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// docsTemplate wraps the rendered Markdown fragment in a complete page.
const docsTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>web2pdf API</title>
<style>
body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif;
       max-width: 56rem; margin: 2rem auto; padding: 0 1rem; line-height: 1.5; }
code { background: #f2f2f2; padding: 0.1rem 0.3rem; border-radius: 3px; }
pre { background: #f7f7f7; padding: 1rem; overflow-x: auto; border-radius: 4px; }
pre code { background: none; padding: 0; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.3rem 0.6rem; text-align: left; }
h1, h2 { border-bottom: 1px solid #eee; padding-bottom: 0.2rem; }
</style>
</head>
<body>
%s
</body>
</html>`

// docsMarkdown is the API reference served at /docs.
const docsMarkdown = "# web2pdf\n" +
	"\n" +
	"Render any web page to a PDF through a headless Chromium session.\n" +
	"\n" +
	"## Endpoints\n" +
	"\n" +
	"| Method | Path | Purpose |\n" +
	"| --- | --- | --- |\n" +
	"| GET | `/pdf` | Convert a URL to PDF |\n" +
	"| GET | `/inspect` | Inventory a page's hideable elements |\n" +
	"| GET | `/health` | Browser availability check |\n" +
	"| GET | `/docs` | This page |\n" +
	"\n" +
	"## GET /pdf\n" +
	"\n" +
	"```\n" +
	"GET /pdf?url=https://example.com&landscape=true&hideTags=nav,footer\n" +
	"```\n" +
	"\n" +
	"Returns `application/pdf` as an attachment. Validation failures\n" +
	"return `400` with a `detail` message naming the first offending\n" +
	"parameter; navigation timeouts return `408`, unreachable targets\n" +
	"`502`, and rate-limited clients `429`.\n" +
	"\n" +
	"### Layout parameters\n" +
	"\n" +
	"| Parameter | Default | Notes |\n" +
	"| --- | --- | --- |\n" +
	"| `url` | required | `http` or `https` only |\n" +
	"| `format` | `letter` | `letter`, `legal`, `tabloid`, `ledger`, `a0`..`a6` |\n" +
	"| `width`, `height` | — | explicit page size (`8.5in`, `210mm`, `1280px`), overrides `format` |\n" +
	"| `landscape` | `false` | |\n" +
	"| `scale` | `0.9` | `0.1`..`2.0` |\n" +
	"| `marginTop` | `0.75in` | also `marginBottom` (`0.5in`), `marginLeft`/`marginRight` (`0.2in`) |\n" +
	"| `pageRanges` | all | e.g. `1-3,5` |\n" +
	"| `displayHeaderFooter` | `true` | page title header, page numbers footer |\n" +
	"| `preferCSSPageSize` | `false` | |\n" +
	"| `printBackground` | `true` | |\n" +
	"\n" +
	"### Viewport and timing\n" +
	"\n" +
	"| Parameter | Default | Bounds |\n" +
	"| --- | --- | --- |\n" +
	"| `viewportWidth` | `1280` | `320`..`4000` |\n" +
	"| `viewportHeight` | `720` | `240`..`4000` |\n" +
	"| `deviceScaleFactor` | `1.0` | any value above `0` |\n" +
	"| `timeout` | `180000` | `5000`..`180000` ms |\n" +
	"| `waitTime` | `2000` | `0`..`30000` ms, extra settle delay |\n" +
	"| `waitForImages` | `true` | scroll through the page and wait for lazy images |\n" +
	"| `waitForIframes` | `true` | wait for iframe loads |\n" +
	"| `enableJavaScript` | `true` | |\n" +
	"\n" +
	"### Content shaping\n" +
	"\n" +
	"| Parameter | Example |\n" +
	"| --- | --- |\n" +
	"| `hideElements` | `.sidebar,.ad,button.close` |\n" +
	"| `hideClasses` | `sidebar,advertisement` |\n" +
	"| `hideIds` | `header,navigation` |\n" +
	"| `hideTags` | `nav,footer,button` |\n" +
	"| `pageBreakBefore` | `h2,.chapter` |\n" +
	"| `pageBreakAfter` | `.section-end` |\n" +
	"| `keepTogether` | `table,.figure` |\n" +
	"| `customCSS` | any CSS, appended verbatim |\n" +
	"\n" +
	"## GET /inspect\n" +
	"\n" +
	"```\n" +
	"GET /inspect?url=https://example.com&timeout=30000\n" +
	"```\n" +
	"\n" +
	"Loads the page and returns samples of navigation, header, footer,\n" +
	"sidebar, button, ad and form elements, plus the page's ids and most\n" +
	"common classes, with ready-made `hide*` examples.\n"

// renderDocsPage converts the embedded reference Markdown once at startup.
func renderDocsPage() ([]byte, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(docsMarkdown), &buf); err != nil {
		return nil, fmt.Errorf("render docs page: %w", err)
	}
	return []byte(fmt.Sprintf(docsTemplate, buf.String())), nil
}
