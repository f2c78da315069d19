//go:build integration

package web2pdf

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// Notes:
// - These tests drive a real headless Chromium; rod downloads one on
//   first run if none is found.
// - Pages are served from a local httptest server, never the network.
// - Artifact-leak checks scan the shared temp dir, so those tests run
//   sequentially instead of with t.Parallel().

const integrationTimeout = 60 * time.Second

func assertValidPDF(t *testing.T, data []byte) {
	t.Helper()

	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("data does not have PDF magic bytes, got prefix: %q", data[:min(10, len(data))])
	}
	if len(data) < 100 {
		t.Errorf("PDF data suspiciously small: %d bytes", len(data))
	}
}

// tempArtifactCount counts the package's temp PDF artifacts currently
// on disk.
func tempArtifactCount(t *testing.T) int {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(os.TempDir(), "web2pdf-*.pdf"))
	if err != nil {
		t.Fatal(err)
	}
	return len(matches)
}

func servePage(t *testing.T, html string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// fastQuery builds query params that skip the settle delays so the
// suite stays quick.
func fastQuery(target string) url.Values {
	return url.Values{
		"url":            {target},
		"timeout":        {"30000"},
		"waitTime":       {"0"},
		"waitForImages":  {"false"},
		"waitForIframes": {"false"},
	}
}

func TestServiceRenderIntegration(t *testing.T) {
	page := servePage(t, `<!DOCTYPE html>
<html>
<head><title>Quarterly Report</title></head>
<body>
<h1>Quarterly Report</h1>
<p>Revenue is up and to the right.</p>
<nav id="topnav" class="navbar">menu</nav>
</body>
</html>`)

	before := tempArtifactCount(t)

	req, err := ParseRenderRequest(fastQuery(page.URL + "/reports/q2"))
	if err != nil {
		t.Fatalf("ParseRenderRequest() error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), integrationTimeout)
	defer cancel()

	doc, err := New().Render(ctx, req)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	assertValidPDF(t, doc.Data)
	if doc.Filename != "q2.pdf" {
		t.Errorf("Filename = %q, want q2.pdf", doc.Filename)
	}
	if after := tempArtifactCount(t); after != before {
		t.Errorf("temp artifacts: %d before, %d after; render must not leave files behind", before, after)
	}
}

func TestServiceRenderIntegrationWithShaping(t *testing.T) {
	page := servePage(t, `<!DOCTYPE html>
<html>
<body>
<nav>navigation to hide</nav>
<h1>Content</h1>
<h2>Chapter</h2>
<p>Body text.</p>
</body>
</html>`)

	q := fastQuery(page.URL)
	q.Set("hideTags", "nav")
	q.Set("pageBreakBefore", "h2")
	q.Set("customCSS", "p { color: rgb(10, 20, 30); }")

	req, err := ParseRenderRequest(q)
	if err != nil {
		t.Fatalf("ParseRenderRequest() error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), integrationTimeout)
	defer cancel()

	doc, err := New().Render(ctx, req)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	assertValidPDF(t, doc.Data)
}

func TestServiceRenderIntegrationUnreachableTarget(t *testing.T) {
	before := tempArtifactCount(t)

	// Port 1 is never listening locally.
	req, err := ParseRenderRequest(fastQuery("http://127.0.0.1:1/"))
	if err != nil {
		t.Fatalf("ParseRenderRequest() error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), integrationTimeout)
	defer cancel()

	_, err = New().Render(ctx, req)
	if !errors.Is(err, ErrTargetUnreachable) {
		t.Fatalf("Render() error = %v, want ErrTargetUnreachable", err)
	}
	if after := tempArtifactCount(t); after != before {
		t.Errorf("temp artifacts: %d before, %d after; failed render must not leave files behind", before, after)
	}
}

func TestServiceInspectIntegration(t *testing.T) {
	page := servePage(t, `<!DOCTYPE html>
<html>
<body>
<nav id="topnav" class="navbar primary">menu</nav>
<header class="header">title</header>
<footer class="footer">fine print</footer>
<button class="close-button">X</button>
<div id="main" class="content-area">text</div>
</body>
</html>`)

	ctx, cancel := context.WithTimeout(context.Background(), integrationTimeout)
	defer cancel()

	inv, err := New().Inspect(ctx, page.URL, 30*time.Second)
	if err != nil {
		t.Fatalf("Inspect() error: %v", err)
	}

	if len(inv.Navigation) == 0 || inv.Navigation[0].ID != "topnav" {
		t.Errorf("Navigation = %+v, want the nav element sampled", inv.Navigation)
	}
	if len(inv.Headers) == 0 || len(inv.Footers) == 0 || len(inv.Buttons) == 0 {
		t.Errorf("inventory missing categories: headers=%d footers=%d buttons=%d",
			len(inv.Headers), len(inv.Footers), len(inv.Buttons))
	}
	found := false
	for _, id := range inv.IDs {
		if id == "main" {
			found = true
		}
	}
	if !found {
		t.Errorf("IDs = %v, want to include %q", inv.IDs, "main")
	}
}
