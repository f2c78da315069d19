// Package web2pdf renders arbitrary web pages to print-optimized PDF
// documents using headless Chrome.
//
// Each render request owns an isolated browser session from launch to
// unconditional teardown: configure viewport and media, navigate with a
// bounded timeout, inject content-shaping CSS, settle dynamic content
// best-effort, and print to PDF. Basic usage:
//
//	svc := web2pdf.New()
//	req, err := web2pdf.ParseRenderRequest(query)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	doc, err := svc.Render(ctx, req)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(doc.Filename, doc.Data, 0o644)
//
// The cmd/web2pdf binary wraps the package in an HTTP service with
// per-client rate limiting and a diagnostic page inspector.
package web2pdf
