package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	web2pdf "github.com/alnah/go-web2pdf"
)

func (s *server) handleRoot(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect, "/docs")
}

func (s *server) handleDocs(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", s.docs)
}

func (s *server) handleHealth(c *gin.Context) {
	resp := gin.H{
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": s.env,
		"engine":      "rod/headless-chromium",
		"go_version":  runtime.Version(),
	}

	path, err := resolveBrowserPath(s.svc.BrowserBin())
	if err != nil {
		resp["status"] = "unhealthy"
		resp["error"] = err.Error()
		c.JSON(http.StatusOK, resp)
		return
	}
	resp["status"] = "healthy"
	resp["browser_path"] = path
	c.JSON(http.StatusOK, resp)
}

func (s *server) handlePDF(c *gin.Context) {
	client := c.ClientIP()
	if !s.limiter.Allow(client) {
		s.logger.Warn("rate limit exceeded", "client", client)
		respondError(c, http.StatusTooManyRequests, web2pdf.ErrRateLimited.Error())
		return
	}

	req, err := web2pdf.ParseRenderRequest(c.Request.URL.Query())
	if err != nil {
		s.logger.Warn("invalid conversion request", "client", client, "error", err)
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.gate.Acquire(c.Request.Context()); err != nil {
		// The request context ended while queued for a session slot,
		// usually a client disconnect.
		respondError(c, http.StatusServiceUnavailable, "no render capacity available")
		return
	}
	defer s.gate.Release()

	s.logger.Info("PDF conversion requested", "url", req.URL.String(), "client", client)

	// Session teardown must run to completion once a render starts, so
	// the render is deliberately not tied to the request context.
	doc, err := s.svc.Render(context.Background(), req)
	if err != nil {
		status := statusFromError(err)
		s.logger.Error("PDF conversion failed",
			"url", req.URL.String(), "status", status, "error", err)
		respondError(c, status, err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", doc.Filename))
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Data(http.StatusOK, "application/pdf", doc.Data)
}

func (s *server) handleInspect(c *gin.Context) {
	rawURL := c.Query("url")

	timeoutMs := web2pdf.DefaultInspectTimeoutMs
	if raw := c.Query("timeout"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(c, http.StatusBadRequest, "timeout must be a positive integer of milliseconds")
			return
		}
		timeoutMs = parsed
	}

	inv, err := s.svc.Inspect(context.Background(), rawURL, time.Duration(timeoutMs)*time.Millisecond)
	if err != nil {
		respondError(c, statusFromError(err), err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":            rawURL,
		"elements_found": inv,
		"hide_examples": gin.H{
			"by_tag":      "hideTags=nav,footer,button",
			"by_class":    "hideClasses=sidebar,advertisement,no-print",
			"by_id":       "hideIds=header,navigation",
			"by_selector": "hideElements=.sidebar,.ad,button.close",
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func respondError(c *gin.Context, status int, detail string) {
	c.JSON(status, gin.H{"detail": detail})
}

// statusFromError maps conversion failures to HTTP status codes.
func statusFromError(err error) int {
	switch {
	case web2pdf.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, web2pdf.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, web2pdf.ErrNavigationTimeout):
		return http.StatusRequestTimeout
	case errors.Is(err, web2pdf.ErrTargetUnreachable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
