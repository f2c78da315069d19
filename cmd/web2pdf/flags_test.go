package main

import (
	"testing"
	"time"

	web2pdf "github.com/alnah/go-web2pdf"
)

func TestParseFlagsDefaults(t *testing.T) {
	t.Parallel()

	f, err := parseFlags([]string{"web2pdf"})
	if err != nil {
		t.Fatalf("parseFlags() error: %v", err)
	}
	if f.host != defaultHost || f.port != defaultPort {
		t.Errorf("host:port = %s:%d, want %s:%d", f.host, f.port, defaultHost, defaultPort)
	}
	if f.verbose || f.version || f.sandbox {
		t.Error("boolean flags should default to false")
	}
	if f.maxRenders != 0 {
		t.Errorf("maxRenders = %d, want 0 (unbounded)", f.maxRenders)
	}
	if f.rateLimit != web2pdf.DefaultRateLimit || f.rateWindow != web2pdf.DefaultRateWindow {
		t.Errorf("rate flags = %d/%v", f.rateLimit, f.rateWindow)
	}
	if f.changed("port") {
		t.Error("changed(port) = true without the flag set")
	}
}

func TestParseFlagsValues(t *testing.T) {
	t.Parallel()

	f, err := parseFlags([]string{
		"web2pdf",
		"--host", "0.0.0.0",
		"-p", "9000",
		"-c", "/etc/web2pdf.yaml",
		"-v",
		"--browser-bin", "/usr/bin/chromium",
		"--sandbox",
		"--max-renders", "4",
		"--rate-limit", "10",
		"--rate-window", "30s",
	})
	if err != nil {
		t.Fatalf("parseFlags() error: %v", err)
	}

	if f.host != "0.0.0.0" || f.port != 9000 {
		t.Errorf("host:port = %s:%d", f.host, f.port)
	}
	if f.configPath != "/etc/web2pdf.yaml" {
		t.Errorf("configPath = %q", f.configPath)
	}
	if !f.verbose || !f.sandbox {
		t.Error("verbose/sandbox not set")
	}
	if f.browserBin != "/usr/bin/chromium" {
		t.Errorf("browserBin = %q", f.browserBin)
	}
	if f.maxRenders != 4 || f.rateLimit != 10 || f.rateWindow != 30*time.Second {
		t.Errorf("limits = %d/%d/%v", f.maxRenders, f.rateLimit, f.rateWindow)
	}
	if !f.changed("port") || !f.changed("rate-limit") {
		t.Error("changed() not reporting explicitly set flags")
	}
}

func TestParseFlagsRejectsUnknown(t *testing.T) {
	t.Parallel()

	if _, err := parseFlags([]string{"web2pdf", "--bogus"}); err == nil {
		t.Error("unknown flag accepted")
	}
}

func TestParseFlagsVersion(t *testing.T) {
	t.Parallel()

	f, err := parseFlags([]string{"web2pdf", "--version"})
	if err != nil {
		t.Fatalf("parseFlags() error: %v", err)
	}
	if !f.version {
		t.Error("version flag not set")
	}
}
