package main

import (
	"time"

	flag "github.com/spf13/pflag"

	web2pdf "github.com/alnah/go-web2pdf"
)

// Server defaults.
const (
	defaultHost = "127.0.0.1"
	defaultPort = 8888
)

// serverFlags holds all CLI flags for the server binary.
type serverFlags struct {
	host       string
	port       int
	configPath string
	verbose    bool
	browserBin string
	sandbox    bool
	maxRenders int
	rateLimit  int
	rateWindow time.Duration
	version    bool

	fs *flag.FlagSet
}

// changed reports whether a flag was explicitly set, so flags can
// override config file values without clobbering them with defaults.
func (f *serverFlags) changed(name string) bool {
	return f.fs.Changed(name)
}

// parseFlags parses args (including the program name at args[0]).
func parseFlags(args []string) (*serverFlags, error) {
	fs := flag.NewFlagSet("web2pdf", flag.ContinueOnError)
	f := &serverFlags{fs: fs}

	fs.StringVar(&f.host, "host", defaultHost, "host to bind to")
	fs.IntVarP(&f.port, "port", "p", defaultPort, "HTTP port")
	fs.StringVarP(&f.configPath, "config", "c", "", "path to YAML config file")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")
	fs.StringVar(&f.browserBin, "browser-bin", "", "path to a pre-installed browser binary")
	fs.BoolVar(&f.sandbox, "sandbox", false, "enable the Chrome sandbox")
	fs.IntVar(&f.maxRenders, "max-renders", 0, "bound concurrent render sessions (0 = unlimited, negative = auto-size)")
	fs.IntVar(&f.rateLimit, "rate-limit", web2pdf.DefaultRateLimit, "requests per client per rate window")
	fs.DurationVar(&f.rateWindow, "rate-window", web2pdf.DefaultRateWindow, "trailing rate limit window")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}
	return f, nil
}
