// Package rendering provides functionality to render CVs to HTML and PDF.
package rendering

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/jonathan/cvgen/internal/types"
)

// Backend engine names accepted by NewBackend
const (
	EngineAuto   = "auto"
	EngineChrome = "chrome"
	EngineBasic  = "basic"
)

// Backend converts a complete HTML document into PDF bytes
type Backend interface {
	Name() string
	PDF(ctx context.Context, html string, opts types.PDFOptions) ([]byte, error)
}

// chromeCandidates are looked up on PATH in order
var chromeCandidates = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"chrome",
	"headless-shell",
}

// FindChrome returns the path of a Chrome or Chromium binary, or "" if none
// is installed. CHROME_PATH takes precedence over the PATH search.
func FindChrome() string {
	if p := strings.TrimSpace(os.Getenv("CHROME_PATH")); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, name := range chromeCandidates {
		if p, err := exec.LookPath(name); err == nil {
			return p
		}
	}
	if runtime.GOOS == "darwin" {
		const mac = "/Applications/Google Chrome.app/Contents/MacOS/Google Chrome"
		if _, err := os.Stat(mac); err == nil {
			return mac
		}
	}
	return ""
}

// NewBackend returns the backend for an engine name. "auto" (or empty)
// selects Chrome when a binary is found and the basic backend otherwise.
func NewBackend(engine string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EngineAuto:
		if path := FindChrome(); path != "" {
			return &ChromeBackend{ExecPath: path}, nil
		}
		return &BasicBackend{}, nil
	case EngineChrome:
		path := FindChrome()
		if path == "" {
			return nil, &RendererError{Backend: EngineChrome, Message: "no Chrome or Chromium binary found; set CHROME_PATH or use --engine basic"}
		}
		return &ChromeBackend{ExecPath: path}, nil
	case EngineBasic:
		return &BasicBackend{}, nil
	default:
		return nil, fmt.Errorf("unknown PDF engine %q (want auto, chrome or basic)", engine)
	}
}
