// Package rendering provides functionality to render CVs to HTML and PDF.
package rendering

import (
	"context"
	"os"
	"path/filepath"

	"github.com/jonathan/cvgen/internal/templates"
	"github.com/jonathan/cvgen/internal/types"
)

// ConvertMarkdownToPDF converts markdown to a PDF at outputPath and returns
// the path written. An existing file is overwritten; the parent directory
// must already exist. A nil backend selects one automatically.
func ConvertMarkdownToPDF(ctx context.Context, md, outputPath string, opts *types.PDFOptions, backend Backend) (string, error) {
	body, err := ConvertMarkdownToHTML(md)
	if err != nil {
		return "", err
	}
	return WriteHTMLToPDF(ctx, ApplyHTMLStyling(body, opts, ""), outputPath, opts, backend)
}

// RenderPDF renders the CV through a template straight to a PDF file
func RenderPDF(ctx context.Context, tmpl templates.Template, data *types.CVData, tmplOpts templates.Options, outputPath string, opts *types.PDFOptions, backend Backend) (string, error) {
	html, err := RenderHTML(tmpl, data, tmplOpts, opts)
	if err != nil {
		return "", err
	}
	o := opts.WithDefaults()
	if o.Title == "" && data != nil {
		cv := *data
		cv.Normalize()
		o.Title = cv.PersonalInfo.Name.Full
	}
	return WriteHTMLToPDF(ctx, html, outputPath, &o, backend)
}

// WriteHTMLToPDF prints a complete HTML document to outputPath
func WriteHTMLToPDF(ctx context.Context, html, outputPath string, opts *types.PDFOptions, backend Backend) (string, error) {
	if backend == nil {
		b, err := NewBackend(EngineAuto)
		if err != nil {
			return "", err
		}
		backend = b
	}

	data, err := backend.PDF(ctx, html, opts.WithDefaults())
	if err != nil {
		return "", err
	}

	if info, statErr := os.Stat(filepath.Dir(outputPath)); statErr != nil || !info.IsDir() {
		if statErr == nil {
			statErr = os.ErrNotExist
		}
		return "", &IOError{Path: outputPath, Message: "output directory does not exist", Cause: statErr}
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return "", &IOError{Path: outputPath, Message: "failed to write PDF", Cause: err}
	}
	return outputPath, nil
}
