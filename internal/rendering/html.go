// Package rendering provides functionality to render CVs to HTML and PDF.
package rendering

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/jonathan/cvgen/internal/templates"
	"github.com/jonathan/cvgen/internal/types"
)

// markdown is safe for concurrent use once built
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// ConvertMarkdownToHTML converts markdown to an HTML fragment. GFM tables,
// strikethrough and autolinks are enabled and raw HTML blocks pass through.
// The same input always yields the same output.
func ConvertMarkdownToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return "", &RendererError{Backend: "markdown", Message: "failed to convert markdown", Cause: err}
	}
	return buf.String(), nil
}

// inches formats a length for CSS
func inches(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "in"
}

// cssFontFamily drops characters that could break out of the font-family
// declaration. An empty result falls back to the default.
func cssFontFamily(family string) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '{', '}', ';', '\\':
			return -1
		}
		return r
	}, family)
	if clean = strings.TrimSpace(clean); clean == "" {
		return types.DefaultFontFamily
	}
	return clean
}

// ApplyHTMLStyling wraps an HTML fragment in a complete document. The page
// size, orientation and margins go into an @page rule, the font family into
// the body rule, and the template CSS is appended last so it can override
// anything but the page box.
func ApplyHTMLStyling(body string, opts *types.PDFOptions, css string) string {
	o := opts.WithDefaults()
	m := o.Margins
	margins := strings.Join([]string{inches(m.Top), inches(m.Right), inches(m.Bottom), inches(m.Left)}, " ")

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"UTF-8\">\n")
	if o.Title != "" {
		fmt.Fprintf(&b, "<title>%s</title>\n", templates.EscapeHTML(o.Title))
	}
	if o.Author != "" {
		fmt.Fprintf(&b, "<meta name=\"author\" content=\"%s\">\n", templates.EscapeHTML(o.Author))
	}
	b.WriteString("<style>\n")
	fmt.Fprintf(&b, "@page {\n  size: %s %s;\n  margin: %s;\n}\n", o.PaperSize, o.Orientation, margins)
	fmt.Fprintf(&b, "body {\n  font-family: %s;\n  margin: 0;\n}\n", cssFontFamily(o.FontFamily))
	fmt.Fprintf(&b, "@media screen {\n  body { padding: %s; }\n}\n", margins)
	if o.IncludeHeaderFooter {
		b.WriteString(".page-header, .page-footer {\n  position: fixed;\n  left: 0;\n  right: 0;\n  font-size: 9pt;\n  color: #666;\n  text-align: center;\n}\n")
		b.WriteString(".page-header { top: 0; }\n.page-footer { bottom: 0; }\n")
	}
	if css = strings.TrimSpace(css); css != "" {
		b.WriteString(css)
		b.WriteString("\n")
	}
	b.WriteString("</style>\n</head>\n<body>\n")
	if o.IncludeHeaderFooter && o.HeaderText != "" {
		fmt.Fprintf(&b, "<div class=\"page-header\">%s</div>\n", templates.EscapeHTML(o.HeaderText))
	}
	b.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		b.WriteString("\n")
	}
	if o.IncludeHeaderFooter && o.FooterText != "" {
		fmt.Fprintf(&b, "<div class=\"page-footer\">%s</div>\n", templates.EscapeHTML(o.FooterText))
	}
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// RenderMarkdown runs a template over the CV data
func RenderMarkdown(tmpl templates.Template, data *types.CVData, tmplOpts templates.Options) (string, error) {
	md, err := tmpl.Render(data, tmplOpts)
	if err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", tmpl.Name(), err)
	}
	return md, nil
}

// RenderHTML renders the CV through a template and returns a complete styled
// HTML document
func RenderHTML(tmpl templates.Template, data *types.CVData, tmplOpts templates.Options, pdfOpts *types.PDFOptions) (string, error) {
	md, err := RenderMarkdown(tmpl, data, tmplOpts)
	if err != nil {
		return "", err
	}
	body, err := ConvertMarkdownToHTML(md)
	if err != nil {
		return "", err
	}

	opts := pdfOpts.WithDefaults()
	if opts.Title == "" && data != nil {
		cv := *data
		cv.Normalize()
		opts.Title = cv.PersonalInfo.Name.Full
	}
	return ApplyHTMLStyling(body, &opts, tmpl.Styles()), nil
}
