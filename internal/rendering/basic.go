// Package rendering provides functionality to render CVs to HTML and PDF.
package rendering

import (
	"bytes"
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jung-kurt/gofpdf"

	"github.com/jonathan/cvgen/internal/types"
)

// BasicBackend lays out the HTML text flow with gofpdf. It needs no browser;
// CSS beyond the page box and font family is ignored.
type BasicBackend struct{}

// Name returns the engine name
func (b *BasicBackend) Name() string { return EngineBasic }

// blockSelector lists the elements laid out as paragraphs
const blockSelector = "h1, h2, h3, h4, h5, h6, p, li, div, td, th, pre"

// textStyle is the font style for one block
type textStyle struct {
	style string
	size  float64
	space float64 // inches before the block
}

var blockStyles = map[string]textStyle{
	"h1": {"B", 18, 0.1},
	"h2": {"B", 14, 0.15},
	"h3": {"B", 12, 0.1},
	"h4": {"B", 11, 0.05},
	"h5": {"B", 10, 0.05},
	"h6": {"B", 10, 0.05},
}

var bodyStyle = textStyle{"", 10, 0.04}

// pdfFont maps a CSS font-family list onto a core PDF font
func pdfFont(family string) string {
	f := strings.ToLower(family)
	switch {
	case strings.Contains(f, "mono"), strings.Contains(f, "courier"):
		return "Courier"
	case strings.Contains(f, "times"), strings.Contains(f, "serif") && !strings.Contains(f, "sans"):
		return "Times"
	default:
		return "Helvetica"
	}
}

// blockText collapses whitespace, except inside pre where line breaks stay
func blockText(s *goquery.Selection) string {
	if goquery.NodeName(s) != "pre" {
		return strings.Join(strings.Fields(s.Text()), " ")
	}
	lines := strings.Split(strings.Trim(s.Text(), "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(strings.ReplaceAll(l, "\t", "    "), " \r")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// PDF renders the document
func (b *BasicBackend) PDF(ctx context.Context, html string, opts types.PDFOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &RendererError{Backend: EngineBasic, Message: "render cancelled", Cause: err}
	}
	o := (&opts).WithDefaults()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &RendererError{Backend: EngineBasic, Message: "failed to parse HTML", Cause: err}
	}

	orientation := "P"
	if o.Orientation == types.Landscape {
		orientation = "L"
	}
	pdf := gofpdf.New(orientation, "in", string(o.PaperSize), "")
	m := o.Margins
	pdf.SetMargins(m.Left, m.Top, m.Right)
	pdf.SetAutoPageBreak(true, m.Bottom)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	font := pdfFont(o.FontFamily)

	title := o.Title
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if title != "" {
		pdf.SetTitle(title, true)
	}
	if o.Author != "" {
		pdf.SetAuthor(o.Author, true)
	}

	if o.IncludeHeaderFooter {
		if o.HeaderText != "" {
			pdf.SetHeaderFuncMode(func() {
				pdf.SetY(m.Top / 2)
				pdf.SetFont(font, "", 8)
				pdf.SetTextColor(102, 102, 102)
				pdf.CellFormat(0, 0.15, tr(o.HeaderText), "", 0, "C", false, 0, "")
				pdf.SetTextColor(0, 0, 0)
			}, true)
		}
		if o.FooterText != "" {
			pdf.SetFooterFunc(func() {
				pdf.SetY(-m.Bottom / 2)
				pdf.SetFont(font, "", 8)
				pdf.SetTextColor(102, 102, 102)
				pdf.CellFormat(0, 0.15, tr(o.FooterText), "", 0, "C", false, 0, "")
				pdf.SetTextColor(0, 0, 0)
			})
		}
	}

	pdf.AddPage()

	doc.Find("body").Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		if s.ParentsFiltered("p, li, td, th, pre").Length() > 0 {
			return
		}
		if s.HasClass("page-header") || s.HasClass("page-footer") {
			return
		}
		tag := goquery.NodeName(s)
		if tag == "div" && s.Children().Filter("div, p, ul, ol, table, h1, h2, h3, h4, h5, h6").Length() > 0 {
			return
		}

		text := blockText(s)
		if text == "" {
			return
		}

		st, ok := blockStyles[tag]
		if !ok {
			st = bodyStyle
		}
		blockFont := font
		switch tag {
		case "li":
			text = "• " + text
		case "th":
			st.style = "B"
		case "pre":
			blockFont = "Courier"
		}
		lineHeight := st.size / 72 * 1.35

		pdf.Ln(st.space)
		pdf.SetFont(blockFont, st.style, st.size)
		pdf.MultiCell(0, lineHeight, tr(text), "", "L", false)
	})

	if pdf.Err() {
		return nil, &RendererError{Backend: EngineBasic, Message: "failed to lay out PDF", Cause: pdf.Error()}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &RendererError{Backend: EngineBasic, Message: "failed to write PDF", Cause: err}
	}
	return buf.Bytes(), nil
}
