package rendering

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cvgen/internal/templates"
	"github.com/jonathan/cvgen/internal/types"
)

const sampleMarkdown = "# Jane Doe\n\njane@example.com\n\n## Experience\n\n### Engineer at Acme\n\n- Ran the build farm\n- Cut build times — by half\n"

func TestConvertMarkdownToPDF_Basic(t *testing.T) {
	out := filepath.Join(t.TempDir(), "cv.pdf")

	path, err := ConvertMarkdownToPDF(context.Background(), sampleMarkdown, out, nil, &BasicBackend{})
	require.NoError(t, err)
	assert.Equal(t, out, path)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	f, r, err := pdf.Open(out)
	require.NoError(t, err)
	defer f.Close()
	assert.GreaterOrEqual(t, r.NumPage(), 1)
}

func TestConvertMarkdownToPDF_Overwrites(t *testing.T) {
	out := filepath.Join(t.TempDir(), "cv.pdf")
	require.NoError(t, os.WriteFile(out, []byte("stale"), 0o644))

	_, err := ConvertMarkdownToPDF(context.Background(), sampleMarkdown, out, nil, &BasicBackend{})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	entries, err := os.ReadDir(filepath.Dir(out))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestConvertMarkdownToPDF_MissingDirectory(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing", "cv.pdf")

	_, err := ConvertMarkdownToPDF(context.Background(), sampleMarkdown, out, nil, &BasicBackend{})
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, out, ioErr.Path)

	_, statErr := os.Stat(filepath.Dir(out))
	assert.True(t, os.IsNotExist(statErr))
}

func TestBasicBackend_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&BasicBackend{}).PDF(ctx, "<p>x</p>", types.PDFOptions{})
	var rErr *RendererError
	require.ErrorAs(t, err, &rErr)
	assert.Equal(t, EngineBasic, rErr.Backend)
}

func TestBasicBackend_Options(t *testing.T) {
	opts := types.PDFOptions{
		PaperSize:           types.PaperLegal,
		Orientation:         types.Landscape,
		FontFamily:          "Courier New, monospace",
		IncludeHeaderFooter: true,
		HeaderText:          "Header",
		FooterText:          "Footer",
		Author:              "José",
	}
	data, err := (&BasicBackend{}).PDF(context.Background(), ApplyHTMLStyling("<h2>Café</h2><ul><li>One</li></ul>", &opts, ""), opts)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

// pdfText extracts the plain text of every page
func pdfText(t *testing.T, data []byte) string {
	t.Helper()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		require.NoError(t, err)
		b.WriteString(text)
	}
	return b.String()
}

func TestBasicBackend_TablesAndCodeBlocks(t *testing.T) {
	md := "# Jane Doe\n\n| Skill | Level |\n|-------|-------|\n| Go | Expert |\n\n```\nCODEBLOCKTEXT first\nsecond line\n```\n"
	body, err := ConvertMarkdownToHTML(md)
	require.NoError(t, err)

	data, err := (&BasicBackend{}).PDF(context.Background(), ApplyHTMLStyling(body, nil, ""), types.PDFOptions{})
	require.NoError(t, err)

	text := pdfText(t, data)
	assert.Contains(t, text, "Skill")
	assert.Contains(t, text, "Level")
	assert.Contains(t, text, "Expert")
	assert.Contains(t, text, "CODEBLOCKTEXT")
	assert.Contains(t, text, "second")
}

func TestBlockText_PreKeepsLineBreaks(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<pre>\nfunc main() {\n\tprintln()\n}\n</pre><p>  a \n b </p>"))
	require.NoError(t, err)

	assert.Equal(t, "func main() {\n    println()\n}", blockText(doc.Find("pre")))
	assert.Equal(t, "a b", blockText(doc.Find("p")))
}

func TestRenderPDF(t *testing.T) {
	tmpl, err := templates.NewProvider().Get("federal")
	require.NoError(t, err)
	out := filepath.Join(t.TempDir(), "federal.pdf")

	_, err = RenderPDF(context.Background(), tmpl, sampleCV(), templates.Options{}, out, nil, &BasicBackend{})
	require.NoError(t, err)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPDFFont(t *testing.T) {
	tests := map[string]string{
		"Arial, sans-serif":      "Helvetica",
		"Georgia, serif":         "Times",
		"Times New Roman":        "Times",
		"Courier New, monospace": "Courier",
		"":                       "Helvetica",
	}
	for family, want := range tests {
		assert.Equal(t, want, pdfFont(family), family)
	}
}

func TestNewBackend(t *testing.T) {
	b, err := NewBackend("basic")
	require.NoError(t, err)
	assert.Equal(t, EngineBasic, b.Name())

	b, err = NewBackend("")
	require.NoError(t, err)
	assert.Contains(t, []string{EngineBasic, EngineChrome}, b.Name())

	_, err = NewBackend("wkhtmltopdf")
	assert.Error(t, err)
}

func TestNewBackend_ChromeMissing(t *testing.T) {
	t.Setenv("CHROME_PATH", "")
	t.Setenv("PATH", t.TempDir())
	if FindChrome() != "" {
		t.Skip("chrome found outside PATH")
	}

	_, err := NewBackend("chrome")
	var rErr *RendererError
	assert.ErrorAs(t, err, &rErr)

	b, err := NewBackend("auto")
	require.NoError(t, err)
	assert.Equal(t, EngineBasic, b.Name())
}

func TestChromeBackend_PDF(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	path := FindChrome()
	if path == "" {
		t.Skip("no Chrome or Chromium binary found")
	}

	out := filepath.Join(t.TempDir(), "chrome.pdf")
	_, err := ConvertMarkdownToPDF(context.Background(), sampleMarkdown, out, &types.PDFOptions{Scale: 0.9}, &ChromeBackend{ExecPath: path})
	require.NoError(t, err)

	f, r, err := pdf.Open(out)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, 1, r.NumPage())
}
