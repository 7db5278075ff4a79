package ingestion

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func samplePDF(t *testing.T, lines ...string) []byte {
	t.Helper()
	doc := gofpdf.New("P", "mm", "Letter", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	for _, line := range lines {
		doc.CellFormat(0, 8, line, "", 1, "L", false, 0, "")
	}
	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

func sampleDOCX(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var body bytes.Buffer
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t xml:space="preserve">` + p + `</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	files := map[string]string{
		"[Content_Types].xml":          `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml":            body.String(),
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"cv.txt":      FormatText,
		"cv.MD":       FormatMarkdown,
		"cv.markdown": FormatMarkdown,
		"cv.pdf":      FormatPDF,
		"cv.docx":     FormatDOCX,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatFromPath("cv.odt")
	var unsupported *UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, ".odt", unsupported.Ext)
}

func TestIngestFromFile_Text(t *testing.T) {
	path := writeFile(t, "job.md", []byte("# Job Title\n\n\n\nDescription    here"))

	cleanedText, metadata, err := IngestFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "# Job Title\n\nDescription here", cleanedText)
	assert.Len(t, metadata.Hash, 64)
	assert.NotEmpty(t, metadata.Timestamp)
	assert.Equal(t, "md", metadata.Format)
	assert.Equal(t, path, metadata.Source)
	assert.Equal(t, 5, metadata.Words)
	assert.Equal(t, 3, metadata.Lines)
}

func TestIngestFromFile_HashStable(t *testing.T) {
	a := writeFile(t, "a.txt", []byte("Content 1"))
	b := writeFile(t, "b.txt", []byte("Content 2"))

	_, m1, err := IngestFromFile(a)
	require.NoError(t, err)
	_, m1again, err := IngestFromFile(a)
	require.NoError(t, err)
	_, m2, err := IngestFromFile(b)
	require.NoError(t, err)

	assert.Equal(t, m1.Hash, m1again.Hash)
	assert.NotEqual(t, m1.Hash, m2.Hash)
}

func TestIngestFromFile_Errors(t *testing.T) {
	_, metadata, err := IngestFromFile("/nonexistent/file.txt")
	require.Error(t, err)
	assert.Nil(t, metadata)
	assert.Contains(t, err.Error(), "file not found")

	_, _, err = IngestFromFile(writeFile(t, "cv.rtf", []byte("{\\rtf1}")))
	var unsupported *UnsupportedFormatError
	assert.ErrorAs(t, err, &unsupported)

	_, _, err = IngestFromFile(writeFile(t, "broken.pdf", []byte("not a pdf")))
	var extractErr *ExtractionError
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, FormatPDF, extractErr.Format)

	_, _, err = IngestFromFile(writeFile(t, "broken.docx", []byte("not a zip")))
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, FormatDOCX, extractErr.Format)
}

func TestIngestFromFile_PDF(t *testing.T) {
	path := writeFile(t, "cv.pdf", samplePDF(t, "Jane Doe", "Platform Engineer"))

	text, metadata, err := IngestFromFile(path)
	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "Platform Engineer")
	assert.Equal(t, "pdf", metadata.Format)
}

func TestIngestFromFile_DOCX(t *testing.T) {
	path := writeFile(t, "cv.docx", sampleDOCX(t, "Jane Doe", "Experience &amp; Skills"))

	text, _, err := IngestFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nExperience & Skills", text)
}

func TestWordMLText(t *testing.T) {
	body := `<w:document xmlns:w="x"><w:body><w:p><w:r><w:t>A</w:t><w:tab/><w:t>B</w:t></w:r></w:p><w:p><w:r><w:t>C</w:t><w:br/><w:t>D</w:t></w:r></w:p><w:p><w:r><w:instrText>ignored</w:instrText></w:r></w:p></w:body></w:document>`
	text, err := wordMLText(body)
	require.NoError(t, err)
	assert.Equal(t, "A\tB\nC\nD\n\n", text)

	_, err = wordMLText("<w:p><w:t>unclosed")
	assert.Error(t, err)
}
