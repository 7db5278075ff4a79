package ingestion

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format is a supported input document type
type Format string

const (
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
)

// UnsupportedFormatError is returned for file types with no extractor
type UnsupportedFormatError struct {
	Path string
	Ext  string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type %q for %s (want .txt, .md, .pdf or .docx)", e.Ext, e.Path)
}

// ExtractionError is returned when a document cannot be decoded
type ExtractionError struct {
	Format  Format
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s extraction error: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s extraction error: %s", e.Format, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// FormatFromPath maps a file extension to a Format
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt", ".text":
		return FormatText, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	default:
		return "", &UnsupportedFormatError{Path: path, Ext: ext}
	}
}

// ExtractText returns the raw text of a document in the given format
func ExtractText(format Format, data []byte) (string, error) {
	switch format {
	case FormatText, FormatMarkdown:
		return string(data), nil
	case FormatPDF:
		return extractPDFText(data)
	case FormatDOCX:
		return extractDOCXText(data)
	default:
		return "", &UnsupportedFormatError{Ext: string(format)}
	}
}

// IngestFromFile reads a document, extracts and cleans its text, and returns
// it with metadata
func IngestFromFile(path string) (string, *Metadata, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return "", nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	raw, err := ExtractText(format, content)
	if err != nil {
		return "", nil, err
	}

	cleanedText := CleanText(raw)
	metadata := NewMetadata(cleanedText, path)
	metadata.Format = string(format)
	return cleanedText, metadata, nil
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: FormatPDF, Message: "failed to read pdf", Cause: err}
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", &ExtractionError{Format: FormatPDF, Message: fmt.Sprintf("failed to read page %d", i), Cause: err}
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

func extractDOCXText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: FormatDOCX, Message: "failed to parse docx", Cause: err}
	}
	defer func() { _ = doc.Close() }()

	text, err := wordMLText(doc.Editable().GetContent())
	if err != nil {
		return "", &ExtractionError{Format: FormatDOCX, Message: "failed to decode document body", Cause: err}
	}
	return text, nil
}

// wordMLText returns the visible text of a WordprocessingML body, one line per paragraph
func wordMLText(body string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(body))
	var sb strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteString("\t")
			case "br", "cr":
				sb.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return sb.String(), nil
}
