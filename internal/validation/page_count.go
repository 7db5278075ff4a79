package validation

import (
	"bytes"

	"github.com/ledongthuc/pdf"
)

// CountPDFPages counts the pages of an in-memory PDF
func CountPDFPages(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, &Error{Message: "PDF is empty"}
	}
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, &Error{Message: "failed to parse PDF", Cause: err}
	}
	return reader.NumPage(), nil
}
