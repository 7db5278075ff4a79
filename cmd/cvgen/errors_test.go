package main

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/cvgen/internal/fetch"
	"github.com/jonathan/cvgen/internal/ingestion"
	"github.com/jonathan/cvgen/internal/parsing"
	"github.com/jonathan/cvgen/internal/profiles"
	"github.com/jonathan/cvgen/internal/rendering"
	"github.com/jonathan/cvgen/internal/schemas"
	"github.com/jonathan/cvgen/internal/storage"
	"github.com/jonathan/cvgen/internal/templates"
	"github.com/jonathan/cvgen/internal/types"
	"github.com/jonathan/cvgen/internal/validation"
)

func TestCategory(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"template not found", &templates.NotFoundError{Name: "fancy"}, categoryNotFound},
		{"wrapped template not found", fmt.Errorf("select_template: %w", &templates.NotFoundError{Name: "fancy"}), categoryNotFound},
		{"profile not found", &profiles.NotFoundError{ID: "abc"}, categoryNotFound},
		{"storage not found", fmt.Errorf("read: %w", storage.ErrNotFound), categoryNotFound},
		{"renderer", &rendering.RendererError{Backend: "chrome", Message: "no browser"}, categoryRenderer},
		{"render io", &rendering.IOError{Path: "/x/cv.pdf", Message: "failed to write"}, categoryIO},
		{"verify read", &validation.FileReadError{Path: "cv.pdf", Message: "failed to read"}, categoryIO},
		{"path error", fmt.Errorf("failed to read profile: %w", &fs.PathError{Op: "open", Path: "p.md", Err: fs.ErrNotExist}), categoryIO},
		{"fetch", &fetch.Error{URL: "https://x", Kind: types.FetchTimeout, Message: "timed out"}, categoryFetch},
		{"batch failed", &batchFailedError{Count: 2}, categoryFetch},
		{"http failed", fmt.Errorf("ingest: %w", ingestion.ErrHTTPRequestFailed), categoryFetch},
		{"parse", &parsing.ParseError{Message: "invalid CV JSON"}, categoryValidation},
		{"schema", &schemas.ValidationError{}, categoryValidation},
		{"unsupported format", &ingestion.UnsupportedFormatError{Path: "cv.odt", Ext: ".odt"}, categoryValidation},
		{"usage", &usageError{Message: "bad flags"}, categoryValidation},
		{"other", errors.New("boom"), categoryError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, category(tt.err))
		})
	}
}

func TestBatchFailedError(t *testing.T) {
	assert.Equal(t, "all 3 job postings failed to fetch", (&batchFailedError{Count: 3}).Error())
}
