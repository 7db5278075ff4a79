package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/jonathan/cvgen/internal/fetch"
	"github.com/jonathan/cvgen/internal/ingestion"
	"github.com/jonathan/cvgen/internal/parsing"
	"github.com/jonathan/cvgen/internal/profiles"
	"github.com/jonathan/cvgen/internal/rendering"
	"github.com/jonathan/cvgen/internal/schemas"
	"github.com/jonathan/cvgen/internal/storage"
	"github.com/jonathan/cvgen/internal/templates"
	"github.com/jonathan/cvgen/internal/validation"
)

// Error categories printed with every failure
const (
	categoryNotFound   = "not_found"
	categoryRenderer   = "renderer"
	categoryIO         = "io"
	categoryFetch      = "fetch"
	categoryValidation = "validation"
	categoryError      = "error"
)

// category names the kind of failure so operators can tell environment
// problems from rendering-engine problems
func category(err error) string {
	var (
		tmplNotFound *templates.NotFoundError
		profNotFound *profiles.NotFoundError
		rendererErr  *rendering.RendererError
		ioErr        *rendering.IOError
		readErr      *validation.FileReadError
		pathErr      *fs.PathError
		fetchErr     *fetch.Error
		parseErr     *parsing.ParseError
		schemaErr    *schemas.ValidationError
		formatErr    *ingestion.UnsupportedFormatError
		usageErr     *usageError
		batchErr     *batchFailedError
	)
	switch {
	case errors.As(err, &tmplNotFound), errors.As(err, &profNotFound), errors.Is(err, storage.ErrNotFound):
		return categoryNotFound
	case errors.As(err, &rendererErr):
		return categoryRenderer
	case errors.As(err, &ioErr), errors.As(err, &readErr), errors.As(err, &pathErr):
		return categoryIO
	case errors.As(err, &fetchErr), errors.As(err, &batchErr), errors.Is(err, ingestion.ErrHTTPRequestFailed):
		return categoryFetch
	case errors.As(err, &parseErr), errors.As(err, &schemaErr), errors.As(err, &formatErr), errors.As(err, &usageErr):
		return categoryValidation
	default:
		return categoryError
	}
}

// usageError reports an invalid combination of flags or arguments
type usageError struct {
	Message string
}

func (e *usageError) Error() string {
	return e.Message
}

// batchFailedError reports a job batch in which no posting could be fetched
type batchFailedError struct {
	Count int
}

func (e *batchFailedError) Error() string {
	return fmt.Sprintf("all %d job postings failed to fetch", e.Count)
}
