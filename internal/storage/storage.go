// Package storage provides key/value persistence for profiles and generated
// artifacts, with memory, filesystem, S3, PostgreSQL and Redis backends.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrNotFound is returned when a key does not exist
	ErrNotFound = errors.New("storage: key not found")
	// ErrInvalidKey is returned for keys a backend cannot store safely
	ErrInvalidKey = errors.New("storage: invalid key")
)

// Provider stores opaque values by key. Keys are slash-separated relative
// paths such as "profiles/jane.json". List returns keys in sorted order.
type Provider interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]string, error)
}

// ValidateKey rejects empty keys, absolute paths and parent references
func ValidateKey(key string) error {
	switch {
	case strings.TrimSpace(key) == "":
		return fmt.Errorf("%w: empty key", ErrInvalidKey)
	case strings.HasPrefix(key, "/"), strings.Contains(key, "\\"):
		return fmt.Errorf("%w: %q must be a relative slash path", ErrInvalidKey, key)
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return fmt.Errorf("%w: %q has an empty or relative segment", ErrInvalidKey, key)
		}
	}
	return nil
}

// Close releases the provider's connections if it holds any
func Close(p Provider) error {
	if c, ok := p.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
