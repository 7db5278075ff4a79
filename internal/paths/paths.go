// Package paths resolves the data and output directories of a cvgen workspace.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// Directory names under the workspace root
const (
	DataDir   = "data"
	OutputDir = "output"
)

// Resolver maps relative names onto a workspace root
type Resolver struct {
	Root string
}

// New returns a Resolver for root. An empty root means the working directory.
func New(root string) (*Resolver, error) {
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace root %s: %w", root, err)
	}
	return &Resolver{Root: abs}, nil
}

// Data returns the absolute path of rel under <root>/data.
// Absolute paths are returned unchanged.
func (r *Resolver) Data(rel string) string {
	return r.under(DataDir, rel)
}

// Output returns the absolute path of rel under <root>/output.
// Absolute paths are returned unchanged.
func (r *Resolver) Output(rel string) string {
	return r.under(OutputDir, rel)
}

func (r *Resolver) under(dir, rel string) string {
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	root := r.Root
	if !filepath.IsAbs(root) {
		if abs, err := filepath.Abs(root); err == nil {
			root = abs
		}
	}
	return filepath.Join(root, dir, rel)
}

// EnsureDirs creates the data and output directories
func (r *Resolver) EnsureDirs() error {
	for _, dir := range []string{r.Data(""), r.Output("")} {
		if err := EnsureDir(dir); err != nil {
			return err
		}
	}
	return nil
}

// EnsureDir creates dir and any missing parents
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
