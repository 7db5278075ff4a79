package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/cvgen/internal/config"
)

// getBinaryPath returns the path to the cvgen binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "cvgen"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/cvgen ./cmd/cvgen'", binaryPath)
	}

	return binaryPath
}

// useWorkspace points the command config at a fresh temp root and restores
// the previous config when the test ends
func useWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	prev := cfg
	c := config.Defaults()
	c.Root = root
	c.Storage.Dir = filepath.Join(root, "store")
	cfg = &c
	t.Cleanup(func() { cfg = prev })
	return root
}

const profileMarkdown = `# Jane Doe

jane@example.com | (555) 123-4567

## Experience

- Engineer at Acme (2020-2023)
  - Ran the build farm

## Education

- B.S. Computer Science, State University (2019)

## Skills

Go, Kubernetes, PostgreSQL
`

func writeProfile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "profile.md")
	if err := os.WriteFile(path, []byte(profileMarkdown), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
