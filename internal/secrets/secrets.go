// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets reads credentials from a directory of plain-text files.
// The filename is the key and the trimmed file contents are the value, so a
// statement password never has to appear on the command line.
//
// Known keys: pdf-password.
package secrets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// PDFPassword is the key holding the default password for encrypted
// statements.
const PDFPassword = "pdf-password"

// DefaultDir is where the CLI looks for secret files.
const DefaultDir = ".secrets"

// Load reads every regular, non-hidden file in dir. A missing directory is
// not an error. Empty files are ignored, and unreadable files are reported
// to warn and skipped.
func Load(dir string, warn io.Writer) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	values := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(warn, "warning: could not read secret %s: %v\n", name, err)
			continue
		}
		if v := strings.TrimSpace(string(data)); v != "" {
			values[name] = v
		}
	}
	return values, nil
}

// Lookup returns the value of key in dir, or "" when it is not set.
func Lookup(dir, key string, warn io.Writer) (string, error) {
	values, err := Load(dir, warn)
	if err != nil {
		return "", err
	}
	return values[key], nil
}
