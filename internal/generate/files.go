// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

const (
	// DemoFile is the file name of the fixed demo statement.
	DemoFile = "sample_bank_statement.pdf"
	// EncryptedFile is the file name of the password-protected fixture.
	EncryptedFile = "encrypted_statement.pdf"
)

func writePDF(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// WriteStatement renders stmt to path, creating parent directories.
func WriteStatement(path string, stmt Statement) error {
	var buf bytes.Buffer
	if err := Render(&buf, stmt); err != nil {
		return err
	}
	return writePDF(path, buf.Bytes())
}

// WritePresets renders every preset into dir, each period ending at end,
// and reports one line per file to w.
func WritePresets(dir string, end time.Time, faker *gofakeit.Faker, w io.Writer) ([]string, error) {
	var paths []string
	for _, p := range Presets() {
		stmt := Random(p.BankName, p.AccountNumber, p.Days, end, faker)
		path := filepath.Join(dir, p.File)
		if err := WriteStatement(path, stmt); err != nil {
			return paths, err
		}
		fmt.Fprintf(w, "generated: %s (%d transactions)\n", path, len(stmt.Transactions))
		paths = append(paths, path)
	}
	return paths, nil
}

// WriteDemo renders the demo statement into dir.
func WriteDemo(dir string, w io.Writer) (string, error) {
	path := filepath.Join(dir, DemoFile)
	if err := WriteStatement(path, Demo()); err != nil {
		return "", err
	}
	fmt.Fprintf(w, "generated: %s\n", path)
	return path, nil
}

// WriteEncrypted writes the encrypted fixture into dir.
func WriteEncrypted(dir, password string, w io.Writer) (string, error) {
	data, err := EncryptedSample(password)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, EncryptedFile)
	if err := writePDF(path, data); err != nil {
		return "", err
	}
	fmt.Fprintf(w, "generated: %s (password protected)\n", path)
	return path, nil
}
