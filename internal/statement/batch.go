// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package statement

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/statement-tools/internal/export"
	"github.com/pdiddy/statement-tools/pkg/types"
)

// Recorder receives every successfully extracted statement, for example to
// store it and learn the bank's template.
type Recorder interface {
	Record(fileName string, res *Result) error
}

// BatchOptions controls where and how a batch writes its output.
type BatchOptions struct {
	OutputDir string
	Format    types.OutputFormat
	// Force overwrites existing output files instead of skipping them.
	Force    bool
	Recorder Recorder
}

// BatchResult holds the outcome of a batch extraction run.
type BatchResult struct {
	Extracted int
	Skipped   int
	Failed    int
}

// Total returns the number of statements processed.
func (r BatchResult) Total() int {
	return r.Extracted + r.Skipped + r.Failed
}

// HasFailures reports whether any statement failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

type fileStatus int

const (
	statusExtracted fileStatus = iota
	statusSkipped
	statusFailed
)

// OutputPath returns where the record for the PDF at path is written.
func OutputPath(path, outDir string, format types.OutputFormat) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return filepath.Join(outDir, base+format.Extension())
}

func (p *Processor) processOne(path string, opts BatchOptions, w io.Writer) fileStatus {
	name := filepath.Base(path)
	out := OutputPath(path, opts.OutputDir, opts.Format)

	if !opts.Force {
		if _, err := os.Stat(out); err == nil {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", name)
			return statusSkipped
		}
	}

	res, err := p.ProcessFile(path)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
		return statusFailed
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, opts.Format, res.Record); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
		return statusFailed
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
		return statusFailed
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
		return statusFailed
	}

	if opts.Recorder != nil {
		if err := opts.Recorder.Record(name, res); err != nil {
			fmt.Fprintf(w, "warning: %s not recorded (%v)\n", name, err)
		}
	}

	fmt.Fprintf(w, "extracted: %s -> %s (%d transactions)\n", name, out, len(res.Record.Transactions))
	return statusExtracted
}

// ProcessBatch extracts each PDF in paths into opts.OutputDir, printing
// per-file status to w and returning a summary. A failing file does not stop
// the batch.
func (p *Processor) ProcessBatch(paths []string, opts BatchOptions, w io.Writer) BatchResult {
	var result BatchResult
	for _, path := range paths {
		switch p.processOne(path, opts, w) {
		case statusExtracted:
			result.Extracted++
		case statusSkipped:
			result.Skipped++
		case statusFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d extracted, %d skipped, %d failed (total: %d)\n",
		result.Extracted, result.Skipped, result.Failed, result.Total())
	return result
}
