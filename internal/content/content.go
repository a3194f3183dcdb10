// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package content reads the per-page text and table grids of a PDF document.
// Backends are pluggable: the pure-Go pdf reader, MuPDF through go-fitz, and
// the markitdown container.
package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/statement-tools/internal/container"
	"github.com/pdiddy/statement-tools/pkg/types"
)

// ErrInvalidDocument reports input that is not a readable PDF.
var ErrInvalidDocument = errors.New("invalid PDF document")

// Page holds the text and the tables recovered from one page.
type Page struct {
	Number int          `json:"pageNumber"`
	Text   string       `json:"text"`
	Tables []types.Grid `json:"tables"`
}

// Document is the content of a whole PDF.
type Document struct {
	Pages     []Page
	FullText  string
	PageCount int
}

// NewDocument assembles a Document from its pages. FullText is the page
// texts joined with newlines and trimmed.
func NewDocument(pages []Page) *Document {
	texts := make([]string, len(pages))
	for i, p := range pages {
		if p.Tables == nil {
			pages[i].Tables = []types.Grid{}
		}
		texts[i] = p.Text
	}
	return &Document{
		Pages:     pages,
		FullText:  strings.TrimSpace(strings.Join(texts, "\n")),
		PageCount: len(pages),
	}
}

// Tables returns every grid in page order.
func (d *Document) Tables() []types.Grid {
	var all []types.Grid
	for _, p := range d.Pages {
		all = append(all, p.Tables...)
	}
	return all
}

// Provider extracts content from raw PDF bytes. Implementations must not
// fail the whole document when a single page cannot be read.
type Provider interface {
	// Name returns the backend name.
	Name() string

	// Extract parses data and returns its pages.
	Extract(data []byte) (*Document, error)
}

// New returns the provider for the named backend. An empty name selects the
// pdf backend. The markitdown backend needs a working container runtime.
func New(backend types.ContentBackend) (Provider, error) {
	switch backend {
	case "", types.BackendPDF:
		return NewPDFProvider(), nil
	case types.BackendFitz:
		return NewFitzProvider(), nil
	case types.BackendMarkitdown:
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, err
		}
		return NewMarkitdownProvider(rt)
	default:
		return nil, fmt.Errorf("unknown content backend %q (want %s, %s or %s)",
			backend, types.BackendPDF, types.BackendFitz, types.BackendMarkitdown)
	}
}
