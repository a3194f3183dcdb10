// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package content

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// FitzProvider reads documents with MuPDF. Tables come from the plain-text
// column heuristic in TextGrids.
type FitzProvider struct{}

// NewFitzProvider creates a MuPDF-backed provider.
func NewFitzProvider() *FitzProvider { return &FitzProvider{} }

func (f *FitzProvider) Name() string { return "fitz" }

func (f *FitzProvider) Extract(data []byte) (*Document, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	defer doc.Close()

	n := doc.NumPage()
	pages := make([]Page, 0, n)
	for i := 0; i < n; i++ {
		text, err := doc.Text(i)
		if err != nil {
			text = ""
		}
		text = strings.TrimRight(text, "\n")
		pages = append(pages, Page{
			Number: i + 1,
			Text:   text,
			Tables: TextGrids(text),
		})
	}
	return NewDocument(pages), nil
}
