// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package content

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/pdiddy/statement-tools/internal/container"
)

const (
	imageMarkitdown = "markitdown:latest"
	// markitdownTimeout bounds one container run.
	markitdownTimeout = 2 * time.Minute
)

// MarkitdownProvider pipes PDFs through the markitdown container. The whole
// document comes back as one Markdown page; pipe tables become grids.
type MarkitdownProvider struct {
	runtime container.Runtime
	timeout time.Duration
}

// NewMarkitdownProvider verifies that the markitdown image exists in rt.
func NewMarkitdownProvider(rt container.Runtime) (*MarkitdownProvider, error) {
	if err := rt.ImageExists(imageMarkitdown); err != nil {
		return nil, fmt.Errorf("markitdown image not available in %s: %w", rt.Name(), err)
	}
	return &MarkitdownProvider{runtime: rt, timeout: markitdownTimeout}, nil
}

func (m *MarkitdownProvider) Name() string { return "markitdown" }

func (m *MarkitdownProvider) Extract(data []byte) (*Document, error) {
	if !bytes.HasPrefix(bytes.TrimLeft(data, "\x00\t\r\n "), []byte("%PDF-")) {
		return nil, fmt.Errorf("%w: missing PDF header", ErrInvalidDocument)
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	var out bytes.Buffer
	if err := m.runtime.Run(ctx, imageMarkitdown, bytes.NewReader(data), &out); err != nil {
		return nil, fmt.Errorf("converting with markitdown: %w", err)
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("markitdown produced empty output")
	}

	text, tables := MarkdownTables(out.String())
	return NewDocument([]Page{{Number: 1, Text: text, Tables: tables}}), nil
}
