// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package content

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"rsc.io/pdf"
)

// PDFProvider reads documents with rsc.io/pdf. It interprets the page content
// streams itself so that whole text-show strings survive with their spaces,
// and records ruled rectangles for table detection.
type PDFProvider struct{}

// NewPDFProvider creates the default pure-Go provider.
func NewPDFProvider() *PDFProvider { return &PDFProvider{} }

func (p *PDFProvider) Name() string { return "pdf" }

// Extract parses data page by page. A page whose content stream cannot be
// interpreted yields an empty page.
func (p *PDFProvider) Extract(data []byte) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("%w: %v", ErrInvalidDocument, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	n := r.NumPage()
	pages := make([]Page, 0, n)
	for i := 1; i <= n; i++ {
		spans, rects := readPage(r.Page(i))
		rows := buildRows(spans)
		pages = append(pages, Page{
			Number: i,
			Text:   rowsText(rows),
			Tables: findGrids(rows, rects),
		})
	}
	return NewDocument(pages), nil
}

// span is one shown string placed on the page.
type span struct {
	x, y  float64
	width float64
	size  float64
	text  string
}

// rect is an axis-aligned rectangle in page space.
type rect struct {
	x0, y0, x1, y1 float64
}

func (r rect) contains(x, y float64) bool {
	return x >= r.x0 && x <= r.x1 && y >= r.y0 && y <= r.y1
}

// matrix is a PDF affine transform [a b c d e f].
type matrix [6]float64

var identity = matrix{1, 0, 0, 1, 0, 0}

// mul returns m × n.
func (m matrix) mul(n matrix) matrix {
	return matrix{
		m[0]*n[0] + m[1]*n[2],
		m[0]*n[1] + m[1]*n[3],
		m[2]*n[0] + m[3]*n[2],
		m[2]*n[1] + m[3]*n[3],
		m[4]*n[0] + m[5]*n[2] + n[4],
		m[4]*n[1] + m[5]*n[3] + n[5],
	}
}

func (m matrix) apply(x, y float64) (float64, float64) {
	return x*m[0] + y*m[2] + m[4], x*m[1] + y*m[3] + m[5]
}

func translate(tx, ty float64) matrix { return matrix{1, 0, 0, 1, tx, ty} }

// graphics is the part of the graphics state saved by q and restored by Q.
type graphics struct {
	ctm     matrix
	enc     pdf.TextEncoding
	size    float64
	leading float64
}

// pageReader accumulates spans and rectangles while a content stream runs.
type pageReader struct {
	page  pdf.Page
	gs    graphics
	stack []graphics
	tm    matrix
	tlm   matrix
	spans []span
	rects []rect
}

// readPage interprets every content stream of page. Interpretation errors
// stop the page and discard what was read from it.
func readPage(page pdf.Page) (spans []span, rects []rect) {
	defer func() {
		if r := recover(); r != nil {
			spans, rects = nil, nil
		}
	}()
	if page.V.IsNull() {
		return nil, nil
	}

	pr := &pageReader{page: page, gs: graphics{ctm: identity}, tm: identity, tlm: identity}
	contents := page.V.Key("Contents")
	if contents.Kind() == pdf.Array {
		for i := 0; i < contents.Len(); i++ {
			pdf.Interpret(contents.Index(i), pr.do)
		}
	} else {
		pdf.Interpret(contents, pr.do)
	}
	return pr.spans, pr.rects
}

func (pr *pageReader) do(stk *pdf.Stack, op string) {
	n := stk.Len()
	args := make([]pdf.Value, n)
	for i := n - 1; i >= 0; i-- {
		args[i] = stk.Pop()
	}

	switch op {
	case "q":
		pr.stack = append(pr.stack, pr.gs)
	case "Q":
		if len(pr.stack) > 0 {
			pr.gs = pr.stack[len(pr.stack)-1]
			pr.stack = pr.stack[:len(pr.stack)-1]
		}
	case "cm":
		if m, ok := matrixArgs(args); ok {
			pr.gs.ctm = m.mul(pr.gs.ctm)
		}
	case "re":
		if len(args) == 4 {
			pr.addRect(args[0].Float64(), args[1].Float64(), args[2].Float64(), args[3].Float64())
		}
	case "BT":
		pr.tm, pr.tlm = identity, identity
	case "Tf":
		if len(args) == 2 {
			pr.gs.enc = pr.page.Font(args[0].Name()).Encoder()
			pr.gs.size = args[1].Float64()
		}
	case "TL":
		if len(args) == 1 {
			pr.gs.leading = args[0].Float64()
		}
	case "Td":
		if len(args) == 2 {
			pr.moveLine(args[0].Float64(), args[1].Float64())
		}
	case "TD":
		if len(args) == 2 {
			pr.gs.leading = -args[1].Float64()
			pr.moveLine(args[0].Float64(), args[1].Float64())
		}
	case "Tm":
		if m, ok := matrixArgs(args); ok {
			pr.tm, pr.tlm = m, m
		}
	case "T*":
		pr.moveLine(0, -pr.gs.leading)
	case "Tj":
		if len(args) == 1 {
			pr.show(pr.decode(args[0].RawString()))
		}
	case "'":
		if len(args) == 1 {
			pr.moveLine(0, -pr.gs.leading)
			pr.show(pr.decode(args[0].RawString()))
		}
	case "\"":
		if len(args) == 3 {
			pr.moveLine(0, -pr.gs.leading)
			pr.show(pr.decode(args[2].RawString()))
		}
	case "TJ":
		if len(args) == 1 {
			pr.showArray(args[0])
		}
	}
}

func matrixArgs(args []pdf.Value) (matrix, bool) {
	if len(args) != 6 {
		return matrix{}, false
	}
	var m matrix
	for i := range m {
		m[i] = args[i].Float64()
	}
	return m, true
}

func (pr *pageReader) addRect(x, y, w, h float64) {
	x0, y0 := pr.gs.ctm.apply(x, y)
	x1, y1 := pr.gs.ctm.apply(x+w, y+h)
	pr.rects = append(pr.rects, rect{
		x0: math.Min(x0, x1), y0: math.Min(y0, y1),
		x1: math.Max(x0, x1), y1: math.Max(y0, y1),
	})
}

func (pr *pageReader) moveLine(tx, ty float64) {
	pr.tlm = translate(tx, ty).mul(pr.tlm)
	pr.tm = pr.tlm
}

func (pr *pageReader) decode(raw string) string {
	if pr.gs.enc == nil {
		return raw
	}
	return pr.gs.enc.Decode(raw)
}

// glyphAdvance estimates the advance of text in unscaled text space. Standard
// fonts carry no width tables, so half an em per rune is used.
func (pr *pageReader) glyphAdvance(text string) float64 {
	return 0.5 * pr.gs.size * float64(len([]rune(text)))
}

// show places text at the current text position and advances past it.
func (pr *pageReader) show(text string) {
	if text == "" {
		return
	}
	trm := pr.tm.mul(pr.gs.ctm)
	x, y := trm.apply(0, 0)
	scale := math.Hypot(trm[2], trm[3])
	adv := pr.glyphAdvance(text)
	if strings.TrimSpace(text) != "" {
		pr.spans = append(pr.spans, span{
			x:     x,
			y:     y,
			width: adv * math.Hypot(trm[0], trm[1]),
			size:  pr.gs.size * scale,
			text:  text,
		})
	}
	pr.tm = translate(adv, 0).mul(pr.tm)
}

// showArray handles TJ. Large negative adjustments split the string into
// separate spans; moderate ones stand for a word space.
func (pr *pageReader) showArray(arr pdf.Value) {
	var b strings.Builder
	flush := func() {
		pr.show(b.String())
		b.Reset()
	}
	for i := 0; i < arr.Len(); i++ {
		v := arr.Index(i)
		switch v.Kind() {
		case pdf.String:
			b.WriteString(pr.decode(v.RawString()))
		case pdf.Integer, pdf.Real:
			adj := v.Float64()
			switch {
			case adj <= -1000:
				flush()
				pr.tm = translate(-adj/1000*pr.gs.size, 0).mul(pr.tm)
			case adj <= -250:
				b.WriteByte(' ')
			}
		}
	}
	flush()
}
