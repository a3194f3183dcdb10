// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package content

import (
	"math"
	"sort"
	"strings"

	"github.com/pdiddy/statement-tools/pkg/types"
)

const (
	// rowTolerance is the vertical distance, in points, within which spans
	// share a row.
	rowTolerance = 2.0
	// phraseGap is the horizontal gap, as a fraction of the font size, below
	// which neighbouring spans form one phrase.
	phraseGap = 0.3
)

// phrase is a run of spans on one row with no visible gap between them.
type phrase struct {
	x0, x1 float64
	y      float64
	text   string
}

func (p phrase) center() float64 { return (p.x0 + p.x1) / 2 }

type row struct {
	y       float64
	phrases []phrase
}

func (r row) text() string {
	parts := make([]string, len(r.phrases))
	for i, p := range r.phrases {
		parts[i] = p.text
	}
	return strings.Join(parts, " ")
}

// buildRows groups spans into rows ordered top to bottom, each holding its
// phrases ordered left to right.
func buildRows(spans []span) []row {
	sorted := make([]span, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool {
		if math.Abs(sorted[i].y-sorted[j].y) > rowTolerance {
			return sorted[i].y > sorted[j].y
		}
		return sorted[i].x < sorted[j].x
	})

	var groups [][]span
	for _, s := range sorted {
		if n := len(groups); n > 0 && math.Abs(groups[n-1][0].y-s.y) <= rowTolerance {
			groups[n-1] = append(groups[n-1], s)
			continue
		}
		groups = append(groups, []span{s})
	}

	rows := make([]row, 0, len(groups))
	for _, g := range groups {
		sort.SliceStable(g, func(i, j int) bool { return g[i].x < g[j].x })
		rows = append(rows, row{y: g[0].y, phrases: mergePhrases(g)})
	}
	return rows
}

func mergePhrases(spans []span) []phrase {
	var out []phrase
	for _, s := range spans {
		text := strings.TrimSpace(s.text)
		if n := len(out); n > 0 && s.x-out[n-1].x1 < phraseGap*s.size {
			last := &out[n-1]
			if strings.HasSuffix(s.text, " ") || strings.HasPrefix(s.text, " ") || s.x-last.x1 > 0.1*s.size {
				last.text += " "
			}
			last.text += text
			last.x1 = math.Max(last.x1, s.x+s.width)
			continue
		}
		out = append(out, phrase{x0: s.x, x1: s.x + s.width, y: s.y, text: text})
	}
	return out
}

// rowsText renders rows as page text, one line per row.
func rowsText(rows []row) string {
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = r.text()
	}
	return strings.Join(lines, "\n")
}

// findGrids recovers tables from runs of consecutive rows that have at least
// two phrases. When the page draws rectangles only phrases that sit inside a
// rectangle count, so ruled tables are preferred over aligned free text. The
// first row of a run is the header; its phrase centers define the columns.
func findGrids(rows []row, rects []rect) []types.Grid {
	grids := []types.Grid{}
	var run []row
	flush := func() {
		if len(run) >= 2 {
			grids = append(grids, alignRun(run))
		}
		run = nil
	}
	for _, r := range rows {
		cells := tableCells(r, rects)
		if len(cells) < 2 {
			flush()
			continue
		}
		run = append(run, row{y: r.y, phrases: cells})
	}
	flush()
	return grids
}

func tableCells(r row, rects []rect) []phrase {
	if len(rects) == 0 {
		return r.phrases
	}
	var cells []phrase
	for _, p := range r.phrases {
		for _, rc := range rects {
			if rc.contains(p.center(), p.y+1) {
				cells = append(cells, p)
				break
			}
		}
	}
	return cells
}

// alignRun assigns each phrase to the header column nearest to it.
func alignRun(run []row) types.Grid {
	header := run[0].phrases
	centers := make([]float64, len(header))
	for i, p := range header {
		centers[i] = p.center()
	}

	grid := make(types.Grid, 0, len(run))
	for _, r := range run {
		cells := make([]*string, len(header))
		for _, p := range r.phrases {
			col := nearestColumn(centers, p.center())
			if cells[col] == nil {
				text := p.text
				cells[col] = &text
				continue
			}
			joined := *cells[col] + " " + p.text
			cells[col] = &joined
		}
		grid = append(grid, cells)
	}
	return grid
}

func nearestColumn(centers []float64, x float64) int {
	for i := 0; i < len(centers)-1; i++ {
		if x < (centers[i]+centers[i+1])/2 {
			return i
		}
	}
	return len(centers) - 1
}
