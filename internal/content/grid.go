// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package content

import (
	"regexp"
	"strings"

	"github.com/pdiddy/statement-tools/pkg/types"
)

// columnBreak separates cells in plain text: a tab or a run of two or more
// spaces.
var columnBreak = regexp.MustCompile(`\t+| {2,}`)

// markdownRule matches a pipe-table separator row such as "|---|:--:|".
var markdownRule = regexp.MustCompile(`^\|?\s*:?-{3,}:?\s*(\|\s*:?-{3,}:?\s*)*\|?$`)

// TextGrids recovers tables from plain page text. Consecutive lines that
// split into at least two cells form a grid.
func TextGrids(text string) []types.Grid {
	grids := []types.Grid{}
	var run [][]string
	flush := func() {
		if len(run) >= 2 {
			grids = append(grids, toGrid(run))
		}
		run = nil
	}
	for _, line := range strings.Split(text, "\n") {
		cells := splitCells(line)
		if len(cells) < 2 {
			flush()
			continue
		}
		run = append(run, cells)
	}
	flush()
	return grids
}

func splitCells(line string) []string {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	var cells []string
	for _, c := range columnBreak.Split(line, -1) {
		if c = strings.TrimSpace(c); c != "" {
			cells = append(cells, c)
		}
	}
	return cells
}

// MarkdownTables splits Markdown into its pipe tables and the remaining
// text. Separator rows are dropped and empty cells become absent.
func MarkdownTables(md string) (string, []types.Grid) {
	grids := []types.Grid{}
	var (
		text []string
		run  [][]string
	)
	flush := func() {
		if len(run) > 0 {
			grids = append(grids, toGrid(run))
		}
		run = nil
	}
	for _, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "|") {
			flush()
			text = append(text, line)
			continue
		}
		if markdownRule.MatchString(trimmed) {
			continue
		}
		run = append(run, pipeCells(trimmed))
	}
	flush()
	return strings.TrimSpace(strings.Join(text, "\n")), grids
}

func pipeCells(line string) []string {
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	parts := strings.Split(line, "|")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func toGrid(rows [][]string) types.Grid {
	grid := make(types.Grid, len(rows))
	for i, r := range rows {
		grid[i] = make([]*string, len(r))
		for j, c := range r {
			if c == "" {
				continue
			}
			v := c
			grid[i][j] = &v
		}
	}
	return grid
}
