// Package tables parses pipe-delimited markdown tables found in report
// sections and folds their rows, continuation rows included, into report
// entries.
package tables

import (
	"regexp"
	"strings"
)

// Table is a parsed markdown table. Rows exclude the header and separator rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// Empty reports whether the table carries no data rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

var (
	separatorCellPattern = regexp.MustCompile(`^:?-{3,}:?$`)
	brPattern            = regexp.MustCompile(`(?i)<br\s*/?>`)
)

// Detect reports whether block satisfies the table precondition: at least one
// line with a pipe followed by a separator row of dashes.
func Detect(block string) bool {
	sawPipe := false
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if isSeparatorRow(line) {
			if sawPipe {
				return true
			}
			continue
		}
		if strings.Contains(line, "|") {
			sawPipe = true
		}
	}
	return false
}

// Parse returns the first table in block. Tables are read through the GFM
// table extension first; blocks it rejects are split by hand.
func Parse(block string) (Table, bool) {
	tables := ParseAll(block)
	if len(tables) == 0 {
		return Table{}, false
	}
	return tables[0], true
}

// ParseAll returns every table found in block in document order.
func ParseAll(block string) []Table {
	if !Detect(block) {
		return nil
	}
	if tables := parseGFM(block); len(tables) > 0 {
		return tables
	}
	return parsePipes(block)
}

// parsePipes walks the block line by line. A table starts at the line before
// a separator row and runs while lines keep containing pipes.
func parsePipes(block string) []Table {
	lines := strings.Split(block, "\n")
	var out []Table
	for i := 1; i < len(lines); i++ {
		sep := strings.TrimSpace(lines[i])
		head := strings.TrimSpace(lines[i-1])
		if !isSeparatorRow(sep) || !strings.Contains(head, "|") {
			continue
		}
		table := Table{Header: SplitRow(head)}
		j := i + 1
		for ; j < len(lines); j++ {
			row := strings.TrimSpace(lines[j])
			if row == "" || !strings.Contains(row, "|") {
				break
			}
			if isSeparatorRow(row) {
				continue
			}
			table.Rows = append(table.Rows, SplitRow(row))
		}
		out = append(out, table)
		i = j
	}
	return out
}

// SplitRow splits a table row on unescaped pipes. One outer pipe is removed
// from each end so empty leading cells survive; they mark continuation rows.
func SplitRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	if strings.HasSuffix(line, "|") && !strings.HasSuffix(line, `\|`) {
		line = line[:len(line)-1]
	}

	var (
		cells []string
		cell  strings.Builder
	)
	for i := 0; i < len(line); i++ {
		switch {
		case line[i] == '\\' && i+1 < len(line) && line[i+1] == '|':
			cell.WriteByte('|')
			i++
		case line[i] == '|':
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		default:
			cell.WriteByte(line[i])
		}
	}
	cells = append(cells, strings.TrimSpace(cell.String()))
	return cells
}

func isSeparatorRow(line string) bool {
	if !strings.Contains(line, "-") {
		return false
	}
	cells := SplitRow(line)
	if len(cells) == 1 && !strings.Contains(line, "|") {
		return false
	}
	for _, cell := range cells {
		if !separatorCellPattern.MatchString(strings.ReplaceAll(cell, " ", "")) {
			return false
		}
	}
	return true
}

// splitCell breaks a cell into its line-level pieces.
func splitCell(cell string) []string {
	cell = brPattern.ReplaceAllString(cell, "\n")
	var out []string
	for _, piece := range strings.Split(cell, "\n") {
		if piece = strings.TrimSpace(piece); piece != "" {
			out = append(out, piece)
		}
	}
	return out
}
