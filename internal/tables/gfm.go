package tables

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// newGFMParser builds a goldmark instance per call; instances are cheap and
// this keeps parsing free of shared state.
func newGFMParser() goldmark.Markdown {
	return goldmark.New(goldmark.WithExtensions(extension.Table))
}

func parseGFM(block string) []Table {
	source := []byte(block)
	root := newGFMParser().Parser().Parse(text.NewReader(source))

	var out []Table
	_ = ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		table, ok := node.(*east.Table)
		if !ok {
			return ast.WalkContinue, nil
		}
		out = append(out, tableFromNode(table, source))
		return ast.WalkSkipChildren, nil
	})
	return out
}

func tableFromNode(node *east.Table, source []byte) Table {
	var table Table
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch row := child.(type) {
		case *east.TableHeader:
			table.Header = rowCells(row, source)
		case *east.TableRow:
			table.Rows = append(table.Rows, rowCells(row, source))
		}
	}
	return table
}

func rowCells(row ast.Node, source []byte) []string {
	var cells []string
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		var b strings.Builder
		writeInline(&b, cell, source)
		cells = append(cells, strings.TrimSpace(b.String()))
	}
	return cells
}

// writeInline renders the plain text of an inline subtree. Line breaks written
// as <br> become newlines so multi-value cells can be split later.
func writeInline(b *strings.Builder, node ast.Node, source []byte) {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Text:
			b.Write(n.Segment.Value(source))
			if n.SoftLineBreak() || n.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(n.Value)
		case *ast.RawHTML:
			var raw strings.Builder
			for i := 0; i < n.Segments.Len(); i++ {
				segment := n.Segments.At(i)
				raw.Write(segment.Value(source))
			}
			if brPattern.MatchString(raw.String()) {
				b.WriteByte('\n')
				continue
			}
			b.WriteString(raw.String())
		case *ast.AutoLink:
			b.Write(n.Label(source))
		default:
			writeInline(b, child, source)
		}
	}
}
