package tables

import (
	"strings"

	"github.com/goliatone/go-reportmd/internal/report"
)

var (
	documentTitleWords  = wordSet("document", "documents", "title", "report", "reports", "assessment", "source", "name", "record", "records")
	documentAuthorWords = wordSet("author", "authors", "evaluator", "examiner", "by", "provider", "prepared", "completed", "clinician")
	documentDateWords   = wordSet("date", "dated", "when", "year")
	documentFindWords   = wordSet("findings", "finding", "key", "summary", "results", "notes", "highlights", "takeaways")
)

// Documents maps table rows onto reviewed-document records, choosing columns
// by header words and falling back to title, author, date, findings order.
// Continuation rows extend the previous record's findings.
func Documents(t Table) []report.ReviewedDocumentRecord {
	cols := documentColumns(t.Header)

	var out []report.ReviewedDocumentRecord
	for _, row := range t.Rows {
		title := cell(row, cols.title)
		if strings.TrimSpace(title) == "" {
			if len(out) == 0 {
				continue
			}
			last := &out[len(out)-1]
			extra := report.CollapseSpace(strings.Join(splitCell(cell(row, cols.findings)), " "))
			if extra == "" {
				continue
			}
			if last.KeyFindings == report.NotSpecified {
				last.KeyFindings = extra
			} else {
				last.KeyFindings = report.JoinSpace(last.KeyFindings, extra)
			}
			continue
		}
		record := report.NewReviewedDocument(
			report.CleanTitle(title),
			report.CleanTitle(cell(row, cols.author)),
			report.CleanTitle(cell(row, cols.date)),
			strings.Join(splitCell(cell(row, cols.findings)), " "),
		)
		if record.Valid() {
			out = append(out, record)
		}
	}
	return out
}

// ParseDocuments runs Parse and Documents over block.
func ParseDocuments(block string) ([]report.ReviewedDocumentRecord, bool) {
	tables := ParseAll(block)
	if len(tables) == 0 {
		return nil, false
	}
	var out []report.ReviewedDocumentRecord
	for _, table := range compatible(tables) {
		out = append(out, Documents(table)...)
	}
	return out, len(out) > 0
}

type documentLayout struct {
	title, author, date, findings int
}

func documentColumns(header []string) documentLayout {
	layout := documentLayout{title: -1, author: -1, date: -1, findings: -1}
	for i, cell := range header {
		w := headerWords(cell)
		switch {
		case layout.date < 0 && w.intersects(documentDateWords):
			layout.date = i
		case layout.author < 0 && w.intersects(documentAuthorWords):
			layout.author = i
		case layout.findings < 0 && w.intersects(documentFindWords):
			layout.findings = i
		case layout.title < 0 && w.intersects(documentTitleWords):
			layout.title = i
		}
	}
	defaults := []*int{&layout.title, &layout.author, &layout.date, &layout.findings}
	for position, slot := range defaults {
		if *slot < 0 && !taken(layout, position) {
			*slot = position
		}
	}
	return layout
}

func taken(layout documentLayout, column int) bool {
	return layout.title == column || layout.author == column ||
		layout.date == column || layout.findings == column
}

func cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return row[index]
}
