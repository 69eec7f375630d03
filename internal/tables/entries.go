package tables

import (
	"strings"

	"github.com/goliatone/go-reportmd/internal/report"
)

type columnRole int

const (
	roleObservation columnRole = iota
	roleAction
)

var (
	actionWords = wordSet("do", "dos", "action", "actions", "strategy", "strategies",
		"support", "supports", "recommendation", "recommendations", "respond", "response",
		"try", "intervention", "interventions", "accommodation", "accommodations", "help")
	observationWords = wordSet("see", "seen", "observe", "observed", "observation", "observations",
		"evidence", "look", "looks", "description", "describe", "sign", "signs", "example",
		"examples", "notice", "impact", "behavior", "behaviour", "data")
)

// Entries folds table rows into labeled entries. A row with a non-empty first
// cell opens a new entry titled by that cell; a row whose first cell is empty
// continues the open entry and is dropped when none is open. Entries whose
// cleaned title is blank are discarded.
func Entries(t Table) []report.LabeledEntry {
	roles := columnRoles(t.Header, width(t))

	var (
		out  []report.LabeledEntry
		open *report.LabeledEntry
	)
	closeOpen := func() {
		if open != nil && open.Valid() {
			out = append(out, *open)
		}
		open = nil
	}

	for _, row := range t.Rows {
		if len(row) == 0 {
			continue
		}
		if strings.TrimSpace(row[0]) == "" {
			if open == nil {
				continue
			}
			appendCells(open, row[1:], roles)
			continue
		}
		closeOpen()
		open = &report.LabeledEntry{
			Title:        report.CleanTitle(row[0]),
			Observations: []string{},
			Actions:      []report.Action{},
		}
		appendCells(open, row[1:], roles)
	}
	closeOpen()
	return out
}

// ParseEntries runs Parse and Entries over every table in block whose header
// matches the first table's header.
func ParseEntries(block string) ([]report.LabeledEntry, bool) {
	tables := ParseAll(block)
	if len(tables) == 0 {
		return nil, false
	}
	var out []report.LabeledEntry
	for _, table := range compatible(tables) {
		out = append(out, Entries(table)...)
	}
	return out, len(out) > 0
}

func appendCells(entry *report.LabeledEntry, cells []string, roles []columnRole) {
	for i, cell := range cells {
		role := roleObservation
		if i < len(roles) {
			role = roles[i]
		}
		for _, piece := range splitCell(cell) {
			if role == roleAction || report.HasGlyph(piece) {
				if action, ok := report.ClassifyAction(piece); ok {
					entry.Actions = append(entry.Actions, action)
				}
				continue
			}
			if observation := report.CollapseSpace(report.StripBullet(piece)); observation != "" {
				entry.Observations = append(entry.Observations, observation)
			}
		}
	}
}

// columnRoles assigns a role to every column after the first. Header words
// decide; when no header names an action column and there are at least two
// sibling columns, the last unnamed one holds actions.
func columnRoles(header []string, columns int) []columnRole {
	siblings := columns - 1
	if siblings <= 0 {
		return nil
	}
	roles := make([]columnRole, siblings)
	named := make([]bool, siblings)
	hasAction := false
	for i := 0; i < siblings; i++ {
		if i+1 >= len(header) {
			continue
		}
		words := headerWords(header[i+1])
		switch {
		case words.intersects(actionWords):
			roles[i], named[i], hasAction = roleAction, true, true
		case words.intersects(observationWords):
			roles[i], named[i] = roleObservation, true
		}
	}
	if !hasAction && siblings >= 2 {
		for i := siblings - 1; i >= 0; i-- {
			if !named[i] {
				roles[i] = roleAction
				break
			}
		}
	}
	return roles
}

func width(t Table) int {
	n := len(t.Header)
	for _, row := range t.Rows {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}

func compatible(tables []Table) []Table {
	first := normalizedHeader(tables[0].Header)
	out := []Table{tables[0]}
	for _, table := range tables[1:] {
		if normalizedHeader(table.Header) == first {
			out = append(out, table)
		}
	}
	return out
}

func normalizedHeader(header []string) string {
	parts := make([]string, len(header))
	for i, cell := range header {
		parts[i] = strings.ToLower(report.CleanTitle(cell))
	}
	return strings.Join(parts, "|")
}

type words map[string]struct{}

func wordSet(values ...string) words {
	set := make(words, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}

func headerWords(cell string) words {
	cell = strings.ToLower(report.CleanTitle(cell))
	cell = strings.NewReplacer("'", "", "’", "", "/", " ", "-", " ", "(", " ", ")", " ", "?", " ").Replace(cell)
	return wordSet(strings.Fields(cell)...)
}

func (w words) intersects(other words) bool {
	for word := range w {
		if _, ok := other[word]; ok {
			return true
		}
	}
	return false
}
