// Package freeform extracts labeled entries from prose sections that carry no
// table: bold-label lines, bold blocks and sub-headings, each followed by
// paragraphs, bullets or do/don't glyph lines.
package freeform

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-reportmd/internal/report"
	"github.com/goliatone/go-reportmd/internal/sections"
)

var (
	boldLabelPattern  = regexp.MustCompile(`^(?:[-*+•]\s+)?\*\*([^*]+?)\*\*\s*([:\-–]?)\s*(.*)$`)
	subHeadingPattern = regexp.MustCompile(`^#{1,6}\s+(.+?)\s*#*\s*$`)
	plainLabelPattern = regexp.MustCompile(`^(?:[-*+•]\s+)?([A-Za-z][A-Za-z '’]{1,40}?)\s*:\s*(.*)$`)
	bulletPattern     = regexp.MustCompile(`^(?:[-*+•]|\d+[.)])\s+`)
)

type mode int

const (
	modeDescription mode = iota
	modeObservations
	modeActions
)

var subLabels = map[string]mode{
	"what you see":       modeObservations,
	"what youll see":     modeObservations,
	"what it looks like": modeObservations,
	"observations":       modeObservations,
	"observed":           modeObservations,
	"evidence":           modeObservations,
	"signs":              modeObservations,
	"what to do":         modeActions,
	"how to help":        modeActions,
	"how to support":     modeActions,
	"actions":            modeActions,
	"strategies":         modeActions,
	"supports":           modeActions,
	"recommendations":    modeActions,
	"try":                modeActions,
}

type builder struct {
	out   []report.LabeledEntry
	open  *report.LabeledEntry
	mode  mode
	fresh bool
	// parts of the last observation, joined when it is finished
	parts []string
}

// Parse reads bold-label entries from block. A label opens an entry; the text
// after a "**Label:**" marker and every following non-label line up to the next
// label are joined with single spaces into the entry description, which is its
// first observation. Bullets start a new observation. Lines led by a do or
// don't glyph become actions. Sub-labels such as "What you see" or "What to
// do" switch where the following lines of the open entry go.
func Parse(block string) ([]report.LabeledEntry, bool) {
	b := &builder{}
	inFence := false
	for _, raw := range strings.Split(block, "\n") {
		line := strings.TrimSpace(raw)
		if strings.HasPrefix(line, "```") || strings.HasPrefix(line, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence || line == "" || isTableLine(line) || isRule(line) {
			continue
		}
		if label, rest, ok := labelOf(line); ok {
			if m, sub := subLabel(label); sub {
				b.switchMode(m, rest)
				continue
			}
			b.start(label, rest)
			continue
		}
		b.add(line)
	}
	b.close()
	return b.out, len(b.out) > 0
}

func labelOf(line string) (string, string, bool) {
	if m := boldLabelPattern.FindStringSubmatch(line); m != nil {
		label := report.CleanTitle(m[1])
		rest := strings.TrimSpace(m[3])
		// bold text followed by prose without a separator is emphasis, not a label
		marked := m[2] != "" || strings.HasSuffix(strings.TrimSpace(m[1]), ":")
		if label != "" && (rest == "" || marked) {
			return label, rest, true
		}
	}
	if m := subHeadingPattern.FindStringSubmatch(line); m != nil {
		if label := report.CleanTitle(m[1]); label != "" {
			return label, "", true
		}
	}
	if m := plainLabelPattern.FindStringSubmatch(line); m != nil {
		if _, sub := subLabel(m[1]); sub {
			return report.CleanTitle(m[1]), strings.TrimSpace(m[2]), true
		}
	}
	return "", "", false
}

func subLabel(label string) (mode, bool) {
	m, ok := subLabels[sections.NormalizeTitle(label)]
	return m, ok
}

func (b *builder) start(title, rest string) {
	b.close()
	b.open = &report.LabeledEntry{
		Title:        title,
		Observations: []string{},
		Actions:      []report.Action{},
	}
	b.mode = modeDescription
	b.fresh = true
	if rest != "" {
		b.add(rest)
	}
}

func (b *builder) switchMode(m mode, rest string) {
	if b.open == nil {
		return
	}
	b.mode = m
	b.fresh = true
	if rest != "" {
		b.add(rest)
	}
}

func (b *builder) add(line string) {
	if b.open == nil {
		return
	}
	bullet := bulletPattern.MatchString(line)
	text := bulletPattern.ReplaceAllString(line, "")
	if report.HasGlyph(text) || b.mode == modeActions {
		if action, ok := report.ClassifyAction(text); ok {
			b.open.Actions = append(b.open.Actions, action)
		}
		return
	}
	text = report.CollapseSpace(text)
	if text == "" {
		return
	}
	if bullet || b.fresh || len(b.parts) == 0 {
		b.flush()
		b.fresh = false
	}
	b.parts = append(b.parts, text)
}

func (b *builder) flush() {
	if len(b.parts) == 0 {
		return
	}
	b.open.Observations = append(b.open.Observations, strings.Join(b.parts, " "))
	b.parts = b.parts[:0]
}

func (b *builder) close() {
	if b.open != nil {
		b.flush()
		if b.open.Valid() {
			b.out = append(b.out, *b.open)
		}
	}
	b.open = nil
}

func isTableLine(line string) bool {
	return strings.HasPrefix(line, "|")
}

func isRule(line string) bool {
	trimmed := strings.Trim(line, "-*_ ")
	return trimmed == "" && len(line) >= 3
}
