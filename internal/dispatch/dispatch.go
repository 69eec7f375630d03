// Package dispatch resolves a report field by trying candidate sections and
// parse strategies in a fixed order. Strategies are plain functions, so the
// fallback order of every field is a value that can be inspected and tested.
package dispatch

import (
	"github.com/goliatone/go-reportmd/internal/sections"
)

// Parser turns a section block into items. The boolean is false when the
// block does not have the shape the parser understands.
type Parser[T any] func(block string) ([]T, bool)

// Strategy is a named Parser.
type Strategy[T any] struct {
	Name  string
	Parse Parser[T]
}

// Field describes how one report field is located and parsed. Candidates are
// section names, primary name first. Known bounds sub-heading blocks and is
// usually the full list of section names of the variant. Valid filters items
// before a result is accepted; nil accepts everything.
type Field[T any] struct {
	Name       string
	Candidates []string
	Known      []string
	Strategies []Strategy[T]
	Valid      func(T) bool
}

// Outcome is the resolved value of a field plus where it came from. Section,
// Lookup and Strategy are empty when nothing was found.
type Outcome[T any] struct {
	Field    string
	Section  string
	Lookup   string
	Strategy string
	Items    []T
}

// Found reports whether the field resolved to at least one item.
func (o Outcome[T]) Found() bool {
	return len(o.Items) > 0
}

// Resolve walks every located candidate section and, for each, every strategy
// in order. The first strategy that returns a non-empty list of valid items
// wins. Exhausting all options yields an empty, non-nil Items slice; that is
// the normal "no data present" outcome and not an error.
func Resolve[T any](secs []sections.Section, field Field[T]) Outcome[T] {
	outcome := Outcome[T]{Field: field.Name, Items: []T{}}
	if len(field.Strategies) == 0 {
		return outcome
	}

	matches := sections.FindAll(secs, field.Candidates, sections.NewNameSet(field.Known))
	for _, match := range matches {
		for _, strategy := range field.Strategies {
			if items, ok := Try(match.Text, strategy, field.Valid); ok {
				outcome.Section = match.Section
				outcome.Lookup = match.How
				outcome.Strategy = strategy.Name
				outcome.Items = items
				return outcome
			}
		}
	}
	return outcome
}

// Try runs a single strategy and filters its output. A strategy that panics
// on malformed input counts as not matching.
func Try[T any](block string, strategy Strategy[T], valid func(T) bool) (items []T, ok bool) {
	if strategy.Parse == nil {
		return nil, false
	}
	defer func() {
		if recover() != nil {
			items, ok = nil, false
		}
	}()

	parsed, matched := strategy.Parse(block)
	if !matched {
		return nil, false
	}
	out := make([]T, 0, len(parsed))
	for _, item := range parsed {
		if valid == nil || valid(item) {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}
