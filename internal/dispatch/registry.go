package dispatch

import (
	"errors"
	"fmt"
	"sort"

	"github.com/goliatone/go-reportmd/internal/freeform"
	"github.com/goliatone/go-reportmd/internal/numbered"
	"github.com/goliatone/go-reportmd/internal/report"
	"github.com/goliatone/go-reportmd/internal/tables"
)

// Field kinds. The kind decides which item type a field resolves to and which
// strategies it may name.
const (
	KindLabeled   = "labeled"
	KindNumbered  = "numbered"
	KindDocuments = "documents"
)

// Strategy names shared across kinds.
const (
	StrategyTable    = "table"
	StrategyFreeform = "freeform"
	StrategyLabeled  = "labeled"
)

// ErrUnknownStrategy is returned when a field names a strategy its kind does
// not provide.
var ErrUnknownStrategy = errors.New("dispatch: unknown strategy")

// ErrUnknownKind is returned for a field kind other than labeled, numbered or
// documents.
var ErrUnknownKind = errors.New("dispatch: unknown field kind")

var labeledStrategies = map[string]Parser[report.LabeledEntry]{
	StrategyTable:    tables.ParseEntries,
	StrategyFreeform: freeform.Parse,
}

var numberedStrategies = map[string]Parser[report.NumberedEntry]{
	numbered.StrategyMultiLevel: numbered.ParseMultiLevel,
	numbered.StrategySimple:     numbered.ParseSimple,
	numbered.StrategyLegacy:     numbered.ParseLegacy,
	StrategyTable:               fromLabeled(tables.ParseEntries),
	StrategyFreeform:            fromLabeled(freeform.Parse),
}

var documentStrategies = map[string]Parser[report.ReviewedDocumentRecord]{
	StrategyTable:   tables.ParseDocuments,
	StrategyLabeled: freeform.Documents,
}

// Default strategy orders per kind.
var (
	DefaultLabeled   = []string{StrategyTable, StrategyFreeform}
	DefaultNumbered  = []string{numbered.StrategyMultiLevel, numbered.StrategySimple, numbered.StrategyLegacy, StrategyTable, StrategyFreeform}
	DefaultDocuments = []string{StrategyTable, StrategyLabeled}
)

// Kinds lists the supported field kinds.
func Kinds() []string {
	return []string{KindLabeled, KindNumbered, KindDocuments}
}

// DefaultStrategies returns the default strategy order for kind.
func DefaultStrategies(kind string) ([]string, error) {
	switch kind {
	case KindLabeled:
		return append([]string(nil), DefaultLabeled...), nil
	case KindNumbered:
		return append([]string(nil), DefaultNumbered...), nil
	case KindDocuments:
		return append([]string(nil), DefaultDocuments...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// StrategyNames lists the strategies available to kind, sorted.
func StrategyNames(kind string) ([]string, error) {
	var names []string
	switch kind {
	case KindLabeled:
		names = keys(labeledStrategies)
	case KindNumbered:
		names = keys(numberedStrategies)
	case KindDocuments:
		names = keys(documentStrategies)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	sort.Strings(names)
	return names, nil
}

// LabeledStrategies resolves strategy names for a labeled field.
func LabeledStrategies(names []string) ([]Strategy[report.LabeledEntry], error) {
	return lookup(labeledStrategies, KindLabeled, names)
}

// NumberedStrategies resolves strategy names for a numbered field.
func NumberedStrategies(names []string) ([]Strategy[report.NumberedEntry], error) {
	return lookup(numberedStrategies, KindNumbered, names)
}

// DocumentStrategies resolves strategy names for a reviewed-documents field.
func DocumentStrategies(names []string) ([]Strategy[report.ReviewedDocumentRecord], error) {
	return lookup(documentStrategies, KindDocuments, names)
}

func lookup[T any](table map[string]Parser[T], kind string, names []string) ([]Strategy[T], error) {
	out := make([]Strategy[T], 0, len(names))
	for _, name := range names {
		parse, ok := table[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q for %s fields", ErrUnknownStrategy, name, kind)
		}
		out = append(out, Strategy[T]{Name: name, Parse: parse})
	}
	return out, nil
}

func fromLabeled(parse Parser[report.LabeledEntry]) Parser[report.NumberedEntry] {
	return func(block string) ([]report.NumberedEntry, bool) {
		entries, ok := parse(block)
		if !ok {
			return nil, false
		}
		out := numbered.FromLabeled(entries)
		return out, len(out) > 0
	}
}

func keys[T any](table map[string]Parser[T]) []string {
	out := make([]string, 0, len(table))
	for name := range table {
		out = append(out, name)
	}
	return out
}
