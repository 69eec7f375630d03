package dispatch

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-reportmd/internal/report"
	"github.com/goliatone/go-reportmd/internal/sections"
)

func words(block string) ([]string, bool) {
	fields := strings.Fields(block)
	return fields, len(fields) > 0
}

func never(string) ([]string, bool) { return nil, false }

func TestResolveFirstNonEmptyStrategyWins(t *testing.T) {
	secs := []sections.Section{
		{Title: "Strengths", Body: "alpha beta", Ordinal: 1},
	}
	field := Field[string]{
		Name:       "strengths",
		Candidates: []string{"Strengths"},
		Strategies: []Strategy[string]{
			{Name: "never", Parse: never},
			{Name: "words", Parse: words},
		},
	}
	outcome := Resolve(secs, field)
	if !outcome.Found() {
		t.Fatalf("expected outcome to be found")
	}
	if outcome.Strategy != "words" || outcome.Section != "Strengths" {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if len(outcome.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(outcome.Items))
	}
}

func TestResolveFallsThroughToSynonym(t *testing.T) {
	secs := []sections.Section{
		{Title: "Strengths", Body: "", Ordinal: 1},
		{Title: "Areas of Strength", Body: "gamma", Ordinal: 2},
	}
	field := Field[string]{
		Name:       "strengths",
		Candidates: []string{"Strengths", "Areas of Strength"},
		Strategies: []Strategy[string]{{Name: "words", Parse: words}},
	}
	outcome := Resolve(secs, field)
	if outcome.Section != "Areas of Strength" || outcome.Lookup != sections.LookupTitle {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
}

func TestResolveFiltersInvalidItems(t *testing.T) {
	secs := []sections.Section{{Title: "Notes", Body: "x yy", Ordinal: 1}}
	field := Field[string]{
		Name:       "notes",
		Candidates: []string{"Notes"},
		Strategies: []Strategy[string]{{Name: "words", Parse: words}},
		Valid:      func(s string) bool { return len(s) > 1 },
	}
	outcome := Resolve(secs, field)
	if len(outcome.Items) != 1 || outcome.Items[0] != "yy" {
		t.Fatalf("expected only valid items, got %v", outcome.Items)
	}

	field.Valid = func(string) bool { return false }
	outcome = Resolve(secs, field)
	if outcome.Found() || outcome.Items == nil {
		t.Fatalf("expected empty non-nil items, got %#v", outcome.Items)
	}
}

func TestResolveEmptyOnBodyFallback(t *testing.T) {
	secs := sections.Split("No headings at all.", []string{"Strengths"})
	outcome := Resolve(secs, Field[string]{
		Name:       "strengths",
		Candidates: []string{"Strengths"},
		Strategies: []Strategy[string]{{Name: "words", Parse: words}},
	})
	if outcome.Found() {
		t.Fatalf("expected no data, got %+v", outcome)
	}
	if outcome.Strategy != "" || outcome.Section != "" {
		t.Fatalf("expected empty provenance, got %+v", outcome)
	}
}

func TestTryRecoversFromPanics(t *testing.T) {
	boom := Strategy[string]{Name: "boom", Parse: func(string) ([]string, bool) { panic("bad input") }}
	if _, ok := Try("text", boom, nil); ok {
		t.Fatalf("expected a panicking strategy to be skipped")
	}
}

func TestStrategyRegistries(t *testing.T) {
	labeled, err := LabeledStrategies(DefaultLabeled)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(labeled) != 2 || labeled[0].Name != StrategyTable {
		t.Fatalf("unexpected labeled strategies %+v", labeled)
	}

	if _, err := NumberedStrategies(DefaultNumbered); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := DocumentStrategies([]string{"freeform"}); !errors.Is(err, ErrUnknownStrategy) {
		t.Fatalf("expected ErrUnknownStrategy, got %v", err)
	}
	if _, err := StrategyNames("bogus"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestResolveLabeledTableThenFreeform(t *testing.T) {
	doc := "## Strengths\n**Peer Helper:** Reminds classmates\n\n## Challenges\n| Challenge | What You See | What to Do |\n|---|---|---|\n| Focus | Drifts | ✔ Seat near front |\n"
	known := []string{"Strengths", "Challenges"}
	secs := sections.Split(doc, known)
	strategies, err := LabeledStrategies(DefaultLabeled)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	strengths := Resolve(secs, Field[report.LabeledEntry]{
		Name: "strengths", Candidates: []string{"Strengths"}, Known: known,
		Strategies: strategies, Valid: report.LabeledEntry.Valid,
	})
	if strengths.Strategy != StrategyFreeform || len(strengths.Items) != 1 {
		t.Fatalf("expected freeform strengths, got %+v", strengths)
	}

	challenges := Resolve(secs, Field[report.LabeledEntry]{
		Name: "challenges", Candidates: []string{"Challenges"}, Known: known,
		Strategies: strategies, Valid: report.LabeledEntry.Valid,
	})
	if challenges.Strategy != StrategyTable || len(challenges.Items) != 1 {
		t.Fatalf("expected table challenges, got %+v", challenges)
	}
	if challenges.Items[0].Actions[0].Text != "Seat near front" {
		t.Fatalf("unexpected action %+v", challenges.Items[0].Actions)
	}
}

func TestNumberedFallsBackToTable(t *testing.T) {
	strategies, err := NumberedStrategies(DefaultNumbered)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	secs := []sections.Section{{
		Title:   "Barriers",
		Body:    "| Barrier | Description |\n|---|---|\n| Attention | Drifts during work |\n",
		Ordinal: 1,
	}}
	outcome := Resolve(secs, Field[report.NumberedEntry]{
		Name: "barriers", Candidates: []string{"Barriers"},
		Strategies: strategies, Valid: report.NumberedEntry.Valid,
	})
	if outcome.Strategy != StrategyTable || len(outcome.Items) != 1 {
		t.Fatalf("expected table fallback, got %+v", outcome)
	}
	if outcome.Items[0].Ordinal != 1 || outcome.Items[0].Description != "Drifts during work" {
		t.Fatalf("unexpected entry %+v", outcome.Items[0])
	}
}
