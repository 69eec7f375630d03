package assembler

import (
	"reflect"
	"strings"
	"sync"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-reportmd/internal/document"
	"github.com/goliatone/go-reportmd/internal/report"
	"github.com/goliatone/go-reportmd/internal/sections"
	"github.com/goliatone/go-reportmd/internal/variants"
	"github.com/goliatone/go-reportmd/pkg/testsupport"
)

func loadVariant(t *testing.T, name string) variants.Variant {
	t.Helper()
	registry, err := variants.Builtin()
	if err != nil {
		t.Fatalf("builtin variants: %v", err)
	}
	variant, err := registry.Get(name)
	if err != nil {
		t.Fatalf("get variant %s: %v", name, err)
	}
	return variant
}

func readFixture(t *testing.T, name string) string {
	t.Helper()
	return testsupport.Fixture(t, name)
}

func TestAssembleFullReport(t *testing.T) {
	doc := document.New(readFixture(t, "full_report.md"))
	record, err := New().Assemble(doc, loadVariant(t, variants.Standard))
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	if record.ExtractorVersion != Version {
		t.Fatalf("expected version %s, got %s", Version, record.ExtractorVersion)
	}
	if record.Fingerprint != doc.Fingerprint() {
		t.Fatalf("expected fingerprint to match the document")
	}
	if record.Diagnostics.SectionStrategy != sections.StrategySectionColon {
		t.Fatalf("unexpected section strategy %s", record.Diagnostics.SectionStrategy)
	}

	info := record.CaseInfo
	if info.StudentName != "Maya Ortiz" || info.Grade != "4th Grade" || info.School != "Riverside Elementary" {
		t.Fatalf("unexpected case info %+v", info)
	}

	strengths := record.Strengths()
	if len(strengths) != 3 {
		t.Fatalf("expected 3 strengths, got %d", len(strengths))
	}
	wantFirst := report.LabeledEntry{
		Title:        "Peer Helper",
		Observations: []string{"Reminds classmates"},
		Actions: []report.Action{
			{Polarity: report.PolarityDo, Text: "Give leadership roles"},
			{Polarity: report.PolarityDont, Text: "Ignore her desire to lead"},
		},
	}
	if !reflect.DeepEqual(strengths[0], wantFirst) {
		t.Fatalf("expected %+v, got %+v", wantFirst, strengths[0])
	}

	challenges := record.Challenges()
	if len(challenges) != 4 {
		t.Fatalf("expected 4 challenges, got %d", len(challenges))
	}
	if len(challenges[0].Actions) != 2 || challenges[0].Actions[1].Polarity != report.PolarityDont {
		t.Fatalf("unexpected challenge actions %+v", challenges[0].Actions)
	}

	docs := record.ReviewedDocuments()
	if len(docs) != 2 || docs[0].KeyFindings != "Average reasoning Weak reading fluency" {
		t.Fatalf("unexpected documents %+v", docs)
	}

	barriers := record.Barriers()
	if len(barriers) != 2 {
		t.Fatalf("expected 2 barriers, got %d", len(barriers))
	}
	wantBarrier := report.NumberedEntry{
		Ordinal:     1,
		Title:       "Reading Fluency",
		Description: "Struggles with decoding",
		Evidence:    "WJ-IV [12th percentile]",
	}
	if barriers[0] != wantBarrier {
		t.Fatalf("expected %+v, got %+v", wantBarrier, barriers[0])
	}
	if barriers[1].Impact != "Misses instructions during long tasks." {
		t.Fatalf("unexpected impact %q", barriers[1].Impact)
	}

	if got := len(record.Accommodations()); got != 2 {
		t.Fatalf("expected 2 accommodations, got %d", got)
	}
	if got := len(record.Strategies()); got != 1 {
		t.Fatalf("expected 1 strategy, got %d", got)
	}

	if len(record.Diagnostics.Fields) != 6 {
		t.Fatalf("expected diagnostics for 6 fields, got %d", len(record.Diagnostics.Fields))
	}
	if d := record.Diagnostics.Fields[0]; d.Field != report.FieldStrengths || d.Strategy != "table" || d.Count != 3 {
		t.Fatalf("unexpected strengths diagnostic %+v", d)
	}
}

func TestAssembleFullReportMatchesGolden(t *testing.T) {
	doc := document.New(readFixture(t, "full_report.md"))
	record, err := New().Assemble(doc, loadVariant(t, variants.Standard))
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	var golden report.Record
	testsupport.Golden(t, "full_report.golden.json", &golden)
	if !reflect.DeepEqual(record.CaseInfo, golden.CaseInfo) {
		t.Fatalf("expected case info %+v, got %+v", golden.CaseInfo, record.CaseInfo)
	}
	if !reflect.DeepEqual(record.Strengths(), golden.Strengths()) {
		t.Fatalf("expected strengths %+v, got %+v", golden.Strengths(), record.Strengths())
	}
}

func TestAssembleStrictVariantPasses(t *testing.T) {
	doc := document.New(readFixture(t, "full_report.md"))
	if _, err := New().Assemble(doc, loadVariant(t, variants.Strict)); err != nil {
		t.Fatalf("expected strict variant to pass, got %v", err)
	}
}

func TestAssembleStrictVariantViolation(t *testing.T) {
	text := `## Strengths
**Kind:** Helps peers.
**Creative:** Builds models.

## Challenges
**Focus:** Drifts.
**Pace:** Slow.
**Memory:** Forgets.
**Writing:** Brief.
`
	_, err := New().Assemble(document.New(text), loadVariant(t, variants.Strict))
	if err == nil {
		t.Fatalf("expected schema violation")
	}
	violation, ok := AsSchemaViolation(err)
	if !ok {
		t.Fatalf("expected *SchemaViolation, got %T: %v", err, err)
	}
	want := SchemaViolation{Field: "strengths", Expected: 3, Actual: 2}
	if *violation != want {
		t.Fatalf("expected %+v, got %+v", want, *violation)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestAssembleMissingMetadataUsesSentinels(t *testing.T) {
	record, err := New().Assemble(document.New("## Strengths\n**Kind:** Helps peers."), loadVariant(t, variants.Standard))
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if record.CaseInfo.StudentName != "Student" || record.CaseInfo.Grade != "Grade Not Specified" {
		t.Fatalf("unexpected case info %+v", record.CaseInfo)
	}
}

func TestAssembleWithoutHeadersYieldsEmptyFields(t *testing.T) {
	record, err := New().Assemble(document.New("Just a paragraph of prose.\n\nAnother one."), loadVariant(t, variants.Standard))
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if record.Diagnostics.SectionStrategy != sections.StrategyNotRecognised {
		t.Fatalf("expected body fallback, got %s", record.Diagnostics.SectionStrategy)
	}
	if !reflect.DeepEqual(record.Diagnostics.Sections, []string{sections.TitleBody}) {
		t.Fatalf("expected single body section, got %v", record.Diagnostics.Sections)
	}
	for _, field := range loadVariant(t, variants.Standard).Fields {
		if n := record.Count(field.Name); n != 0 {
			t.Fatalf("expected %s to be empty, got %d", field.Name, n)
		}
	}
	if record.Strengths() == nil {
		t.Fatalf("expected empty fields to be non-nil slices")
	}
}

func TestAssembleIsDeterministic(t *testing.T) {
	text := readFixture(t, "full_report.md")
	variant := loadVariant(t, variants.Standard)
	first, err := New().Assemble(document.New(text), variant)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	second, err := New().Assemble(document.New(text), variant)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical records for identical input")
	}
}

func TestAssembleConcurrent(t *testing.T) {
	registry, err := variants.Builtin()
	if err != nil {
		t.Fatalf("builtin variants: %v", err)
	}
	variant, err := registry.Get(variants.Standard)
	if err != nil {
		t.Fatalf("get variant: %v", err)
	}
	texts := []string{
		readFixture(t, "full_report.md"),
		"## Strengths\n**Peer Helper**\n- Reminds classmates\n",
		"## Challenges\n**2.1.3. Reading Fluency** - Struggles with decoding (WJ-IV [12th percentile])\n",
		"text",
	}
	a := New()
	baseline := make([]*report.Record, len(texts))
	for i, text := range texts {
		record, err := a.Assemble(document.New(text), variant)
		if err != nil {
			t.Fatalf("assemble %d: %v", i, err)
		}
		baseline[i] = record
	}

	const workers = 32
	var wg sync.WaitGroup
	errs := make(chan string, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			i := w % len(texts)
			if _, err := registry.Get(variants.Standard); err != nil {
				errs <- err.Error()
				return
			}
			record, err := a.Assemble(document.New(texts[i]), variant)
			if err != nil {
				errs <- err.Error()
				return
			}
			if !reflect.DeepEqual(record, baseline[i]) {
				errs <- "record differs from sequential result for input " + texts[i][:min(len(texts[i]), 20)]
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	for msg := range errs {
		t.Error(msg)
	}
}

func TestAssembleRejectsUnknownKind(t *testing.T) {
	variant := variants.Variant{
		Name:   "broken",
		Fields: []variants.Field{{Name: "x", Kind: "paragraphs", Synonyms: []string{"X"}}},
	}
	_, err := New().Assemble(document.New("## X\ntext"), variant)
	if err == nil || !strings.Contains(err.Error(), "variant") {
		t.Fatalf("expected invalid variant error, got %v", err)
	}
	if _, ok := AsSchemaViolation(err); ok {
		t.Fatalf("did not expect a schema violation")
	}
}

func TestWithVersion(t *testing.T) {
	a := New(WithVersion("test-1"))
	record, err := a.Assemble(document.New("text"), loadVariant(t, variants.Standard))
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if record.ExtractorVersion != "test-1" || a.Version() != "test-1" {
		t.Fatalf("expected overridden version, got %s", record.ExtractorVersion)
	}
}

func FuzzAssemble(f *testing.F) {
	f.Add("## Strengths\n| a | b |\n|---|---|\n| | x |\n")
	f.Add("**2.1. **\n(([[]]))")
	f.Add("# Section 1:\n**Section 2:**\n1. **\n")
	f.Add("\xff\xfe|---|\n| ✔ | ✘ |")
	registry, err := variants.Builtin()
	if err != nil {
		f.Fatalf("builtin variants: %v", err)
	}
	standard, _ := registry.Get(variants.Standard)
	a := New()
	f.Fuzz(func(t *testing.T, text string) {
		record, err := a.Assemble(document.New(text), standard)
		if err != nil {
			t.Fatalf("standard variant must not fail: %v", err)
		}
		if record.CaseInfo.StudentName == "" || record.CaseInfo.Grade == "" {
			t.Fatalf("expected sentinels, got %+v", record.CaseInfo)
		}
	})
}
