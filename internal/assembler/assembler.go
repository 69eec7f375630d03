// Package assembler turns a markdown document into a report record: metadata
// first, then sections, then every field of the chosen variant through the
// strategy dispatcher, and finally the variant's cardinality checks.
package assembler

import (
	"fmt"

	"github.com/goliatone/go-reportmd/internal/dispatch"
	"github.com/goliatone/go-reportmd/internal/document"
	"github.com/goliatone/go-reportmd/internal/logging"
	"github.com/goliatone/go-reportmd/internal/metadata"
	"github.com/goliatone/go-reportmd/internal/report"
	"github.com/goliatone/go-reportmd/internal/sections"
	"github.com/goliatone/go-reportmd/internal/variants"
	"github.com/goliatone/go-reportmd/pkg/interfaces"
)

// Version identifies the extraction heuristics. It changes whenever the same
// input could produce a different record, and callers key caches on it.
const Version = "2026.10.1"

// Assembler is stateless apart from its options and safe for concurrent use.
type Assembler struct {
	logger  interfaces.Logger
	version string
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithLogger sets the logger used for debug diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(a *Assembler) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithVersion overrides the version stamped on records.
func WithVersion(version string) Option {
	return func(a *Assembler) {
		if version != "" {
			a.version = version
		}
	}
}

// New builds an Assembler.
func New(opts ...Option) *Assembler {
	a := &Assembler{
		logger:  logging.NoOp(),
		version: Version,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Version returns the version stamped on records.
func (a *Assembler) Version() string {
	return a.version
}

// Assemble extracts a record from doc using variant. Structural gaps never
// fail: missing sections resolve to empty fields and missing metadata to
// sentinels. The only failure for a well-formed variant is a cardinality
// mismatch, returned as a wrapped *SchemaViolation for the first failing field
// in variant order.
func (a *Assembler) Assemble(doc document.RawDocument, variant variants.Variant) (*report.Record, error) {
	logger := logging.WithDocumentContext(a.logger, "", doc.Fingerprint(), variant.Name)

	known := append(variant.SectionNames(), metadata.OverviewSections...)
	split := sections.SplitWith(doc.Body(), known)
	logger.Debug("report.sections.split", "strategy", split.Strategy, "count", len(split.Sections))

	record := report.NewRecord(variant.Name, a.version, doc.Fingerprint())
	record.CaseInfo = metadata.Extract(doc, split.Sections)
	record.Diagnostics.SectionStrategy = split.Strategy
	record.Diagnostics.Sections = make([]string, 0, len(split.Sections))
	for _, sec := range split.Sections {
		record.Diagnostics.Sections = append(record.Diagnostics.Sections, sec.Title)
	}
	logger.Debug("report.metadata.extracted", "source", record.CaseInfo.Source)

	for _, field := range variant.Fields {
		diag, err := a.resolveField(record, split.Sections, known, field)
		if err != nil {
			return nil, wrapInvalidVariant(err)
		}
		record.Diagnostics.Fields = append(record.Diagnostics.Fields, diag)
		if diag.Count == 0 {
			logger.Debug("report.field.empty", "field", field.Name)
			continue
		}
		logger.Debug("report.field.resolved",
			"field", field.Name,
			"section", diag.Section,
			"strategy", diag.Strategy,
			"count", diag.Count,
		)
	}

	if violation := checkCardinality(record, variant); violation != nil {
		logger.Warn("report.schema.violation",
			"field", violation.Field,
			"expected", violation.Expected,
			"actual", violation.Actual,
		)
		return nil, wrapSchemaViolation(violation)
	}
	return record, nil
}

func (a *Assembler) resolveField(record *report.Record, secs []sections.Section, known []string, field variants.Field) (report.FieldDiagnostic, error) {
	diag := report.FieldDiagnostic{Field: field.Name}
	switch field.Kind {
	case dispatch.KindLabeled:
		strategies, err := dispatch.LabeledStrategies(field.Strategies)
		if err != nil {
			return diag, err
		}
		outcome := dispatch.Resolve(secs, dispatch.Field[report.LabeledEntry]{
			Name:       field.Name,
			Candidates: field.Synonyms,
			Known:      known,
			Strategies: strategies,
			Valid:      report.LabeledEntry.Valid,
		})
		record.Entries[field.Name] = outcome.Items
		return describe(diag, outcome.Section, outcome.Strategy, len(outcome.Items)), nil
	case dispatch.KindNumbered:
		strategies, err := dispatch.NumberedStrategies(field.Strategies)
		if err != nil {
			return diag, err
		}
		outcome := dispatch.Resolve(secs, dispatch.Field[report.NumberedEntry]{
			Name:       field.Name,
			Candidates: field.Synonyms,
			Known:      known,
			Strategies: strategies,
			Valid:      report.NumberedEntry.Valid,
		})
		record.Numbered[field.Name] = outcome.Items
		return describe(diag, outcome.Section, outcome.Strategy, len(outcome.Items)), nil
	case dispatch.KindDocuments:
		strategies, err := dispatch.DocumentStrategies(field.Strategies)
		if err != nil {
			return diag, err
		}
		outcome := dispatch.Resolve(secs, dispatch.Field[report.ReviewedDocumentRecord]{
			Name:       field.Name,
			Candidates: field.Synonyms,
			Known:      known,
			Strategies: strategies,
			Valid:      report.ReviewedDocumentRecord.Valid,
		})
		record.Documents[field.Name] = outcome.Items
		return describe(diag, outcome.Section, outcome.Strategy, len(outcome.Items)), nil
	default:
		return diag, fmt.Errorf("%w: %q for field %q", dispatch.ErrUnknownKind, field.Kind, field.Name)
	}
}

func describe(diag report.FieldDiagnostic, section, strategy string, count int) report.FieldDiagnostic {
	diag.Section = section
	diag.Strategy = strategy
	diag.Count = count
	return diag
}

func checkCardinality(record *report.Record, variant variants.Variant) *SchemaViolation {
	for _, field := range variant.Fields {
		expected, ok := field.Expected()
		if !ok {
			continue
		}
		if actual := record.Count(field.Name); actual != expected {
			return &SchemaViolation{Field: field.Name, Expected: expected, Actual: actual}
		}
	}
	return nil
}
