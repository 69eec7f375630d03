package report

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	// DefaultStudentName is used when no subject name can be located.
	DefaultStudentName = "Student"
	// DefaultGrade is used when no grade can be located.
	DefaultGrade = "Grade Not Specified"
	// NotSpecified fills absent reviewed-document fields.
	NotSpecified = "Not specified"
)

// Well-known field names used by the built-in variants.
const (
	FieldStrengths      = "strengths"
	FieldChallenges     = "challenges"
	FieldStrategies     = "strategies"
	FieldDocuments      = "documents"
	FieldBarriers       = "barriers"
	FieldAccommodations = "accommodations"
)

// Polarity marks an action as recommended or to be avoided.
type Polarity string

const (
	PolarityDo   Polarity = "do"
	PolarityDont Polarity = "dont"
)

// Action is a single recommendation attached to a labeled entry.
type Action struct {
	Polarity Polarity `json:"polarity"`
	Text     string   `json:"text"`
}

// LabeledEntry is the shared shape of strengths, challenges and strategies.
type LabeledEntry struct {
	Title        string   `json:"title"`
	Observations []string `json:"observations"`
	Actions      []Action `json:"actions"`
}

// Validate reports whether the entry can be accepted into a record.
func (e LabeledEntry) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Title, validation.Required, validation.By(notBlank)),
	)
}

// Valid is the predicate form of Validate used by the dispatcher.
func (e LabeledEntry) Valid() bool {
	return e.Validate() == nil
}

// ReviewedDocumentRecord describes a source document the report was built from.
// Absent fields carry NotSpecified so downstream rendering never sees empty values.
type ReviewedDocumentRecord struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Date        string `json:"date"`
	KeyFindings string `json:"key_findings"`
}

// NewReviewedDocument builds a record, substituting NotSpecified for blank values.
func NewReviewedDocument(title, author, date, findings string) ReviewedDocumentRecord {
	return ReviewedDocumentRecord{
		Title:       orNotSpecified(title),
		Author:      orNotSpecified(author),
		Date:        orNotSpecified(date),
		KeyFindings: orNotSpecified(findings),
	}
}

// Valid rejects records that carry no title.
func (d ReviewedDocumentRecord) Valid() bool {
	title := strings.TrimSpace(d.Title)
	return title != "" && title != NotSpecified
}

// NumberedEntry is a barrier or accommodation keyed by its numbering scheme.
// Ordinal is the position within that scheme ("2.1" yields 1). Evidence and
// Impact are empty when the entry does not carry them.
type NumberedEntry struct {
	Ordinal     int    `json:"ordinal"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Evidence    string `json:"evidence,omitempty"`
	Impact      string `json:"impact,omitempty"`
}

// Validate reports whether the entry can be accepted into a record.
func (e NumberedEntry) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Title, validation.Required, validation.By(notBlank)),
		validation.Field(&e.Ordinal, validation.Required, validation.Min(1)),
	)
}

// Valid is the predicate form of Validate used by the dispatcher.
func (e NumberedEntry) Valid() bool {
	return e.Validate() == nil
}

// HasEvidence reports whether an evidence citation was found.
func (e NumberedEntry) HasEvidence() bool {
	return strings.TrimSpace(e.Evidence) != ""
}

// CaseInfo carries the subject metadata found at the top of a report.
type CaseInfo struct {
	StudentName string `json:"student_name"`
	Grade       string `json:"grade"`
	Cohort      string `json:"cohort,omitempty"`
	School      string `json:"school,omitempty"`
	ReportDate  string `json:"report_date,omitempty"`
	// Source names the strategy that produced StudentName.
	Source string `json:"source"`
}

// FieldDiagnostic records which candidate section and strategy resolved a field.
type FieldDiagnostic struct {
	Field    string `json:"field"`
	Section  string `json:"section,omitempty"`
	Strategy string `json:"strategy,omitempty"`
	Count    int    `json:"count"`
}

// Diagnostics summarises how a record was produced.
type Diagnostics struct {
	SectionStrategy string            `json:"section_strategy"`
	Sections        []string          `json:"sections"`
	Fields          []FieldDiagnostic `json:"fields"`
}

// Record is the structured result of one extraction. Every field declared by
// the variant is present in its map, resolving to an empty slice when no data
// was found.
type Record struct {
	Variant          string                              `json:"variant"`
	ExtractorVersion string                              `json:"extractor_version"`
	Fingerprint      string                              `json:"fingerprint"`
	CaseInfo         CaseInfo                            `json:"case_info"`
	Entries          map[string][]LabeledEntry           `json:"entries"`
	Numbered         map[string][]NumberedEntry          `json:"numbered"`
	Documents        map[string][]ReviewedDocumentRecord `json:"documents"`
	Diagnostics      Diagnostics                         `json:"diagnostics"`
}

// NewRecord returns a record with initialised field maps.
func NewRecord(variant, version, fingerprint string) *Record {
	return &Record{
		Variant:          variant,
		ExtractorVersion: version,
		Fingerprint:      fingerprint,
		Entries:          map[string][]LabeledEntry{},
		Numbered:         map[string][]NumberedEntry{},
		Documents:        map[string][]ReviewedDocumentRecord{},
	}
}

func (r *Record) Strengths() []LabeledEntry  { return r.Entries[FieldStrengths] }
func (r *Record) Challenges() []LabeledEntry { return r.Entries[FieldChallenges] }
func (r *Record) Strategies() []LabeledEntry { return r.Entries[FieldStrategies] }

func (r *Record) Barriers() []NumberedEntry       { return r.Numbered[FieldBarriers] }
func (r *Record) Accommodations() []NumberedEntry { return r.Numbered[FieldAccommodations] }

func (r *Record) ReviewedDocuments() []ReviewedDocumentRecord {
	return r.Documents[FieldDocuments]
}

// Count returns the number of items resolved for a field of any kind.
func (r *Record) Count(field string) int {
	if items, ok := r.Entries[field]; ok {
		return len(items)
	}
	if items, ok := r.Numbered[field]; ok {
		return len(items)
	}
	if items, ok := r.Documents[field]; ok {
		return len(items)
	}
	return 0
}

func notBlank(value any) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return validation.NewError("report.blank", "must not be blank")
	}
	return nil
}

func orNotSpecified(value string) string {
	value = CollapseSpace(value)
	if value == "" {
		return NotSpecified
	}
	return value
}
