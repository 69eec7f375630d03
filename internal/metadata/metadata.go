// Package metadata reads the subject name, grade and related case fields from
// the top of a report. Missing values resolve to sentinels; extraction never
// fails.
package metadata

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-reportmd/internal/document"
	"github.com/goliatone/go-reportmd/internal/report"
	"github.com/goliatone/go-reportmd/internal/sections"
)

// Source values recorded in CaseInfo.Source.
const (
	SourceFrontMatter = "frontmatter"
	SourceHeaderLine  = "header-line"
	SourceLabelLines  = "label-lines"
	SourceOverview    = "overview"
	SourceDefault     = "default"
)

// headerScanLines bounds how far into the body the combined header line is
// looked for.
const headerScanLines = 15

var (
	combinedPattern = regexp.MustCompile(`(?i)\*\*\s*(?:student|subject|name)(?:\s+name)?\s*:?\s*\*\*\s*:?\s*(.+?)\s*\*\*\s*grade(?:\s+level)?\s*:?\s*\*\*\s*:?\s*(.+?)\s*$`)
	studentPattern  = labelPattern(`student(?:\s+name)?|subject|name`)
	gradePattern    = labelPattern(`grade(?:\s+level)?`)
	cohortPattern   = labelPattern(`cohort|class|program`)
	schoolPattern   = labelPattern(`school|campus`)
	datePattern     = labelPattern(`date(?:\s+of\s+(?:report|assessment|evaluation))?|report\s+date|assessment\s+date`)
	overviewPattern = regexp.MustCompile(`^([A-Z][A-Za-z'’-]+(?:\s+[A-Z][A-Za-z'’-]+)*)\s+is\s+an?\s`)
)

// OverviewSections are the section names searched for the "<Name> is a ..."
// sentence.
var OverviewSections = []string{"overview", "student overview", "summary", "profile", "background", "introduction"}

var notNames = map[string]struct{}{
	"this": {}, "the": {}, "it": {}, "he": {}, "she": {}, "they": {}, "there": {},
	"student": {}, "report": {}, "overall": {},
}

func labelPattern(labels string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^(?:[-*+•]\s+)?\**\s*(?:` + labels + `)\s*(?::\s*\**|\**\s*:)\s*(.+?)\s*$`)
}

// Extract resolves case metadata. Strategies run in order and each fills only
// the fields still empty: frontmatter keys, the combined
// "**Subject:** Name **Grade:** Grade" line near the top, independent label
// lines in the first section, then the overview sentence for the name.
func Extract(doc document.RawDocument, secs []sections.Section) report.CaseInfo {
	var info report.CaseInfo

	info.StudentName = doc.FrontMatterString("student", "student_name", "subject", "name")
	info.Grade = doc.FrontMatterString("grade", "grade_level")
	info.Cohort = doc.FrontMatterString("cohort", "class")
	info.School = doc.FrontMatterString("school")
	info.ReportDate = doc.FrontMatterString("date", "report_date")
	if info.StudentName != "" {
		info.Source = SourceFrontMatter
	}

	if name, grade, ok := headerLine(doc.Body()); ok {
		fill(&info.StudentName, name, &info.Source, SourceHeaderLine)
		fill(&info.Grade, grade, nil, "")
	}

	for _, line := range leadingLines(secs) {
		if m := studentPattern.FindStringSubmatch(line); m != nil {
			fill(&info.StudentName, value(m[1]), &info.Source, SourceLabelLines)
		}
		if m := gradePattern.FindStringSubmatch(line); m != nil {
			fill(&info.Grade, value(m[1]), nil, "")
		}
		if m := cohortPattern.FindStringSubmatch(line); m != nil {
			fill(&info.Cohort, value(m[1]), nil, "")
		}
		if m := schoolPattern.FindStringSubmatch(line); m != nil {
			fill(&info.School, value(m[1]), nil, "")
		}
		if m := datePattern.FindStringSubmatch(line); m != nil {
			fill(&info.ReportDate, value(m[1]), nil, "")
		}
	}

	if info.StudentName == "" {
		if name, ok := overviewName(secs); ok {
			info.StudentName, info.Source = name, SourceOverview
		}
	}

	if info.StudentName == "" {
		info.StudentName, info.Source = report.DefaultStudentName, SourceDefault
	}
	if info.Grade == "" {
		info.Grade = report.DefaultGrade
	}
	return info
}

func headerLine(body string) (string, string, bool) {
	lines := strings.SplitN(body, "\n", headerScanLines+1)
	if len(lines) > headerScanLines {
		lines = lines[:headerScanLines]
	}
	for _, line := range lines {
		if m := combinedPattern.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			name, grade := value(m[1]), value(m[2])
			if name != "" || grade != "" {
				return name, grade, true
			}
		}
	}
	return "", "", false
}

// leadingLines returns the lines of the preamble and the first section, or of
// the body fallback when no structure was found.
func leadingLines(secs []sections.Section) []string {
	var out []string
	for _, sec := range secs {
		if sec.Ordinal > 1 {
			break
		}
		for _, line := range strings.Split(sec.Body, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				out = append(out, line)
			}
		}
	}
	return out
}

func overviewName(secs []sections.Section) (string, bool) {
	for _, match := range sections.FindAll(secs, OverviewSections, nil) {
		text := strings.TrimSpace(strings.ReplaceAll(match.Text, "**", ""))
		text = strings.TrimLeft(text, "#*-• ")
		m := overviewPattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if _, skip := notNames[strings.ToLower(strings.Fields(m[1])[0])]; skip {
			continue
		}
		return m[1], true
	}
	return "", false
}

// value cleans a captured field: emphasis, trailing separators and anything
// after a following bold label are removed.
func value(raw string) string {
	if i := strings.Index(raw, "**"); i > 0 {
		raw = raw[:i]
	}
	raw = strings.TrimRight(strings.TrimSpace(raw), " |,;·-–")
	return report.CleanTitle(raw)
}

func fill(field *string, candidate string, source *string, name string) {
	if *field != "" || candidate == "" {
		return
	}
	*field = candidate
	if source != nil {
		*source = name
	}
}
