package freeform

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-reportmd/internal/report"
)

var (
	documentFieldPattern = regexp.MustCompile(`(?i)^(?:[-*+•]\s+)?\**\s*(author|authors|evaluator|examiner|prepared by|completed by|provider|date|dated|date of report|key findings|findings|summary|results)\s*\**\s*:\s*\**\s*(.*)$`)
	documentTitlePattern = regexp.MustCompile(`^(?:[-*+•]\s+|\d+[.)]\s+)?\*\*([^*]+?)\*\*\s*(?:\(([^)]*)\))?\s*[:\-–]?\s*(.*)$`)
	hasDigitPattern      = regexp.MustCompile(`\d`)
)

type documentDraft struct {
	title, author, date string
	findings            []string
}

// Documents reads reviewed-document records written as labeled blocks. A bold
// title opens a record; "Author:", "Date:" and "Key Findings:" lines fill its
// fields and any other text extends its findings. The one-line form
// "- **Title** (Author, Date): findings" is accepted as well.
func Documents(block string) ([]report.ReviewedDocumentRecord, bool) {
	var (
		out  []report.ReviewedDocumentRecord
		open *documentDraft
	)
	flush := func() {
		if open == nil {
			return
		}
		record := report.NewReviewedDocument(open.title, open.author, open.date, strings.Join(open.findings, " "))
		if record.Valid() {
			out = append(out, record)
		}
		open = nil
	}

	for _, raw := range strings.Split(block, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || isTableLine(line) || isRule(line) {
			continue
		}
		if m := documentFieldPattern.FindStringSubmatch(line); m != nil {
			if open == nil {
				continue
			}
			value := report.CleanTitle(m[2])
			switch field := strings.ToLower(m[1]); {
			case strings.HasPrefix(field, "date") || field == "dated":
				open.date = value
			case strings.Contains(field, "find") || field == "summary" || field == "results":
				open.findings = appendText(open.findings, m[2])
			default:
				open.author = value
			}
			continue
		}
		if m := documentTitlePattern.FindStringSubmatch(line); m != nil {
			flush()
			open = &documentDraft{title: report.CleanTitle(m[1])}
			open.author, open.date = splitAttribution(m[2])
			open.findings = appendText(open.findings, m[3])
			continue
		}
		if m := subHeadingPattern.FindStringSubmatch(line); m != nil {
			flush()
			open = &documentDraft{title: report.CleanTitle(m[1])}
			continue
		}
		if open != nil {
			open.findings = appendText(open.findings, bulletPattern.ReplaceAllString(line, ""))
		}
	}
	flush()
	return out, len(out) > 0
}

// splitAttribution reads "(Author, Date)". A single value is a date when it
// contains a digit.
func splitAttribution(text string) (string, string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ""
	}
	if i := strings.LastIndex(text, ","); i >= 0 {
		author, date := strings.TrimSpace(text[:i]), strings.TrimSpace(text[i+1:])
		if hasDigitPattern.MatchString(date) {
			return author, date
		}
		return text, ""
	}
	if hasDigitPattern.MatchString(text) {
		return "", text
	}
	return text, ""
}

func appendText(parts []string, text string) []string {
	if text = report.CollapseSpace(text); text != "" {
		parts = append(parts, text)
	}
	return parts
}
