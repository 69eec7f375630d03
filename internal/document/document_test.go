package document

import (
	"strings"
	"testing"
)

func TestNewNormalisesLineEndingsAndFingerprints(t *testing.T) {
	crlf := New("# Title\r\nBody line\r\n")
	lf := New("# Title\nBody line\n")

	if crlf.Text() != lf.Text() {
		t.Fatalf("expected CRLF and LF inputs to normalise identically, got %q vs %q", crlf.Text(), lf.Text())
	}
	if crlf.Fingerprint() != lf.Fingerprint() {
		t.Fatalf("expected identical fingerprints")
	}
	if len(lf.Fingerprint()) != 64 {
		t.Fatalf("expected hex sha256 fingerprint, got %q", lf.Fingerprint())
	}
	if New("# Other").Fingerprint() == lf.Fingerprint() {
		t.Fatalf("expected different content to fingerprint differently")
	}
}

func TestNewAppliesNFC(t *testing.T) {
	decomposed := New("Zoe\u0308")
	composed := New("Zo\u00eb")
	if decomposed.Text() != composed.Text() {
		t.Fatalf("expected NFC normalisation, got %q vs %q", decomposed.Text(), composed.Text())
	}
}

func TestNewRepairsInvalidUTF8(t *testing.T) {
	doc := New("Name: Ada\xff")
	if !doc.Repaired() {
		t.Fatalf("expected document to be flagged as repaired")
	}
	if !strings.Contains(doc.Text(), "\uFFFD") {
		t.Fatalf("expected replacement character, got %q", doc.Text())
	}
}

func TestNewSplitsFrontMatter(t *testing.T) {
	doc := New("---\nstudent: Maya Lopez\ngrade: 4\n---\n\n## Strengths\n")

	if got := doc.FrontMatterString("Student"); got != "Maya Lopez" {
		t.Fatalf("expected student from frontmatter, got %q", got)
	}
	if got := doc.FrontMatterString("grade"); got != "4" {
		t.Fatalf("expected numeric grade to stringify, got %q", got)
	}
	if !strings.HasPrefix(doc.Body(), "## Strengths") {
		t.Fatalf("expected body without frontmatter, got %q", doc.Body())
	}
	if !strings.HasPrefix(doc.Text(), "---") {
		t.Fatalf("expected Text to keep the original frontmatter")
	}
}

func TestNewWithoutFrontMatter(t *testing.T) {
	doc := New("---\n\nJust a rule above")
	if doc.FrontMatter() != nil {
		t.Fatalf("expected no frontmatter, got %#v", doc.FrontMatter())
	}
	if doc.Body() != doc.Text() {
		t.Fatalf("expected body to equal text when no frontmatter is present")
	}
}
