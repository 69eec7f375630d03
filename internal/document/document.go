// Package document wraps caller-supplied markdown into an immutable value with
// a stable content fingerprint. The extractor never mutates a RawDocument.
package document

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/adrg/frontmatter"
	"golang.org/x/text/unicode/norm"
)

// RawDocument is a normalised markdown document plus its fingerprint.
type RawDocument struct {
	text        string
	body        string
	fingerprint string
	frontMatter map[string]any
	repaired    bool
}

// New normalises text (UTF-8 repair, NFC, LF line endings), fingerprints the
// normalised form and splits off any leading YAML frontmatter. Malformed
// frontmatter is left in the body untouched.
func New(text string) RawDocument {
	repaired := false
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "\uFFFD")
		repaired = true
	}
	text = strings.TrimPrefix(text, "\uFEFF")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = norm.NFC.String(text)

	doc := RawDocument{
		text:        text,
		body:        text,
		fingerprint: Fingerprint(text),
		repaired:    repaired,
	}

	if meta, body, ok := splitFrontMatter(text); ok {
		doc.frontMatter = meta
		doc.body = body
	}
	return doc
}

// Fingerprint returns the hex SHA-256 digest of text.
func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Text returns the full normalised document, frontmatter included.
func (d RawDocument) Text() string { return d.text }

// Body returns the markdown with any frontmatter removed.
func (d RawDocument) Body() string { return d.body }

// Fingerprint returns the content fingerprint of the normalised text.
func (d RawDocument) Fingerprint() string { return d.fingerprint }

// Repaired reports whether invalid UTF-8 sequences were replaced.
func (d RawDocument) Repaired() bool { return d.repaired }

// FrontMatter returns a copy of the parsed frontmatter, nil when absent.
func (d RawDocument) FrontMatter() map[string]any {
	if len(d.frontMatter) == 0 {
		return nil
	}
	out := make(map[string]any, len(d.frontMatter))
	for key, value := range d.frontMatter {
		out[key] = value
	}
	return out
}

// FrontMatterString looks up the first non-empty string value among keys,
// matching keys case-insensitively.
func (d RawDocument) FrontMatterString(keys ...string) string {
	if len(d.frontMatter) == 0 {
		return ""
	}
	for _, key := range keys {
		for candidate, value := range d.frontMatter {
			if !strings.EqualFold(candidate, key) {
				continue
			}
			if s := stringValue(value); s != "" {
				return s
			}
		}
	}
	return ""
}

func splitFrontMatter(text string) (map[string]any, string, bool) {
	if !strings.HasPrefix(text, "---\n") {
		return nil, text, false
	}
	var meta map[string]any
	body, err := frontmatter.Parse(strings.NewReader(text), &meta)
	if err != nil || len(meta) == 0 {
		return nil, text, false
	}
	return meta, string(bytes.TrimLeft(body, "\n")), true
}

func stringValue(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case int, int64, uint64, float64:
		return fmt.Sprint(v)
	case time.Time:
		return v.Format(time.DateOnly)
	default:
		return ""
	}
}
