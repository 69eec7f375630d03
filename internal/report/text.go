package report

import (
	"strings"
	"unicode"
)

var bulletPrefixes = []string{"- ", "* ", "+ ", "• ", "– ", "— "}

// StripBullet removes a single leading list marker.
func StripBullet(text string) string {
	text = strings.TrimSpace(text)
	for _, prefix := range bulletPrefixes {
		if strings.HasPrefix(text, prefix) {
			return strings.TrimSpace(text[len(prefix):])
		}
	}
	if text == "-" || text == "*" || text == "•" {
		return ""
	}
	return text
}

// CleanTitle strips emphasis markers, a trailing colon and redundant spacing.
func CleanTitle(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "__", "")
	text = strings.Trim(text, "*_ \t")
	text = strings.TrimSuffix(strings.TrimSpace(text), ":")
	return CollapseSpace(text)
}

// CollapseSpace trims text and folds internal whitespace runs to one space.
func CollapseSpace(text string) string {
	return strings.Join(strings.FieldsFunc(text, unicode.IsSpace), " ")
}

// JoinSpace appends next to current with a single space.
func JoinSpace(current, next string) string {
	next = CollapseSpace(next)
	if next == "" {
		return current
	}
	if current == "" {
		return next
	}
	return current + " " + next
}
