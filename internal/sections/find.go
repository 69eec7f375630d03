package sections

import "strings"

// Match describes where a field's text was located.
type Match struct {
	Text    string
	Section string
	How     string
}

// Lookup modes reported in Match.How.
const (
	LookupTitle      = "title"
	LookupSubHeading = "sub-heading"
	LookupContains   = "contains"
)

// Find locates the text for a field. Every candidate name is first compared
// with section titles, then searched for as a sub-heading block inside any
// section, and finally as words contained in a section title. Within each pass
// candidates keep their order. known is the full set of section names of the
// variant; it bounds bold sub-heading blocks.
func Find(secs []Section, candidates []string, known []string) (Match, bool) {
	all := FindAll(secs, candidates, NewNameSet(known))
	if len(all) == 0 {
		return Match{}, false
	}
	return all[0], true
}

// FindAll returns every location in the order Find would consider them.
func FindAll(secs []Section, candidates []string, known NameSet) []Match {
	var out []Match
	seen := map[string]struct{}{}
	add := func(m Match) {
		key := m.How + "\x00" + m.Section + "\x00" + m.Text
		if _, ok := seen[key]; ok || strings.TrimSpace(m.Text) == "" {
			return
		}
		seen[key] = struct{}{}
		out = append(out, m)
	}

	keys := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		if key := NormalizeTitle(candidate); key != "" {
			keys = append(keys, key)
		}
	}
	pool := searchable(secs)

	for _, key := range keys {
		for _, sec := range pool {
			if NormalizeTitle(sec.Title) == key {
				add(Match{Text: sec.Body, Section: sec.Title, How: LookupTitle})
			}
		}
	}
	for _, key := range keys {
		for _, sec := range pool {
			if text, ok := SubBlock(sec.Body, key, known); ok {
				add(Match{Text: text, Section: sec.Title, How: LookupSubHeading})
			}
		}
	}
	for _, key := range keys {
		for _, sec := range pool {
			title := NormalizeTitle(sec.Title)
			if title != key && containsWords(title, key) {
				add(Match{Text: sec.Body, Section: sec.Title, How: LookupContains})
			}
		}
	}
	return out
}

// SubBlock returns the lines under a heading named name inside body, up to the
// next heading of the same or a higher level. Bold-line headings end at the
// next markdown heading or the next bold line naming a known section.
func SubBlock(body, name string, known NameSet) (string, bool) {
	key := NormalizeTitle(name)
	lines := strings.Split(body, "\n")
	for i, raw := range lines {
		level, title, ok := headingLine(raw)
		if !ok || NormalizeTitle(title) != key {
			continue
		}
		var collected []string
		for _, next := range lines[i+1:] {
			if stopsBlock(next, level, known) {
				break
			}
			collected = append(collected, next)
		}
		text := strings.TrimSpace(strings.Join(collected, "\n"))
		if text == "" {
			continue
		}
		return text, true
	}
	return "", false
}

func stopsBlock(line string, level int, known NameSet) bool {
	nextLevel, title, ok := headingLine(line)
	if !ok {
		return false
	}
	if nextLevel > 0 {
		return level == 0 || nextLevel <= level
	}
	return known.Has(title)
}

func searchable(secs []Section) []Section {
	out := make([]Section, 0, len(secs))
	for _, sec := range secs {
		if sec.Title == TitleBody && sec.Ordinal == 1 && len(secs) == 1 {
			continue
		}
		out = append(out, sec)
	}
	return out
}

func containsWords(haystack, needle string) bool {
	return strings.Contains(" "+haystack+" ", " "+needle+" ")
}
