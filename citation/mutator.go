package citation

import (
	"fmt"
	"strings"
)

// Mutator owns the mutable document buffer.
type Mutator struct {
	text string
}

// NewMutator returns a mutator over text.
func NewMutator(text string) *Mutator {
	return &Mutator{text: text}
}

// Export returns the current buffer.
func (m *Mutator) Export() string {
	return m.text
}

// IsLive reports whether the citation's complete text still occurs in the buffer.
func (m *Mutator) IsLive(c Citation) bool {
	return strings.Contains(m.text, c.Complete)
}

// ReplaceFirstOccurrence replaces the first occurrence of needle with
// replacement. The buffer is left untouched when needle is absent.
func (m *Mutator) ReplaceFirstOccurrence(needle, replacement string) error {
	if needle == "" {
		return ErrEmptyNeedle
	}
	pos := strings.Index(m.text, needle)
	if pos < 0 {
		return fmt.Errorf("replace %q: %w", needle, ErrNotFound)
	}
	m.text = m.text[:pos] + replacement + m.text[pos+len(needle):]
	return nil
}

// ReplaceByContent rewrites every occurrence of the indexed citations whose
// content equals content. Matches are taken from idx, never from a re-scan of
// the buffer. With skipFirst, the first occurrence of the first match is
// preserved: the buffer is split right after it and only the remainder is
// rewritten. It returns the number of occurrences replaced.
func (m *Mutator) ReplaceByContent(idx *Index, content, replacement string, skipFirst bool) int {
	matches := idx.SearchByContent(content)
	if len(matches) == 0 {
		return 0
	}

	first := matches[0].Complete
	replaced := 0
	for _, c := range matches {
		if !skipFirst {
			replaced += strings.Count(m.text, c.Complete)
			m.text = strings.ReplaceAll(m.text, c.Complete, replacement)
			continue
		}

		// Nothing left to protect once first has been rewritten elsewhere.
		left, right, found := strings.Cut(m.text, first)
		if !found {
			replaced += strings.Count(m.text, c.Complete)
			m.text = strings.ReplaceAll(m.text, c.Complete, replacement)
			continue
		}
		replaced += strings.Count(right, c.Complete)
		m.text = left + first + strings.ReplaceAll(right, c.Complete, replacement)
	}
	return replaced
}
