package citation

import "regexp"

// Index is the collection of citations parsed from a document.
type Index struct {
	citations []Citation
}

// NewIndex scans text and indexes the citations found.
func NewIndex(text string) *Index {
	return &Index{citations: Scan(text)}
}

// Len returns the number of indexed citations.
func (x *Index) Len() int {
	return len(x.citations)
}

// SearchByContent returns the citations whose content equals content exactly,
// in scan order.
func (x *Index) SearchByContent(content string) []Citation {
	var result []Citation
	for _, c := range x.citations {
		if c.Content == content {
			result = append(result, c.clone())
		}
	}
	return result
}

// HasDuplicates reports whether more than one citation has the given content.
func (x *Index) HasDuplicates(content string) bool {
	n := 0
	for _, c := range x.citations {
		if c.Content == content {
			n++
			if n > 1 {
				return true
			}
		}
	}
	return false
}

// Dump returns all indexed citations in scan order.
func (x *Index) Dump() []Citation {
	result := make([]Citation, len(x.citations))
	for i, c := range x.citations {
		result[i] = c.clone()
	}
	return result
}

// HasExactAttribute reports whether document contains name, '=', any single
// character, then value. It is a cheap over-approximation meant for
// pre-filtering: it is not aware of tag or attribute boundaries.
func HasExactAttribute(document, name, value string) bool {
	re, err := regexp.Compile(regexp.QuoteMeta(name) + `=.` + regexp.QuoteMeta(value))
	if err != nil {
		return false
	}
	return re.MatchString(document)
}
