package citation

import "regexp"

// spanPattern matches an opening <ref> tag with an optional attribute
// fragment, a content run free of angle brackets, and the closing tag.
var spanPattern = regexp.MustCompile(`(?i)(<ref([^>]*)>)([^<>]+)(</ref>)`)

// Scan returns every well-formed citation span in text, ordered by the
// position of its opening tag. Spans never overlap. Opening tags without a
// closing tag before the next '<' are skipped.
func Scan(text string) []Citation {
	locs := spanPattern.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}

	citations := make([]Citation, 0, len(locs))
	for _, loc := range locs {
		c := Citation{
			Complete:   text[loc[0]:loc[1]],
			StartTag:   text[loc[2]:loc[3]],
			StartAttrs: text[loc[4]:loc[5]],
			Content:    text[loc[6]:loc[7]],
			EndTag:     text[loc[8]:loc[9]],
		}
		c.Attributes = parseAttributes(c.StartAttrs)
		citations = append(citations, c)
	}
	return citations
}
