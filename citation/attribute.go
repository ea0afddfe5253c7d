package citation

import (
	"regexp"
	"sync"
)

// attributeValue matches the value forms accepted after "name=". The
// alternatives are ordered by precedence at a single position:
//
//  1. "value" with the same quote on both ends
//  2. 'value'
//  3. an unquoted run of word characters
//  4. a quoted value cut short by the other quote character
//
// Quote characters can never appear inside a value, so name="joe's" yields
// "joe" through the fourth form.
const attributeValue = `=(?:"([^"']*)"|'([^"']*)'|(\w+)|["']([^"']*)["'])`

var attributePatterns sync.Map // attribute name -> *regexp.Regexp

func attributePattern(name string) *regexp.Regexp {
	if re, ok := attributePatterns.Load(name); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(name) + attributeValue)
	actual, _ := attributePatterns.LoadOrStore(name, re)
	return actual.(*regexp.Regexp)
}

// ParseAttribute extracts the value of attribute from a raw attribute fragment
// such as ` name="foo" group=notes`. The attribute name is matched
// case-insensitively and must be directly followed by '='. It reports false
// when the attribute is missing or its value is empty.
func ParseAttribute(fragment, attribute string) (string, bool) {
	if fragment == "" || attribute == "" {
		return "", false
	}
	m := attributePattern(attribute).FindStringSubmatch(fragment)
	if m == nil {
		return "", false
	}
	for _, v := range m[1:] {
		if v != "" {
			return v, true
		}
	}
	return "", false
}

// parseAttributes collects the supported attributes present in fragment.
// It returns nil when none are present.
func parseAttributes(fragment string) map[string]string {
	var attrs map[string]string
	for _, name := range SupportedAttributes {
		v, ok := ParseAttribute(fragment, name)
		if !ok {
			continue
		}
		if attrs == nil {
			attrs = make(map[string]string, len(SupportedAttributes))
		}
		attrs[name] = v
	}
	return attrs
}
