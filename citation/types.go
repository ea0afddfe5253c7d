package citation

import "maps"

// Supported attribute names extracted from the opening tag.
const (
	AttrName  = "name"
	AttrGroup = "group"
)

// SupportedAttributes lists the attributes parsed into Citation.Attributes, in
// the order they are looked up.
var SupportedAttributes = []string{AttrName, AttrGroup}

// Citation is a snapshot of one <ref>...</ref> span taken at parse time.
type Citation struct {
	// Complete is the exact span text, opening tag through closing tag.
	Complete string `json:"complete" yaml:"complete"`

	// StartTag is the literal opening tag, e.g. <ref name="a">.
	StartTag string `json:"start_tag" yaml:"start_tag"`

	// StartAttrs is the raw fragment between the tag name and the closing '>'.
	StartAttrs string `json:"start_attrs" yaml:"start_attrs"`

	// Content is the text between the opening and closing tag.
	Content string `json:"content" yaml:"content"`

	// EndTag is the literal closing tag.
	EndTag string `json:"end_tag" yaml:"end_tag"`

	// Attributes holds the non-empty supported attributes found in StartAttrs.
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// Attribute returns the parsed value of a supported attribute.
func (c Citation) Attribute(name string) (string, bool) {
	v, ok := c.Attributes[name]
	return v, ok
}

// Name returns the citation's name attribute, or "" if it has none.
func (c Citation) Name() string {
	return c.Attributes[AttrName]
}

// Group returns the citation's group attribute, or "" if it has none.
func (c Citation) Group() string {
	return c.Attributes[AttrGroup]
}

// clone returns a copy that shares no mutable state with c.
func (c Citation) clone() Citation {
	c.Attributes = maps.Clone(c.Attributes)
	return c
}
