package citation

import "strings"

var attributeEscaper = strings.NewReplacer(
	`&`, "&amp;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
	`'`, "&#039;",
)

// GenerateCitation renders a full citation. startAttrs is trimmed and inserted
// verbatim after a single space; an empty fragment yields <ref>content</ref>.
func GenerateCitation(content, startAttrs string) string {
	startAttrs = strings.TrimSpace(startAttrs)
	if startAttrs == "" {
		return "<ref>" + content + "</ref>"
	}
	return "<ref " + startAttrs + ">" + content + "</ref>"
}

// GenerateStub renders a self-closing citation such as <ref name="a"/>.
// The space after the tag name is always present, so empty attributes
// render as <ref />.
func GenerateStub(startAttrs string) string {
	return "<ref " + strings.TrimSpace(startAttrs) + "/>"
}

// GenerateAttribute renders name="value" with value entity-escaped so it can
// be embedded in an opening tag.
func GenerateAttribute(name, value string) string {
	return name + `="` + attributeEscaper.Replace(value) + `"`
}
