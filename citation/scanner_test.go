package citation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan_SingleCitation(t *testing.T) {
	citations := Scan(`Text<ref name="1">X</ref> more`)
	require.Len(t, citations, 1)

	c := citations[0]
	assert.Equal(t, `<ref name="1">X</ref>`, c.Complete)
	assert.Equal(t, `<ref name="1">`, c.StartTag)
	assert.Equal(t, ` name="1"`, c.StartAttrs)
	assert.Equal(t, "X", c.Content)
	assert.Equal(t, "</ref>", c.EndTag)
	assert.Equal(t, "1", c.Name())
	assert.Equal(t, c.Complete, c.StartTag+c.Content+c.EndTag)
}

func TestScan_Order(t *testing.T) {
	text := `a<ref>one</ref>b<ref group=g>two</ref>c<REF>three</REF>`
	citations := Scan(text)
	require.Len(t, citations, 3)

	assert.Equal(t, "one", citations[0].Content)
	assert.Equal(t, "two", citations[1].Content)
	assert.Equal(t, "g", citations[1].Group())
	assert.Equal(t, "three", citations[2].Content)
	assert.Equal(t, "<REF>", citations[2].StartTag)
	assert.Equal(t, "</REF>", citations[2].EndTag)
}

func TestScan_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		contents []string
	}{
		{name: "no citations", text: "plain text", contents: nil},
		{name: "unterminated", text: "<ref>dangling", contents: nil},
		{name: "close without open", text: "stray</ref>", contents: nil},
		{name: "empty content", text: "<ref></ref>", contents: nil},
		{name: "stub is not a span", text: `<ref name="a"/>`, contents: nil},
		{name: "unterminated before valid", text: "<ref>a <ref>b</ref>", contents: []string{"b"}},
		{name: "stub before valid", text: `<ref name="a"/> x <ref>y</ref>`, contents: []string{"y"}},
		{name: "nested markup in content", text: "<ref>a <b>c</b></ref>", contents: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var contents []string
			for _, c := range Scan(tt.text) {
				contents = append(contents, c.Content)
			}
			assert.Equal(t, tt.contents, contents)
		})
	}
}

func TestScan_NoSupportedAttributes(t *testing.T) {
	citations := Scan(`<ref lang="en">X</ref>`)
	require.Len(t, citations, 1)
	assert.Nil(t, citations[0].Attributes)
	assert.Equal(t, ` lang="en"`, citations[0].StartAttrs)
}

func TestScan_Multibyte(t *testing.T) {
	text := `Ünïcödé <ref name="é">Übersicht – 日本</ref>`
	citations := Scan(text)
	require.Len(t, citations, 1)
	assert.Equal(t, "Übersicht – 日本", citations[0].Content)
	assert.Equal(t, "é", citations[0].Name())
	assert.Contains(t, text, citations[0].Complete)
}

func TestScan_RoundTrip(t *testing.T) {
	text := `<ref name="a" group='g'>first</ref> <ref name=b>second</ref> <ref>third</ref>`
	for _, c := range Scan(text) {
		again := Scan(GenerateCitation(c.Content, c.StartAttrs))
		require.Len(t, again, 1)
		assert.Equal(t, c.Content, again[0].Content)
		assert.Equal(t, c.Attributes, again[0].Attributes)
	}
}
