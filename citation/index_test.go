package citation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_SearchByContent(t *testing.T) {
	idx := NewIndex(`<ref>X</ref> <ref name=a>Y</ref> <ref name=b>X</ref>`)
	require.Equal(t, 3, idx.Len())

	matches := idx.SearchByContent("X")
	require.Len(t, matches, 2)
	assert.Equal(t, "<ref>X</ref>", matches[0].Complete)
	assert.Equal(t, "<ref name=b>X</ref>", matches[1].Complete)

	assert.Empty(t, idx.SearchByContent("Z"))
	assert.Empty(t, idx.SearchByContent("x"), "content match is exact")
}

func TestIndex_HasDuplicates(t *testing.T) {
	idx := NewIndex(`<ref>X</ref><ref>X</ref><ref>Y</ref>`)

	assert.True(t, idx.HasDuplicates("X"))
	assert.False(t, idx.HasDuplicates("Y"))
	assert.False(t, idx.HasDuplicates("Z"))
}

func TestIndex_DumpIsSnapshot(t *testing.T) {
	idx := NewIndex(`<ref name="a">X</ref>`)

	dump := idx.Dump()
	require.Len(t, dump, 1)
	dump[0].Attributes["name"] = "changed"
	dump[0].Content = "changed"

	again := idx.Dump()
	assert.Equal(t, "a", again[0].Name())
	assert.Equal(t, "X", again[0].Content)
}

func TestHasExactAttribute(t *testing.T) {
	tests := []struct {
		name     string
		document string
		attr     string
		value    string
		want     bool
	}{
		{name: "double quoted", document: `<ref name="foo">X</ref>`, attr: "name", value: "foo", want: true},
		{name: "single quoted", document: `<ref name='foo'>X</ref>`, attr: "name", value: "foo", want: true},
		{name: "prefix match", document: `<ref name="foobar">X</ref>`, attr: "name", value: "foo", want: true},
		{name: "unquoted needs one char", document: `<ref name=foo>X</ref>`, attr: "name", value: "foo", want: false},
		{name: "unquoted eats first char", document: `<ref name=xfoo>X</ref>`, attr: "name", value: "foo", want: true},
		{name: "inside content", document: `<ref>name="foo"</ref>`, attr: "name", value: "foo", want: true},
		{name: "absent", document: `<ref name="bar">X</ref>`, attr: "name", value: "foo", want: false},
		{name: "case sensitive", document: `<ref NAME="foo">X</ref>`, attr: "name", value: "foo", want: false},
		{name: "value meta characters", document: `<ref name="a.b">X</ref>`, attr: "name", value: "a.b", want: true},
		{name: "value meta literal", document: `<ref name="axb">X</ref>`, attr: "name", value: "a.b", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasExactAttribute(tt.document, tt.attr, tt.value))
		})
	}
}
