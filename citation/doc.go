// Package citation locates, parses and rewrites <ref>...</ref> citation spans
// in wikitext.
//
// # Overview
//
// A document is parsed exactly once when the Engine is created. The parsed
// Citation records are snapshots of that moment: later mutations act on the
// live buffer held by the Engine and may remove or duplicate the text a
// record points at. Use Engine.LoopCitations (or Mutator.IsLive) to visit only
// records whose text still occurs in the buffer.
//
// # Addressing
//
// Replacements address text by value, never by offset:
//
//   - ReplaceFirstOccurrence rewrites the first byte-position occurrence of a needle
//   - ReplaceByContent rewrites every occurrence of the records sharing a content
//
// With skipFirst set, ReplaceByContent splits the buffer at the first occurrence
// of the first matched record and only rewrites text to the right of it, so the
// first occurrence is always preserved.
//
// # Usage
//
//	engine := citation.New(wikitext)
//	err := engine.LoopCitations(func(c citation.Citation) error {
//	    if !engine.HasDuplicates(c.Content) {
//	        return nil
//	    }
//	    engine.ReplaceByContent(c.Content, citation.GenerateStub(`name="a"`), true)
//	    return nil
//	})
//	out := engine.Export()
//
// An Engine is not safe for concurrent use.
package citation
