package citation

// Engine parses a document once and exposes queries over the parsed
// citations plus mutations of the live buffer.
type Engine struct {
	index   *Index
	mutator *Mutator
}

// New parses text and returns an engine owning it.
func New(text string) *Engine {
	return &Engine{
		index:   NewIndex(text),
		mutator: NewMutator(text),
	}
}

// Index returns the citations parsed at construction time.
func (e *Engine) Index() *Index {
	return e.index
}

// Dump returns the parsed citations in scan order.
func (e *Engine) Dump() []Citation {
	return e.index.Dump()
}

// SearchByContent returns the parsed citations with the given content.
func (e *Engine) SearchByContent(content string) []Citation {
	return e.index.SearchByContent(content)
}

// HasDuplicates reports whether more than one parsed citation has content.
func (e *Engine) HasDuplicates(content string) bool {
	return e.index.HasDuplicates(content)
}

// HasExactAttribute runs the loose attribute check against the current buffer.
func (e *Engine) HasExactAttribute(name, value string) bool {
	return HasExactAttribute(e.mutator.Export(), name, value)
}

// ReplaceFirstOccurrence replaces the first occurrence of needle in the buffer.
func (e *Engine) ReplaceFirstOccurrence(needle, replacement string) error {
	return e.mutator.ReplaceFirstOccurrence(needle, replacement)
}

// ReplaceByContent rewrites the citations parsed with the given content.
// See Mutator.ReplaceByContent.
func (e *Engine) ReplaceByContent(content, replacement string, skipFirst bool) int {
	return e.mutator.ReplaceByContent(e.index, content, replacement, skipFirst)
}

// IsLive reports whether c's text still occurs in the buffer.
func (e *Engine) IsLive(c Citation) bool {
	return e.mutator.IsLive(c)
}

// Export returns the current buffer.
func (e *Engine) Export() string {
	return e.mutator.Export()
}

// LoopCitations calls fn for each parsed citation, in scan order, whose text
// still occurs in the buffer at the moment it is visited. fn may mutate the
// engine; records it removes are skipped later in the same loop. Iteration
// stops at the first error returned by fn.
func (e *Engine) LoopCitations(fn func(Citation) error) error {
	for _, c := range e.index.citations {
		if !e.mutator.IsLive(c) {
			continue
		}
		if err := fn(c.clone()); err != nil {
			return err
		}
	}
	return nil
}
