// Package dedupe merges citations that share identical content.
//
// The first occurrence of each duplicated content keeps the full citation and
// is given a name attribute; every later occurrence is replaced by a
// self-closing stub referencing that name:
//
//	A<ref>X</ref>B<ref>X</ref>   →   A<ref name="auto-1a2b3c4d">X</ref>B<ref name="auto-1a2b3c4d"/>
//
// Groups whose members carry different names or groups are left alone, since
// merging them would break existing references to the discarded name. So are
// groups whose name or group value cannot be reproduced exactly from the
// parsed attribute (an unquoted name=smith-2020 parses as "smith").
package dedupe

import (
	"fmt"
	"html"
	"log/slog"
	"regexp"
	"strings"

	"github.com/c360studio/reflinks/citation"
	"github.com/google/uuid"
)

// DefaultNamePrefix is prepended to generated citation names.
const DefaultNamePrefix = "auto"

// nameSpace seeds the name-based UUIDs used for generated citation names, so a
// given content always yields the same name.
var nameSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/c360studio/reflinks"))

// Skip reasons.
const (
	ReasonConflictingNames  = "conflicting names"
	ReasonConflictingGroups = "conflicting groups"
	ReasonFirstRemoved      = "first occurrence no longer present"
	ReasonUnparsableName    = "name or group not reproducible from its attribute"
)

// Options configures a Merger.
type Options struct {
	// NamePrefix is prepended to generated names (default "auto").
	NamePrefix string
}

// Group describes one merged set of duplicate citations.
type Group struct {
	Content   string `json:"content" yaml:"content"`
	Name      string `json:"name" yaml:"name"`
	Group     string `json:"group,omitempty" yaml:"group,omitempty"`
	Generated bool   `json:"generated" yaml:"generated"`
	// Replaced counts the occurrences rewritten to stubs.
	Replaced int `json:"replaced" yaml:"replaced"`
}

// Skipped describes a duplicate set that was left untouched.
type Skipped struct {
	Content string `json:"content" yaml:"content"`
	Reason  string `json:"reason" yaml:"reason"`
}

// Report summarizes a merge run over one document.
type Report struct {
	Citations int       `json:"citations" yaml:"citations"`
	Merged    []Group   `json:"merged,omitempty" yaml:"merged,omitempty"`
	Skipped   []Skipped `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Replaced returns the total number of occurrences rewritten to stubs.
func (r *Report) Replaced() int {
	n := 0
	for _, g := range r.Merged {
		n += g.Replaced
	}
	return n
}

// Merger merges duplicate citations in an engine's buffer.
type Merger struct {
	opts   Options
	logger *slog.Logger
}

// NewMerger creates a merger.
func NewMerger(opts Options, logger *slog.Logger) *Merger {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.NamePrefix == "" {
		opts.NamePrefix = DefaultNamePrefix
	}
	return &Merger{opts: opts, logger: logger}
}

// Merge rewrites every set of live duplicate citations in e.
func (m *Merger) Merge(e *citation.Engine) (*Report, error) {
	report := &Report{Citations: e.Index().Len()}
	handled := make(map[string]bool)

	err := e.LoopCitations(func(c citation.Citation) error {
		if handled[c.Content] || !e.HasDuplicates(c.Content) {
			return nil
		}
		handled[c.Content] = true

		group, reason, err := m.mergeGroup(e, c.Content)
		if err != nil {
			return err
		}
		if reason != "" {
			m.logger.Info("Skipping duplicate citations",
				"content", summarize(c.Content),
				"reason", reason)
			report.Skipped = append(report.Skipped, Skipped{Content: c.Content, Reason: reason})
			return nil
		}

		m.logger.Debug("Merged duplicate citations",
			"name", group.Name,
			"generated", group.Generated,
			"replaced", group.Replaced)
		report.Merged = append(report.Merged, *group)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// mergeGroup merges the citations with the given content. It returns a
// non-empty reason when the group has to be skipped.
func (m *Merger) mergeGroup(e *citation.Engine, content string) (*Group, string, error) {
	matches := e.SearchByContent(content)
	first := matches[0]
	if !e.IsLive(first) {
		return nil, ReasonFirstRemoved, nil
	}

	for _, c := range matches {
		if !reproducible(c, citation.AttrName) || !reproducible(c, citation.AttrGroup) {
			return nil, ReasonUnparsableName, nil
		}
	}

	name, ok := single(matches, citation.Citation.Name, true)
	if !ok {
		return nil, ReasonConflictingNames, nil
	}
	groupName, ok := single(matches, citation.Citation.Group, false)
	if !ok {
		return nil, ReasonConflictingGroups, nil
	}

	g := &Group{Content: content, Group: groupName}
	if name == "" {
		name = m.generateName(e, content)
		g.Generated = true
	}
	g.Name = name

	attrs := citation.GenerateAttribute(citation.AttrName, name)
	if groupName != "" {
		attrs += " " + citation.GenerateAttribute(citation.AttrGroup, groupName)
	}

	g.Replaced = e.ReplaceByContent(content, citation.GenerateStub(attrs), true)

	full := citation.GenerateCitation(content, attrs)
	if full != first.Complete {
		if err := e.ReplaceFirstOccurrence(first.Complete, full); err != nil {
			return nil, "", fmt.Errorf("name first citation: %w", err)
		}
	}
	return g, "", nil
}

// generateName derives a name from content that is not already used in the
// buffer.
func (m *Merger) generateName(e *citation.Engine, content string) string {
	id := uuid.NewSHA1(nameSpace, []byte(content)).String()
	base := m.opts.NamePrefix + "-" + id[:8]

	name := base
	for i := 2; e.HasExactAttribute(citation.AttrName, name); i++ {
		name = fmt.Sprintf("%s-%d", base, i)
	}
	return name
}

// reproducible reports whether the parsed value of attr matches the raw
// attribute text in full: quoted with its own quote, or unquoted and ending at
// whitespace, '/' or the end of the fragment. Citations without attr pass.
func reproducible(c citation.Citation, attr string) bool {
	v, ok := c.Attribute(attr)
	if !ok {
		return true
	}
	q := regexp.QuoteMeta(v)
	re := regexp.MustCompile(`(?:^|\s)(?i:` + regexp.QuoteMeta(attr) + `)=(?:"` + q + `"|'` + q + `'|` + q + `(?:\s|/|$))`)
	return re.MatchString(c.StartAttrs)
}

// single returns the one distinct value get yields across matches. With
// ignoreEmpty, citations lacking the value do not count as a distinct value.
// Parsed values are entity-decoded so they can be re-escaped on output.
func single(matches []citation.Citation, get func(citation.Citation) string, ignoreEmpty bool) (string, bool) {
	seen := ""
	found := false
	for _, c := range matches {
		v := html.UnescapeString(get(c))
		if v == "" && ignoreEmpty {
			continue
		}
		if found && v != seen {
			return "", false
		}
		seen, found = v, true
	}
	return seen, true
}

func summarize(s string) string {
	const maxLen = 60
	r := []rune(strings.TrimSpace(s))
	if len(r) <= maxLen {
		return string(r)
	}
	return string(r[:maxLen]) + "..."
}
