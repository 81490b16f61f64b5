package rules

import "github.com/arthur-debert/adhere/pkg/glob"

// Scope classifies how a rule descriptor activates
type Scope string

const (
	// ScopeUniversal rules have no pattern constraint and always activate
	ScopeUniversal Scope = "universal"

	// ScopeConditional rules activate only for paths matching at least
	// one of their declared patterns
	ScopeConditional Scope = "conditional"
)

// Descriptor is the parsed metadata for one rule document. Descriptors
// are built once at load time and never mutated afterwards; resolution
// is a pure query over them.
type Descriptor struct {
	// ID uniquely identifies the rule within its store
	ID string

	// Scope is derived from the pattern list: no patterns means universal
	Scope Scope

	// Patterns holds the declared glob strings, in declaration order
	Patterns []string

	// PayloadRef is an opaque reference to the guidance content. The
	// resolver never interprets it.
	PayloadRef string

	// Priority is derived from pattern specificity and used only as a
	// presentation-order tie break. Universal rules carry priority 0.
	Priority int

	// compiled holds the compiled patterns. It is nil when any declared
	// pattern failed to compile; such a descriptor never matches.
	compiled []*glob.Pattern

	// loadIndex preserves store load order for stable tie breaks
	loadIndex int
}

// matchesAny reports whether any of the descriptor's patterns match
// the path (logical OR across patterns)
func (d Descriptor) matchesAny(path string) bool {
	for _, p := range d.compiled {
		if p.Match(path) {
			return true
		}
	}
	return false
}

// PatternsValid reports whether every declared pattern compiled. A
// conditional descriptor with an invalid pattern never activates.
func (d Descriptor) PatternsValid() bool {
	return d.Scope == ScopeUniversal || len(d.compiled) > 0
}

// Bundle is the ordered result of resolving and merging activated
// rules for one path
type Bundle struct {
	// PayloadRefs lists the activated payload references in
	// presentation order
	PayloadRefs []string

	// HasUniversal notes whether any activated descriptor was universal
	HasUniversal bool
}
