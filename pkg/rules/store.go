package rules

import (
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/arthur-debert/adhere/pkg/errors"
	"github.com/arthur-debert/adhere/pkg/glob"
	"github.com/arthur-debert/adhere/pkg/logging"
	"github.com/rs/zerolog"
)

// Store holds every rule descriptor parsed at load time. A Store is
// immutable after Load; reloading means building a fresh Store and
// swapping it in (see Manager).
type Store struct {
	descriptors []Descriptor
	payloads    map[string][]byte
	byID        map[string]int
}

// DefaultExtensions lists the file extensions scanned by LoadDir when
// the caller does not override them
var DefaultExtensions = []string{".md"}

// Load parses the given sources into a Store. Source order is the
// store's load order. Any header error, read error, or duplicate ID
// aborts the whole load: a partial rule set is worse than a clear
// failure.
func Load(sources []Source) (*Store, error) {
	logger := logging.GetLogger("rules.store")

	store := &Store{
		descriptors: make([]Descriptor, 0, len(sources)),
		payloads:    make(map[string][]byte, len(sources)),
		byID:        make(map[string]int, len(sources)),
	}

	for _, src := range sources {
		if src.ID == "" {
			return nil, errors.Newf(errors.ErrInvalidInput,
				"source %q has no id", src.Ref)
		}
		if _, exists := store.byID[src.ID]; exists {
			return nil, errors.Newf(errors.ErrDuplicateRule,
				"duplicate rule id %q", src.ID)
		}

		h, body, err := parseHeader(src.Raw)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrHeaderParse,
				"rule %q", src.ID)
		}

		d := Descriptor{
			ID:         src.ID,
			Patterns:   h.Patterns,
			PayloadRef: src.Ref,
			loadIndex:  len(store.descriptors),
		}

		if len(h.Patterns) == 0 {
			d.Scope = ScopeUniversal
		} else {
			d.Scope = ScopeConditional
			d.compiled, d.Priority = compilePatterns(src.ID, h.Patterns, logger)
		}

		store.byID[d.ID] = len(store.descriptors)
		store.descriptors = append(store.descriptors, d)
		store.payloads[d.ID] = body

		logger.Debug().
			Str("rule", d.ID).
			Str("scope", string(d.Scope)).
			Strs("patterns", d.Patterns).
			Int("priority", d.Priority).
			Msg("Loaded rule descriptor")
	}

	logger.Info().Int("ruleCount", len(store.descriptors)).Msg("Store loaded")
	return store, nil
}

// compilePatterns compiles a conditional descriptor's pattern list.
// When any pattern fails to compile the descriptor fails closed: the
// problem is logged once here and the descriptor never matches.
func compilePatterns(id string, patterns []string, logger zerolog.Logger) ([]*glob.Pattern, int) {
	compiled := make([]*glob.Pattern, 0, len(patterns))
	priority := 0
	for _, raw := range patterns {
		p, err := glob.Compile(raw)
		if err != nil {
			logger.Warn().
				Str("rule", id).
				Str("pattern", raw).
				Err(err).
				Msg("Invalid pattern, rule will never match")
			return nil, 0
		}
		if s := p.Specificity(); s > priority {
			priority = s
		}
		compiled = append(compiled, p)
	}
	return compiled, priority
}

// LoadDir scans dir inside fsys for rule documents and loads them in
// lexical file-name order, which is the store's stable load order.
// A descriptor's ID is its file name without the extension; its
// PayloadRef is the file's path within fsys.
func LoadDir(fsys fs.FS, dir string, extensions ...string) (*Store, error) {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSourceRead,
			"cannot read rule directory %q", dir)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if hasExtension(entry.Name(), extensions) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	sources := make([]Source, 0, len(names))
	for _, name := range names {
		ref := path.Join(dir, name)
		raw, err := fs.ReadFile(fsys, ref)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrSourceRead,
				"cannot read rule source %q", ref)
		}
		sources = append(sources, Source{
			ID:  strings.TrimSuffix(name, path.Ext(name)),
			Ref: ref,
			Raw: raw,
		})
	}

	return Load(sources)
}

func hasExtension(name string, extensions []string) bool {
	ext := path.Ext(name)
	for _, want := range extensions {
		if ext == want {
			return true
		}
	}
	return false
}

// All returns every descriptor in load order. The returned slice is a
// copy; the store itself stays immutable.
func (s *Store) All() []Descriptor {
	out := make([]Descriptor, len(s.descriptors))
	copy(out, s.descriptors)
	return out
}

// Get returns the descriptor with the given ID
func (s *Store) Get(id string) (Descriptor, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Descriptor{}, false
	}
	return s.descriptors[i], true
}

// Payload returns the opaque body content of the rule with the given
// ID. The resolver never interprets it; this accessor exists for
// callers that render guidance.
func (s *Store) Payload(id string) ([]byte, bool) {
	body, ok := s.payloads[id]
	return body, ok
}

// Len returns the number of descriptors in the store
func (s *Store) Len() int {
	return len(s.descriptors)
}
