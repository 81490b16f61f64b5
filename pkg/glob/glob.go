// Package glob implements the path pattern language used by rule
// descriptors: literal segments, in-segment wildcards (*), and the
// recursive segment wildcard (**).
//
// Matching is case-sensitive and operates on normalized forward-slash
// paths. A '*' never crosses a path separator; '**' matches zero or
// more whole segments and must occupy a segment by itself.
package glob

import (
	"path"
	"strings"

	"github.com/arthur-debert/adhere/pkg/errors"
)

type segmentKind int

const (
	literalSegment segmentKind = iota // exact segment text
	wildcardSegment                   // segment containing one or more '*'
	doubleStarSegment                 // "**", matches zero or more segments
)

type segment struct {
	text string
	kind segmentKind
}

// Pattern is a compiled glob pattern
type Pattern struct {
	raw      string
	segments []segment
}

// Compile parses a glob string into a Pattern. Malformed patterns
// (empty string, empty segments, '**' embedded inside a segment)
// return an error; callers are expected to fail closed on them.
func Compile(raw string) (*Pattern, error) {
	if raw == "" {
		return nil, errors.New(errors.ErrPatternInvalid, "empty pattern")
	}

	parts := strings.Split(raw, "/")
	segments := make([]segment, 0, len(parts))
	for _, part := range parts {
		switch {
		case part == "":
			return nil, errors.Newf(errors.ErrPatternInvalid,
				"pattern %q contains an empty segment", raw)
		case part == "**":
			segments = append(segments, segment{kind: doubleStarSegment})
		case strings.Contains(part, "**"):
			return nil, errors.Newf(errors.ErrPatternInvalid,
				"pattern %q embeds '**' inside segment %q", raw, part)
		case strings.Contains(part, "*"):
			segments = append(segments, segment{text: part, kind: wildcardSegment})
		default:
			segments = append(segments, segment{text: part, kind: literalSegment})
		}
	}

	return &Pattern{raw: raw, segments: segments}, nil
}

// MustCompile is like Compile but panics on error. Intended for
// patterns known at compile time, mostly in tests.
func MustCompile(raw string) *Pattern {
	p, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the original pattern text
func (p *Pattern) String() string {
	return p.raw
}

// Match reports whether the normalized forward-slash path matches the
// pattern. The empty path matches nothing.
func (p *Pattern) Match(filePath string) bool {
	if filePath == "" {
		return false
	}
	return matchSegments(p.segments, strings.Split(filePath, "/"))
}

// matchSegments matches pattern segments against path segments.
// Complexity is O(path segments x pattern segments): each '**' retries
// the remaining pattern at every path offset.
func matchSegments(pat []segment, parts []string) bool {
	if len(pat) == 0 {
		return len(parts) == 0
	}

	if pat[0].kind == doubleStarSegment {
		// '**' consumes zero or more whole segments
		for i := 0; i <= len(parts); i++ {
			if matchSegments(pat[1:], parts[i:]) {
				return true
			}
		}
		return false
	}

	if len(parts) == 0 {
		return false
	}
	if !matchSegment(pat[0], parts[0]) {
		return false
	}
	return matchSegments(pat[1:], parts[1:])
}

// matchSegment matches a single non-recursive pattern segment against
// one path segment
func matchSegment(seg segment, part string) bool {
	if seg.kind == literalSegment {
		return seg.text == part
	}
	return matchChars(seg.text, part)
}

// matchChars performs in-segment matching where '*' matches any run of
// characters except the path separator. Standard greedy matching with
// backtracking to the last star.
func matchChars(pattern, s string) bool {
	star := -1
	mark := 0
	i, j := 0, 0
	for i < len(s) {
		switch {
		case j < len(pattern) && pattern[j] == '*':
			star = j
			j++
			mark = i
		case j < len(pattern) && pattern[j] == s[i]:
			i++
			j++
		case star >= 0:
			j = star + 1
			mark++
			i = mark
		default:
			return false
		}
	}
	for j < len(pattern) && pattern[j] == '*' {
		j++
	}
	return j == len(pattern)
}

// Specificity scores the pattern for presentation-order tie breaks.
// Literal segments score highest, in-segment wildcards score by their
// literal text, and recursive wildcards add nothing. Higher is more
// specific.
func (p *Pattern) Specificity() int {
	score := 0
	for _, seg := range p.segments {
		switch seg.kind {
		case literalSegment:
			score += 16 + len(seg.text)
		case wildcardSegment:
			score += 4
			for i := 0; i < len(seg.text); i++ {
				if seg.text[i] != '*' {
					score++
				}
			}
		case doubleStarSegment:
			// breadth, not specificity
		}
	}
	return score
}

// NormalizePath converts a caller-supplied path into the canonical
// form patterns are matched against: forward slashes, no drive letter,
// no leading "./" or "/", collapsed separators. An empty result means
// the path matches no conditional pattern.
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}

	p = strings.ReplaceAll(p, "\\", "/")

	// Strip Windows drive letters like "C:"
	if len(p) >= 2 && p[1] == ':' && isDriveLetter(p[0]) {
		p = p[2:]
	}

	p = path.Clean(p)
	p = strings.TrimPrefix(p, "/")
	if p == "." {
		return ""
	}
	return p
}

func isDriveLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
