// Package rules determines which guidance documents apply to a file.
//
// A rule document is a markdown file with optional YAML front matter.
// The recognized header key is `patterns`, an array of glob strings:
//
//	---
//	patterns:
//	  - "src/**/*.ts"
//	  - "**/*.tsx"
//	---
//	# TypeScript style
//	...guidance body, opaque to this package...
//
// A document without a `patterns` list is universal and activates for
// every path. Conditional documents activate when any of their
// patterns match (see pkg/glob for the pattern language).
//
// Load builds an immutable Store from sources; Resolve answers "which
// rules apply to this path" as a pure query: universal rules first in
// load order, then matching conditional rules ordered by pattern
// specificity with load order breaking ties. Merge flattens an
// activation set into the Bundle handed to editors, reviewers, or CI.
//
// Manager adds reload support: new stores are built in isolation and
// published with one atomic pointer swap, so concurrent resolutions
// never observe a partially built rule set and a failed reload keeps
// the previous rule set serving.
package rules
