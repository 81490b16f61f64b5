package glob_test

import (
	"testing"

	"github.com/arthur-debert/adhere/pkg/errors"
	"github.com/arthur-debert/adhere/pkg/glob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	t.Run("valid_patterns", func(t *testing.T) {
		valid := []string{
			"*",
			"**",
			"*.go",
			"src/*.ts",
			"src/**/*.ts",
			"**/*.test.js",
			"docs/README.md",
			"a/*/b/**/c",
		}
		for _, raw := range valid {
			p, err := glob.Compile(raw)
			require.NoError(t, err, "pattern %q", raw)
			assert.Equal(t, raw, p.String())
		}
	})

	t.Run("malformed_patterns", func(t *testing.T) {
		invalid := []string{
			"",
			"src//a.ts",
			"/src/a.ts",
			"src/",
			"a**b",
			"src/a**/b",
			"**.go",
		}
		for _, raw := range invalid {
			_, err := glob.Compile(raw)
			require.Error(t, err, "pattern %q", raw)
			assert.True(t, errors.IsErrorCode(err, errors.ErrPatternInvalid),
				"pattern %q should yield PATTERN_INVALID, got %v", raw, err)
		}
	})
}

func TestPattern_Match(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		want    bool
	}{
		// Literal segments
		{"exact_match", "docs/README.md", "docs/README.md", true},
		{"exact_mismatch", "docs/README.md", "docs/readme.md", false},
		{"case_sensitive", "Makefile", "makefile", false},

		// Single-segment wildcard
		{"star_matches_within_segment", "*.go", "main.go", true},
		{"star_does_not_cross_separator", "*.go", "pkg/main.go", false},
		{"star_in_middle", "src/*_test.go", "src/store_test.go", true},
		{"extension_sensitive", "src/*.ts", "src/Button.tsx", false},
		{"multiple_stars_in_segment", "*aliases*.sh", "my-aliases-v2.sh", true},

		// Recursive wildcard
		{"doublestar_zero_segments", "**/*.js", "a.js", true},
		{"doublestar_many_segments", "**/*.js", "a/b/c/d.js", true},
		{"doublestar_middle", "src/**/*.ts", "src/components/forms/Input.ts", true},
		{"doublestar_middle_zero", "src/**/*.ts", "src/index.ts", true},
		{"doublestar_requires_prefix", "src/**/*.ts", "lib/index.ts", false},
		{"doublestar_alone", "**", "anything/at/all", true},
		{"trailing_doublestar", "src/**", "src/a/b/c", true},
		{"trailing_doublestar_zero", "src/**", "src", true},

		// Extension sensitivity from the examples
		{"tsx_is_not_ts", "src/**/*.ts", "src/components/Button.tsx", false},
		{"test_js_suffix", "**/*.test.js", "a.test.js", true},
		{"plain_js_also_matches_test_file", "**/*.js", "a.test.js", true},

		// Empty path matches nothing
		{"empty_path_literal", "README.md", "", false},
		{"empty_path_doublestar", "**", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := glob.MustCompile(tt.pattern)
			assert.Equal(t, tt.want, p.Match(tt.path),
				"pattern %q vs path %q", tt.pattern, tt.path)
		})
	}
}

func TestPattern_Specificity(t *testing.T) {
	moreSpecific := func(a, b string) {
		t.Helper()
		pa := glob.MustCompile(a)
		pb := glob.MustCompile(b)
		assert.Greater(t, pa.Specificity(), pb.Specificity(),
			"%q should be more specific than %q", a, b)
	}

	moreSpecific("**/*.test.js", "**/*.js")
	moreSpecific("src/**/*.ts", "**/*.ts")
	moreSpecific("docs/README.md", "docs/*.md")
	moreSpecific("src/components/*.tsx", "src/*.tsx")
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{".", ""},
		{"./", ""},
		{"./src/a.ts", "src/a.ts"},
		{"src//a.ts", "src/a.ts"},
		{"src/./a.ts", "src/a.ts"},
		{`src\a.ts`, "src/a.ts"},
		{`C:\repo\src\a.ts`, "repo/src/a.ts"},
		{"/abs/path.go", "abs/path.go"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, glob.NormalizePath(tt.in), "input %q", tt.in)
	}
}
