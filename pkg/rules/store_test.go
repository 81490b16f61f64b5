// Test Type: Unit Test
// Description: Tests for the rules package - loading descriptors from sources

package rules_test

import (
	"testing"
	"testing/fstest"

	"github.com/arthur-debert/adhere/pkg/errors"
	"github.com/arthur-debert/adhere/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func src(id, content string) rules.Source {
	return rules.Source{ID: id, Ref: "rules/" + id + ".md", Raw: []byte(content)}
}

func TestLoad(t *testing.T) {
	t.Run("conditional_rule_with_patterns", func(t *testing.T) {
		store, err := rules.Load([]rules.Source{
			src("typescript", "---\npatterns:\n  - \"src/**/*.ts\"\n  - \"**/*.tsx\"\n---\n# TS style\n"),
		})
		require.NoError(t, err)
		require.Equal(t, 1, store.Len())

		d, ok := store.Get("typescript")
		require.True(t, ok)
		assert.Equal(t, rules.ScopeConditional, d.Scope)
		assert.Equal(t, []string{"src/**/*.ts", "**/*.tsx"}, d.Patterns)
		assert.Equal(t, "rules/typescript.md", d.PayloadRef)
		assert.Greater(t, d.Priority, 0)
	})

	t.Run("no_front_matter_means_universal", func(t *testing.T) {
		store, err := rules.Load([]rules.Source{
			src("general", "# General clean code rules\nAlways name things well.\n"),
		})
		require.NoError(t, err)

		d, ok := store.Get("general")
		require.True(t, ok)
		assert.Equal(t, rules.ScopeUniversal, d.Scope)
		assert.Empty(t, d.Patterns)
		assert.Zero(t, d.Priority)
	})

	t.Run("empty_patterns_list_means_universal", func(t *testing.T) {
		store, err := rules.Load([]rules.Source{
			src("general", "---\npatterns: []\n---\nbody\n"),
		})
		require.NoError(t, err)

		d, _ := store.Get("general")
		assert.Equal(t, rules.ScopeUniversal, d.Scope)
	})

	t.Run("body_is_kept_opaque", func(t *testing.T) {
		store, err := rules.Load([]rules.Source{
			src("naming", "---\npatterns: [\"**/*.go\"]\n---\n# Naming\nUse intention-revealing names.\n"),
		})
		require.NoError(t, err)

		body, ok := store.Payload("naming")
		require.True(t, ok)
		assert.Equal(t, "# Naming\nUse intention-revealing names.\n", string(body))
	})

	t.Run("duplicate_id_aborts_load", func(t *testing.T) {
		_, err := rules.Load([]rules.Source{
			src("naming", "body one"),
			src("naming", "body two"),
		})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrDuplicateRule))
	})

	t.Run("non_array_patterns_aborts_load", func(t *testing.T) {
		_, err := rules.Load([]rules.Source{
			src("bad", "---\npatterns: \"src/**/*.ts\"\n---\nbody\n"),
		})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrHeaderParse))
	})

	t.Run("unterminated_front_matter_aborts_load", func(t *testing.T) {
		_, err := rules.Load([]rules.Source{
			src("bad", "---\npatterns: [\"*.go\"]\nno closing delimiter\n"),
		})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrHeaderParse))
	})

	t.Run("one_bad_source_fails_the_whole_load", func(t *testing.T) {
		_, err := rules.Load([]rules.Source{
			src("good", "---\npatterns: [\"*.go\"]\n---\nbody\n"),
			src("bad", "---\npatterns: 42\n---\nbody\n"),
		})
		require.Error(t, err)
	})

	t.Run("invalid_pattern_fails_closed_not_the_load", func(t *testing.T) {
		store, err := rules.Load([]rules.Source{
			src("broken", "---\npatterns: [\"src//bad\"]\n---\nbody\n"),
		})
		require.NoError(t, err, "a bad pattern is a warning, not a load failure")

		d, ok := store.Get("broken")
		require.True(t, ok)
		// Still conditional, but it must never activate
		assert.Equal(t, rules.ScopeConditional, d.Scope)

		activated, err := rules.Resolve(store, "src/bad")
		require.NoError(t, err)
		assert.Empty(t, activated)
	})

	t.Run("source_without_id_is_rejected", func(t *testing.T) {
		_, err := rules.Load([]rules.Source{{Ref: "rules/anon.md", Raw: []byte("body")}})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}

func TestLoadDir(t *testing.T) {
	t.Run("scans_markdown_files_in_lexical_order", func(t *testing.T) {
		fsys := fstest.MapFS{
			"rules/10-general.md":    {Data: []byte("# universal\n")},
			"rules/20-typescript.md": {Data: []byte("---\npatterns: [\"**/*.ts\"]\n---\nbody\n")},
			"rules/30-tests.md":      {Data: []byte("---\npatterns: [\"**/*.test.js\"]\n---\nbody\n")},
			"rules/notes.txt":        {Data: []byte("ignored, wrong extension")},
			"rules/sub/inner.md":     {Data: []byte("ignored, nested")},
		}

		store, err := rules.LoadDir(fsys, "rules")
		require.NoError(t, err)
		require.Equal(t, 3, store.Len())

		all := store.All()
		assert.Equal(t, "10-general", all[0].ID)
		assert.Equal(t, "20-typescript", all[1].ID)
		assert.Equal(t, "30-tests", all[2].ID)
		assert.Equal(t, "rules/20-typescript.md", all[1].PayloadRef)
	})

	t.Run("custom_extensions", func(t *testing.T) {
		fsys := fstest.MapFS{
			"rules/a.md":  {Data: []byte("md body")},
			"rules/b.mdc": {Data: []byte("mdc body")},
		}

		store, err := rules.LoadDir(fsys, "rules", ".md", ".mdc")
		require.NoError(t, err)
		assert.Equal(t, 2, store.Len())
	})

	t.Run("missing_directory_is_a_source_read_error", func(t *testing.T) {
		_, err := rules.LoadDir(fstest.MapFS{}, "rules")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSourceRead))
	})
}

func TestStore_All_ReturnsCopy(t *testing.T) {
	store, err := rules.Load([]rules.Source{
		src("one", "body"),
		src("two", "body"),
	})
	require.NoError(t, err)

	all := store.All()
	all[0].ID = "mutated"

	fresh := store.All()
	assert.Equal(t, "one", fresh[0].ID, "mutating the returned slice must not touch the store")
}
