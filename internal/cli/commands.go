package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/adhere/internal/version"
	"github.com/arthur-debert/adhere/pkg/config"
	"github.com/arthur-debert/adhere/pkg/glob"
	"github.com/arthur-debert/adhere/pkg/logging"
	"github.com/arthur-debert/adhere/pkg/rules"
	"github.com/arthur-debert/adhere/pkg/style"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity int
		rulesDir  string
	)

	rootCmd := &cobra.Command{
		Use:   "adhere",
		Short: "A rule activation resolver for style guides",
		Long: `adhere resolves which style-guide documents apply to a file.

Rule documents are markdown files with optional YAML front matter
declaring glob patterns. Documents without patterns are universal and
apply to every file; the rest activate only for matching paths.`,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&rulesDir, "rules-dir", "", "Directory containing rule documents (overrides config)")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newResolveCmd(&rulesDir))
	rootCmd.AddCommand(newListCmd(&rulesDir))
	rootCmd.AddCommand(newCheckCmd(&rulesDir))
	rootCmd.AddCommand(newShowCmd(&rulesDir))
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newWatchCmd(&rulesDir))

	return rootCmd
}

// environment bundles everything a command needs after setup
type environment struct {
	store    *rules.Store
	dir      string
	renderer *style.Renderer
}

// setup loads configuration and the rule store. The rules directory
// comes from the flag when set, otherwise from config resolved against
// the working directory.
func setup(rulesDirFlag string) (*environment, error) {
	cfg, err := config.Load(".")
	if err != nil {
		return nil, err
	}

	dir := cfg.Rules.Dir
	if rulesDirFlag != "" {
		dir = rulesDirFlag
	}

	store, err := rules.LoadDir(os.DirFS(dir), ".", cfg.Rules.Extensions...)
	if err != nil {
		return nil, err
	}

	return &environment{
		store:    store,
		dir:      dir,
		renderer: style.NewRenderer(style.ColorEnabled(cfg.Output.Color)),
	}, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including commit hash and build date`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("adhere version %s\n", version.Version)
			if version.Commit != "" {
				fmt.Printf("Commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				fmt.Printf("Built:  %s\n", version.Date)
			}
		},
	}
}

// activation is the JSON shape emitted by `resolve --json`
type activation struct {
	Path         string   `json:"path"`
	Rules        []string `json:"rules"`
	Payloads     []string `json:"payloads"`
	HasUniversal bool     `json:"hasUniversal"`
}

func newResolveCmd(rulesDir *string) *cobra.Command {
	var (
		asJSON bool
		render bool
	)

	cmd := &cobra.Command{
		Use:   "resolve <path>...",
		Short: "Resolve which rules apply to the given paths",
		Long: `Resolve prints the ordered guidance bundle for each path: universal
rules first, then matching conditional rules ordered by pattern
specificity.`,
		Args: cobra.MinimumNArgs(1),
		Example: `  # Which rules apply to a source file?
  adhere resolve src/components/Button.tsx

  # Machine-readable output for CI
  adhere resolve --json $(git diff --name-only)

  # Render the full guidance text
  adhere resolve --render internal/server.go`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(*rulesDir)
			if err != nil {
				return err
			}

			var results []activation
			for _, arg := range args {
				path := glob.NormalizePath(arg)
				activated, err := rules.Resolve(env.store, path)
				if err != nil {
					return err
				}
				bundle := rules.Merge(activated)

				if asJSON {
					results = append(results, activation{
						Path:         arg,
						Rules:        descriptorIDs(activated),
						Payloads:     bundle.PayloadRefs,
						HasUniversal: bundle.HasUniversal,
					})
					continue
				}

				fmt.Print(env.renderer.RenderActivation(arg, activated))
				if render {
					if err := renderPayloads(env.store, activated); err != nil {
						return err
					}
				}
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit machine-readable JSON")
	cmd.Flags().BoolVar(&render, "render", false, "Render the guidance bodies of activated rules")

	return cmd
}

func newListCmd(rulesDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all rule descriptors",
		Long:  `List displays every loaded rule with its scope, patterns, and priority.`,
		Example: `  # List all rules
  adhere list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(*rulesDir)
			if err != nil {
				return err
			}

			fmt.Println(env.renderer.RenderDescriptorTable(env.store.All()))
			return nil
		},
	}
}

func newCheckCmd(rulesDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the rule directory",
		Long: `Check loads every rule document and reports problems. Load failures
(bad front matter, duplicate ids, unreadable files) exit non-zero;
patterns that fail to compile are reported as warnings since the
affected rules simply never activate.`,
		Example: `  # Gate rule changes in CI
  adhere check --rules-dir styleguides`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(*rulesDir)
			if err != nil {
				return err
			}

			universal, conditional := 0, 0
			for _, d := range env.store.All() {
				if d.Scope == rules.ScopeUniversal {
					universal++
					continue
				}
				conditional++
				if !d.PatternsValid() {
					fmt.Fprintln(os.Stderr, env.renderer.RenderWarning(
						fmt.Sprintf("rule %q has an invalid pattern and will never activate", d.ID)))
				}
			}

			fmt.Printf("%d rules loaded from %s (%d universal, %d conditional)\n",
				env.store.Len(), env.dir, universal, conditional)
			return nil
		},
	}
}

func newShowCmd(rulesDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <rule-id>",
		Short: "Render one rule's guidance",
		Args:  cobra.ExactArgs(1),
		Example: `  # Read the naming guide in the terminal
  adhere show naming`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(*rulesDir)
			if err != nil {
				return err
			}

			d, ok := env.store.Get(args[0])
			if !ok {
				return fmt.Errorf("no rule with id %q", args[0])
			}
			return renderPayloads(env.store, []rules.Descriptor{d})
		},
	}
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a starter configuration and rule set",
		Long: `Init writes an adhere.toml with the default settings and a rules
directory containing an example universal rule.`,
		Args: cobra.MaximumNArgs(1),
		Example: `  # Bootstrap in the current directory
  adhere init`,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) == 1 {
				target = args[0]
			}

			cfg := config.Default()
			rulesPath := filepath.Join(target, cfg.Rules.Dir)
			if err := os.MkdirAll(rulesPath, 0755); err != nil {
				return fmt.Errorf("failed to create rules directory: %w", err)
			}

			configPath := filepath.Join(target, "adhere.toml")
			if _, err := os.Stat(configPath); err == nil {
				return fmt.Errorf("%s already exists", configPath)
			}
			if err := config.WriteDefault(configPath); err != nil {
				return err
			}

			examplePath := filepath.Join(rulesPath, "general.md")
			if _, err := os.Stat(examplePath); os.IsNotExist(err) {
				if err := os.WriteFile(examplePath, []byte(exampleRule), 0644); err != nil {
					return fmt.Errorf("failed to write example rule: %w", err)
				}
			}

			fmt.Printf("Created %s and %s\n", configPath, examplePath)
			return nil
		},
	}
}

const exampleRule = `# General guidance

This rule has no front matter, so it is universal: it activates for
every file. Add conditional rules next to it, for example:

    ---
    patterns:
      - "src/**/*.ts"
    ---
`

func descriptorIDs(ds []rules.Descriptor) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.ID)
	}
	return out
}

// renderPayloads pretty-prints the guidance bodies of the given
// descriptors with glamour
func renderPayloads(store *rules.Store, ds []rules.Descriptor) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	for _, d := range ds {
		body, ok := store.Payload(d.ID)
		if !ok {
			continue
		}
		out, err := renderer.Render(string(body))
		if err != nil {
			return fmt.Errorf("failed to render rule %q: %w", d.ID, err)
		}
		fmt.Print(out)
	}
	return nil
}
