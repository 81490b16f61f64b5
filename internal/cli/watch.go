package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/adhere/pkg/config"
	"github.com/arthur-debert/adhere/pkg/glob"
	"github.com/arthur-debert/adhere/pkg/logging"
	"github.com/arthur-debert/adhere/pkg/rules"
	"github.com/arthur-debert/adhere/pkg/style"
)

func newWatchCmd(rulesDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [path...]",
		Short: "Watch the rule directory and reload on changes",
		Long: `Watch keeps the rule store loaded, rebuilding it whenever a rule
document changes. Reloads are atomic: a broken edit keeps the previous
rule set serving until the problem is fixed.

Any paths given as arguments are re-resolved and printed after each
successful reload.`,
		Example: `  # Keep the rule set fresh while editing guides
  adhere watch

  # Re-check two files on every rule edit
  adhere watch src/app.ts src/app.test.ts`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cli.watch")

			cfg, err := config.Load(".")
			if err != nil {
				return err
			}
			dir := cfg.Rules.Dir
			if *rulesDir != "" {
				dir = *rulesDir
			}
			renderer := style.NewRenderer(style.ColorEnabled(cfg.Output.Color))

			manager := rules.NewManager()
			if err := manager.ReloadDir(os.DirFS(dir), ".", cfg.Rules.Extensions...); err != nil {
				return err
			}
			printActivations(manager, renderer, args)

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("failed to create watcher: %w", err)
			}
			defer func() { _ = watcher.Close() }()

			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			logger.Info().Str("dir", dir).Msg("Watching rule directory")

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

			for {
				select {
				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
						continue
					}
					logger.Debug().
						Str("file", event.Name).
						Str("op", event.Op.String()).
						Msg("Rule directory changed")

					if err := manager.ReloadDir(os.DirFS(dir), ".", cfg.Rules.Extensions...); err != nil {
						// Keep serving the previous snapshot
						fmt.Fprintln(os.Stderr, renderer.RenderWarning(
							fmt.Sprintf("reload failed, keeping previous rules: %v", err)))
						continue
					}
					fmt.Printf("Reloaded %d rules\n", manager.Current().Len())
					printActivations(manager, renderer, args)

				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					logger.Warn().Err(err).Msg("Watcher error")

				case <-sig:
					logger.Info().Msg("Stopping watch")
					return nil
				}
			}
		},
	}
}

func printActivations(manager *rules.Manager, renderer *style.Renderer, paths []string) {
	for _, arg := range paths {
		activated, err := manager.Resolve(glob.NormalizePath(arg))
		if err != nil {
			fmt.Fprintln(os.Stderr, renderer.RenderError(err))
			continue
		}
		fmt.Print(renderer.RenderActivation(arg, activated))
	}
}
