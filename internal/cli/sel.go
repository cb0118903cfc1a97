package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"javaver/internal/env"
	"javaver/internal/theme"
	"javaver/internal/ui"
)

func (a *App) newSelCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:     "sel [name]",
		Aliases: []string{"use", "switch"},
		Short:   "Make a registered SDK the active one",
		Long: `sel moves the SDK's bin directory to the front of the machine PATH,
notifies running programs of the change and sets JAVA_HOME for this process.
Without a name an interactive picker is shown.`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}

			var name string
			switch {
			case len(args) == 1:
				name = args[0]
			case !a.interactive():
				return newUsageError(errors.New("sel needs an SDK name when not run from a terminal"))
			default:
				if reg.Len() == 0 {
					return errors.New("no SDKs registered; use 'javaver add' or 'javaver auto' first")
				}
				current, _ := a.active(reg)
				picked, err := ui.PickSDK("Select Java SDK", reg.Entries(), current.Name)
				if err != nil {
					return err
				}
				name = picked.Name
			}

			store := a.NewStore()
			if dryRun {
				snap, err := env.Snapshot(store)
				if err != nil {
					return fmt.Errorf("failed to read PATH: %w", err)
				}
				store = snap
			}

			res, err := a.newSwitcher(store).Switch(reg, name)
			if err != nil {
				return err
			}

			if dryRun {
				fmt.Fprintf(a.Stdout, "%s %s\n", theme.Label.Render("PATH"), strings.Join(res.Path, string(filepath.ListSeparator)))
				fmt.Fprintf(a.Stdout, "%s %s\n", theme.Label.Render("JAVA_HOME"), res.JavaHome)
				return nil
			}

			if err := a.Setenv("JAVA_HOME", res.JavaHome); err != nil {
				a.logger.Warn("failed to set JAVA_HOME", "error", err)
			}
			a.out.Success("Switched to %s", theme.Active.Render(res.Entry.Name))
			a.out.Info("JAVA_HOME=%s applies to this process; open a new terminal to pick up the new PATH", res.JavaHome)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the resulting PATH without writing it")
	return cmd
}
