package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"javaver/internal/theme"
	"javaver/internal/ui"
)

func (a *App) newRmCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"remove"},
		Short:   "Unregister an SDK",
		Long:    "rm removes the named SDK from the registry. The SDK's files and the machine PATH are left untouched.",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}

			entry, ok := reg.Get(args[0])
			if ok && !yes && a.interactive() {
				confirmed, err := ui.Confirm(
					fmt.Sprintf("Remove %s?", entry.Name),
					entry.Path,
				)
				if err != nil {
					return err
				}
				if !confirmed {
					a.out.Info("Nothing removed")
					return nil
				}
			}

			removed, err := reg.Remove(args[0])
			if err != nil {
				return err
			}
			a.out.Success("Removed %s", theme.Active.Render(removed.Name))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
