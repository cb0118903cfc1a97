package cli

import (
	"context"

	"github.com/spf13/cobra"

	"javaver/internal/theme"
	"javaver/internal/ui"
	"javaver/internal/updater"
)

func (a *App) newSelfUpdateCmd() *cobra.Command {
	var checkOnly, yes bool

	cmd := &cobra.Command{
		Use:     "self-update",
		Aliases: []string{"update"},
		Short:   "Update javaver to the latest release",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := updater.New(a.settings, a.Version, a.logger)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), updater.UpdateTimeout)
			defer cancel()

			release, err := u.CheckForUpdate(ctx)
			if err != nil {
				return err
			}
			if release == nil {
				a.out.Success("Already running the latest version (%s)", u.CurrentVersion())
				return nil
			}

			a.out.Info("Update available: %s → %s", u.CurrentVersion(), theme.Active.Render(release.Version()))
			if checkOnly {
				return nil
			}

			if !yes && a.interactive() {
				action, err := u.PromptForUpdate(release)
				if err != nil {
					return err
				}
				if action != updater.ActionUpdate {
					return nil
				}
			}

			apply := func(ctx context.Context) error { return u.PerformUpdate(ctx, release) }
			if a.interactive() && !a.opts.quiet {
				err = ui.WithSpinner(ctx, "Downloading javaver "+release.Version()+"...", apply)
			} else {
				err = apply(ctx)
			}
			if err != nil {
				return err
			}
			updater.ShowUpdateSuccess(a.Stdout, release.Version())
			return nil
		},
	}

	cmd.Flags().BoolVar(&checkOnly, "check", false, "only report whether an update is available")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "install without asking")
	return cmd
}
