package cli

import (
	"context"

	"github.com/spf13/cobra"

	"javaver/internal/registry"
	"javaver/internal/theme"
	"javaver/internal/ui"
)

func (a *App) newAutoCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "auto [search-path]",
		Aliases: []string{"scan"},
		Short:   "Find installed SDKs and register them",
		Long: `auto scans the vendor install directories, the configured search_paths
and the optional search-path argument. Every immediate subdirectory holding
bin/java is registered under its directory name. Names already registered
and invalid directories are skipped.`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}

			d := a.detector()
			extra := append(append([]string{}, a.settings.SearchPaths...), args...)

			var found []registry.Entry
			discover := func(context.Context) error {
				found = d.Discover(extra...)
				return nil
			}
			if a.interactive() && !a.opts.quiet {
				err = ui.WithSpinner(cmd.Context(), "Searching for Java installations...", discover)
			} else {
				err = discover(cmd.Context())
			}
			if err != nil {
				return err
			}

			if len(found) == 0 {
				a.out.Info("No Java installations found")
				return nil
			}

			res := reg.Import(d, found)
			for _, e := range res.Added {
				a.out.Success("Added %s → %s", theme.Active.Render(e.Name), theme.PathStyle.Render(e.Path))
			}
			for _, s := range res.Skipped {
				a.logger.Info("candidate skipped", "name", s.Entry.Name, "reason", s.Reason)
				a.errOut.Warn("Skipped %s: %s", s.Entry.Name, s.Reason)
			}
			a.out.Info("%d added, %d skipped", len(res.Added), len(res.Skipped))
			return nil
		},
	}
}
