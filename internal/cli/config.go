package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"javaver/internal/config"
	"javaver/internal/theme"
)

func (a *App) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read or change javaver settings",
	}
	cmd.AddCommand(a.newConfigGetCmd(), a.newConfigSetCmd(), a.newConfigPathCmd())
	return cmd
}

func (a *App) newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Short: "Print one setting, or all of them",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				v, ok := a.settings.Get(args[0])
				if !ok {
					return newUsageError(fmt.Errorf("unknown config key: %s", args[0]))
				}
				fmt.Fprintln(a.Stdout, v)
				return nil
			}
			for _, k := range config.Keys() {
				v, _ := a.settings.Get(k.Name)
				fmt.Fprintf(a.Stdout, "%s = %s\n", theme.Label.Render(k.Name), v)
			}
			return nil
		},
	}
}

func (a *App) newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting",
		Long:  "set changes a setting and writes the settings file. Run 'javaver config get' to see the keys.",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.settings.Set(args[0], args[1]); err != nil {
				return newUsageError(err)
			}
			if err := a.settings.Save(); err != nil {
				return err
			}
			a.out.Success("%s updated", args[0])
			return nil
		},
	}
}

func (a *App) newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings and registry file locations",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			regPath, err := a.settings.RegistryPath(a.opts.registryFile)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.Stdout, "%s %s\n", theme.Label.Render("settings:"), a.settings.Path())
			fmt.Fprintf(a.Stdout, "%s %s\n", theme.Label.Render("registry:"), regPath)
			return nil
		},
	}
}
