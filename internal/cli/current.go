package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"javaver/internal/theme"
)

func (a *App) newCurrentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the active SDK",
		Long:  "current reports the registered SDK whose bin directory comes first on the machine PATH.",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}

			entry, ok := a.active(reg)
			if !ok {
				a.out.Info("No registered SDK is active")
				return nil
			}
			if a.opts.quiet {
				fmt.Fprintln(a.Stdout, entry.Name)
				return nil
			}
			fmt.Fprintf(a.Stdout, "%s %s\n", theme.Label.Render("SDK:      "), theme.Active.Render(entry.Name))
			fmt.Fprintf(a.Stdout, "%s %s\n", theme.Label.Render("Path:     "), theme.PathStyle.Render(entry.Path))
			if home := os.Getenv("JAVA_HOME"); home != "" {
				fmt.Fprintf(a.Stdout, "%s %s\n", theme.Label.Render("JAVA_HOME:"), home)
			}
			return nil
		},
	}
}
