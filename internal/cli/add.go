package cli

import (
	"github.com/spf13/cobra"

	"javaver/internal/theme"
)

func (a *App) newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <path>",
		Short: "Register a Java SDK under a name",
		Example: `  javaver add temurin-21 "C:\Program Files\Eclipse Adoptium\jdk-21.0.2.13-hotspot"
  javaver add zulu-8 /usr/lib/jvm/zulu-8`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			entry, err := reg.Register(a.detector(), args[0], args[1])
			if err != nil {
				return err
			}
			a.logger.Info("sdk registered", "name", entry.Name, "path", entry.Path)
			a.out.Success("Added %s → %s", theme.Active.Render(entry.Name), theme.PathStyle.Render(entry.Path))
			return nil
		},
	}
}
