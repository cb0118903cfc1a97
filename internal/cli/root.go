package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// unknownCommand rejects arguments left over once cobra found no subcommand.
func unknownCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	msg := fmt.Sprintf("unknown command %q for %q", args[0], cmd.CommandPath())
	if suggestions := cmd.SuggestionsFor(args[0]); len(suggestions) > 0 {
		msg += fmt.Sprintf("; did you mean %s?", strings.Join(suggestions, " or "))
	}
	return newUsageError(errors.New(msg))
}

func (a *App) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "javaver",
		Short: "Register Java SDKs and switch the active one",
		Long: `javaver keeps a named list of installed Java SDKs and makes one of them
active by moving its bin directory to the front of the machine PATH and
setting JAVA_HOME.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          unknownCommand,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(a.Stdout, "javaver: pick a command, for example 'javaver list' or 'javaver sel <name>'.")
			return newUsageError(errNoCommand)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return newUsageError(err)
	})

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.opts.registryFile, "registry", "", "registry file (default: javaver-config.json next to the executable)")
	flags.StringVar(&a.opts.configFile, "config", "", "settings file (default: $XDG_CONFIG_HOME/javaver/config.toml)")
	flags.BoolVarP(&a.opts.verbose, "verbose", "v", false, "log progress to stderr")
	flags.BoolVar(&a.opts.debug, "debug", false, "log debug detail to stderr")
	flags.BoolVarP(&a.opts.quiet, "quiet", "q", false, "only print warnings and errors")

	cmd.AddCommand(
		a.newAddCmd(),
		a.newAutoCmd(),
		a.newInstallCmd(),
		a.newSelCmd(),
		a.newRmCmd(),
		a.newListCmd(),
		a.newCurrentCmd(),
		a.newDoctorCmd(),
		a.newConfigCmd(),
		a.newSelfUpdateCmd(),
		a.newVersionCmd(),
	)
	return cmd
}
