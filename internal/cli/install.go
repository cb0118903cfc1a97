package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"javaver/internal/installer"
	"javaver/internal/registry"
	"javaver/internal/theme"
)

func (a *App) newInstallCmd() *cobra.Command {
	var (
		list bool
		dir  string
		name string
	)

	cmd := &cobra.Command{
		Use:   "install <major>",
		Short: "Download an Eclipse Temurin JDK and register it",
		Long: `install downloads the latest Temurin build of a Java feature release,
verifies its checksum, unpacks it into the install directory and registers it
as temurin-<major>. Use --list to see the releases on offer.`,
		Example: `  javaver install 21
  javaver install --list`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			dist := a.distributor()
			ctx := cmd.Context()

			if list {
				return a.printReleases(ctx, dist)
			}
			if len(args) == 0 {
				return newUsageError(errors.New("install needs a Java feature release, for example 'javaver install 21'"))
			}
			major, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil || major <= 0 {
				return newUsageError(fmt.Errorf("invalid Java release %q", args[0]))
			}

			reg, err := a.registry()
			if err != nil {
				return err
			}

			if dir == "" {
				dir = a.settings.InstallPath()
			}
			d := a.detector()
			opts := []installer.Option{installer.WithLogger(a.logger)}
			if a.HTTPClient != nil {
				opts = append(opts, installer.WithDownloadClient(a.HTTPClient))
			}
			inst := installer.New(dist, dir, d, opts...)

			var res *installer.Installed
			if a.interactive() && !a.opts.quiet {
				title := fmt.Sprintf("Downloading Java %d from %s", major, dist.Name())
				err = installer.RunWithProgress(ctx, title, func(ctx context.Context, progress installer.ProgressFunc) error {
					var err error
					res, err = inst.Install(ctx, major, progress)
					return err
				})
			} else {
				res, err = inst.Install(ctx, major, nil)
			}
			if err != nil {
				return err
			}
			a.out.Success("Installed Java %s into %s", res.Version, theme.PathStyle.Render(res.Path))

			if name == "" {
				name = res.Name
			}
			if existing, ok := reg.Get(name); ok && strings.EqualFold(existing.Path, res.Path) {
				a.out.Info("%s is already registered", existing.Name)
				return nil
			}
			entry, err := reg.Register(d, name, res.Path)
			if errors.Is(err, registry.ErrDuplicateName) {
				a.errOut.Warn("%s is taken; register it with: javaver add <name> %q", name, res.Path)
				return nil
			}
			if err != nil {
				return err
			}
			a.out.Success("Registered %s; run 'javaver sel %s' to use it", theme.Active.Render(entry.Name), entry.Name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "list installable releases")
	cmd.Flags().StringVar(&dir, "dir", "", "install directory (default: install_dir setting)")
	cmd.Flags().StringVar(&name, "name", "", "registry name (default: temurin-<major>)")
	return cmd
}

func (a *App) distributor() installer.Distributor {
	if a.Distributor != nil {
		return a.Distributor
	}
	return installer.NewAdoptium()
}

func (a *App) printReleases(ctx context.Context, dist installer.Distributor) error {
	releases, err := dist.Releases(ctx)
	if err != nil {
		if len(releases) == 0 {
			return err
		}
		a.logger.Warn("release list unavailable", "error", err)
	}
	for _, r := range releases {
		line := strconv.Itoa(r.Major)
		if r.LTS {
			line += " " + theme.Faint.Render("(LTS)")
		}
		fmt.Fprintln(a.Stdout, line)
	}
	return nil
}
