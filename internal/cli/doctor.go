package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"javaver/internal/env"
	"javaver/internal/registry"
	"javaver/internal/switcher"
	"javaver/internal/theme"
)

var errDoctorIssues = errors.New("doctor found problems")

type check struct {
	ok     bool
	warn   bool
	detail string
}

func (a *App) newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the registry and the active SDK",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}

			checks := a.diagnose(reg, a.readPath(), os.Getenv("JAVA_HOME"), env.IsAdmin())

			failed := 0
			for _, c := range checks {
				switch {
				case c.ok:
					a.out.Success("%s", c.detail)
				case c.warn:
					a.out.Warn("%s", c.detail)
				default:
					failed++
					a.out.Error("%s", c.detail)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d", errDoctorIssues, failed)
			}
			return nil
		},
	}
}

func (a *App) diagnose(reg *registry.Registry, path []string, javaHome string, admin bool) []check {
	var checks []check
	d := a.detector()

	if reg.Len() == 0 {
		checks = append(checks, check{warn: true, detail: "No SDKs registered"})
	}
	for _, e := range reg.Entries() {
		if d.IsValidSdkRoot(e.Path) {
			checks = append(checks, check{ok: true, detail: fmt.Sprintf("%s: %s", e.Name, theme.PathStyle.Render(e.Path))})
		} else {
			checks = append(checks, check{detail: fmt.Sprintf("%s: %s no longer holds a Java SDK", e.Name, e.Path)})
		}
	}

	active, ok := switcher.Active(reg, path)
	switch {
	case !ok:
		checks = append(checks, check{warn: true, detail: "No registered SDK is on PATH"})
	case !strings.EqualFold(path[0], active.BinDir()):
		checks = append(checks, check{warn: true, detail: fmt.Sprintf("%s is on PATH but not first; run 'javaver sel %s'", active.Name, active.Name)})
	default:
		checks = append(checks, check{ok: true, detail: fmt.Sprintf("%s leads PATH", active.Name)})
	}

	if ok {
		switch {
		case javaHome == "":
			checks = append(checks, check{warn: true, detail: "JAVA_HOME is not set"})
		case !strings.EqualFold(filepath.Clean(javaHome), filepath.Clean(active.Path)):
			checks = append(checks, check{warn: true, detail: fmt.Sprintf("JAVA_HOME points to %s, not %s", javaHome, active.Name)})
		default:
			checks = append(checks, check{ok: true, detail: "JAVA_HOME matches the active SDK"})
		}
	}

	if admin {
		checks = append(checks, check{ok: true, detail: "Running with administrator rights"})
	} else {
		checks = append(checks, check{warn: true, detail: "Not elevated; 'javaver sel' will not be able to write the machine PATH"})
	}
	return checks
}
