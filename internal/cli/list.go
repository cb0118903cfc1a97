package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"javaver/internal/theme"
)

type listItem struct {
	Name    string `json:"name" yaml:"name"`
	Path    string `json:"path" yaml:"path"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	Active  bool   `json:"active" yaml:"active"`
}

func (a *App) newListCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show registered SDKs",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if format != "table" && format != "json" && format != "yaml" {
				return newUsageError(fmt.Errorf("unsupported format %q (use table, json or yaml)", format))
			}

			reg, err := a.registry()
			if err != nil {
				return err
			}

			active, hasActive := a.active(reg)
			d := a.detector()
			items := make([]listItem, 0, reg.Len())
			for _, e := range reg.Entries() {
				items = append(items, listItem{
					Name:    e.Name,
					Path:    e.Path,
					Version: d.Version(e.Path),
					Active:  hasActive && strings.EqualFold(e.Name, active.Name),
				})
			}

			switch format {
			case "json":
				enc := json.NewEncoder(a.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			case "yaml":
				enc := yaml.NewEncoder(a.Stdout)
				defer enc.Close()
				return enc.Encode(items)
			}

			if len(items) == 0 {
				a.out.Info("No SDKs registered. Use 'javaver add' or 'javaver auto'.")
				return nil
			}
			fmt.Fprintln(a.Stdout, renderTable(items))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", "table", "output format: table, json or yaml")
	return cmd
}

func renderTable(items []listItem) string {
	rows := make([][]string, len(items))
	for i, it := range items {
		marker := ""
		if it.Active {
			marker = "*"
		}
		version := it.Version
		if version == "" {
			version = "-"
		}
		rows[i] = []string{marker, it.Name, version, it.Path}
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Secondary)).
		Headers("", "NAME", "VERSION", "PATH").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.TableHeader
			}
			if items[row].Active && col <= 1 {
				return theme.TableCell.Inherit(theme.Active)
			}
			return theme.TableCell
		}).
		String()
}
