package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newCatalogCmd creates the catalog command group.
func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the node template catalog",
	}

	cmd.AddCommand(newCatalogListCmd())

	return cmd
}

// newCatalogListCmd creates the catalog list command.
func newCatalogListCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the available node templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogList(file)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "catalog TOML file (built-in if empty)")

	return cmd
}

func runCatalogList(file string) error {
	cat, err := loadCatalog(file)
	if err != nil {
		return err
	}

	source := "built-in"
	if file != "" {
		source = file
	}
	printInfo("%d template(s) (%s)", cat.Len(), source)
	printNewline()

	for _, tmpl := range cat.List() {
		family := tmpl.Family
		if tmpl.Subfamily != "" {
			family += "/" + tmpl.Subfamily
		}
		if family == "" {
			family = "—"
		}
		fmt.Println("  " + StyleHighlight.Render(tmpl.ID))
		printDetail("%s · %s · %d units", tmpl.Title, family, tmpl.DefaultDurationUnits)
		if tmpl.Description != "" {
			printDetail("%s", tmpl.Description)
		}
	}
	return nil
}
