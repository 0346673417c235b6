package commands

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/escheck/pkg/features"
)

// NewFeaturesCommand creates the features command, which lists the catalog.
func NewFeaturesCommand() *cobra.Command {
	var minEdition int

	cmd := &cobra.Command{
		Use:   "features",
		Short: "List the known ECMAScript feature catalog",
		Long: `Features prints every feature the checker can detect, with the minimum
ECMAScript edition that supports it and an illustrative snippet. These names
are the vocabulary accepted by --ignore, --ignore-file, and --allow-list.`,
		Run: func(cmd *cobra.Command, _ []string) {
			renderCatalog(cmd, minEdition)
		},
	}

	cmd.Flags().IntVar(&minEdition, "min-edition", 0, "only list features introduced at or above this edition")

	return cmd
}

func renderCatalog(cmd *cobra.Command, minEdition int) {
	catalog := make([]features.Definition, 0, len(features.Catalog))

	for _, def := range features.Catalog {
		if def.MinVersion >= minEdition {
			catalog = append(catalog, def)
		}
	}

	sort.Slice(catalog, func(i, j int) bool {
		if catalog[i].MinVersion != catalog[j].MinVersion {
			return catalog[i].MinVersion < catalog[j].MinVersion
		}

		return catalog[i].Name < catalog[j].Name
	})

	writer := table.NewWriter()
	writer.SetOutputMirror(cmd.OutOrStdout())
	writer.AppendHeader(table.Row{"Feature", "Edition", "Example"})

	for _, def := range catalog {
		writer.AppendRow(table.Row{def.Name, fmt.Sprintf("es%d", def.MinVersion), def.Example})
	}

	writer.Render()
}
