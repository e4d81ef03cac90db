package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"partsearch/internal/catalog"
	"partsearch/internal/search"
)

func newIndicesCmd(rt *runtime) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "indices",
		Short: "List provider indices and check them against the catalog",
		Long: `List the indices the provider serves next to the catalog category
each one backs. Catalog categories the provider does not serve are
reported as missing; searching them fails and shows nothing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndices(cmd.Context(), cmd, rt, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print machine readable JSON")

	return cmd
}

// indexReport pairs the provider's indices with the catalog
type indexReport struct {
	Indices []indexRow `json:"indices"`
	Missing []string   `json:"missing"`
}

type indexRow struct {
	Name     string `json:"name"`
	Entries  int    `json:"entries"`
	Category string `json:"category,omitempty"` // catalog label, empty when unused
}

func (rt *runtime) lister() (search.IndexLister, error) {
	if rt.opts.fixture != "" {
		return search.LoadFixture(rt.opts.fixture)
	}
	return rt.algolia()
}

func runIndices(ctx context.Context, cmd *cobra.Command, rt *runtime, asJSON bool) error {
	lister, err := rt.lister()
	if err != nil {
		return err
	}

	infos, err := lister.ListIndices(ctx)
	if err != nil {
		return fmt.Errorf("failed to list indices: %w", err)
	}

	report := buildIndexReport(rt.catalog, infos)
	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	writeIndexReport(out, report)
	return nil
}

func buildIndexReport(cat *catalog.Catalog, infos []search.IndexInfo) indexReport {
	report := indexReport{
		Indices: make([]indexRow, 0, len(infos)),
		Missing: []string{},
	}

	served := make(map[string]bool, len(infos))
	for _, info := range infos {
		served[info.Name] = true
		row := indexRow{Name: info.Name, Entries: info.Entries}
		if c, ok := cat.Lookup(info.Name); ok {
			row.Category = c.Label
		}
		report.Indices = append(report.Indices, row)
	}

	for _, name := range cat.Names() {
		if !served[name] {
			report.Missing = append(report.Missing, name)
		}
	}
	return report
}

func writeIndexReport(w io.Writer, report indexReport) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tENTRIES\tCATEGORY")
	for _, row := range report.Indices {
		label := row.Category
		if label == "" {
			label = "-"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", row.Name, row.Entries, label)
	}
	_ = tw.Flush()

	if len(report.Missing) > 0 {
		fmt.Fprintf(w, "\nMissing from provider: %s\n", strings.Join(report.Missing, ", "))
	}
}
