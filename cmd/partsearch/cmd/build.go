package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"partsearch/internal/build"
)

func newBuildCmd(rt *runtime) *cobra.Command {
	var clearAll bool
	var limit int

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Show the picked parts",
		Long: `Show the parts picked from the search overlay, most recent first.
Use --clear to empty the build list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd.Context(), cmd, rt, clearAll, limit)
		},
	}

	cmd.Flags().BoolVar(&clearAll, "clear", false, "Remove every picked part")
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum number of picks to show")

	return cmd
}

func runBuild(ctx context.Context, cmd *cobra.Command, rt *runtime, clearAll bool, limit int) error {
	store, err := build.Open(rt.cfg.Build.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if clearAll {
		n, err := store.Clear(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Removed %d picks\n", n)
		return nil
	}

	picks, err := store.List(ctx, limit)
	if err != nil {
		return err
	}
	if len(picks) == 0 {
		fmt.Fprintln(out, "No parts picked yet")
		return nil
	}

	total, err := store.Count(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tNAME\tPRICE\tPICKED")
	for _, p := range picks {
		label := p.Category
		if c, ok := rt.catalog.Lookup(p.Category); ok {
			label = c.Label
		}
		price := "-"
		if p.Price != "" {
			price = "$" + p.Price
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", label, p.Name, price, p.PickedAt.Local().Format("2006-01-02 15:04"))
	}
	_ = tw.Flush()

	if total > len(picks) {
		fmt.Fprintf(out, "\n%d of %d picks shown\n", len(picks), total)
	}
	return nil
}
