package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"partsearch/internal/domain"
	"partsearch/internal/search"
	"partsearch/internal/ui/logic"
	"partsearch/internal/ui/views"
)

// errEmptyQuery is returned when the query is only whitespace
var errEmptyQuery = errors.New("query is empty")

// searchOptions holds CLI flags for search.
type searchOptions struct {
	json        bool
	hitsPerPage int
	categories  []string
}

func newSearchCmd(rt *runtime) *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Run one federated search and print the hits",
		Long: `Search every catalog category once and print the hits grouped by
category in catalog order. The number in brackets is the hit's position in
the merged list.

Examples:
  partsearch search ryzen
  partsearch search "rtx 4070" --limit 5
  partsearch search ddr5 --category memory --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return runSearch(cmd.Context(), cmd, rt, query, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "Print machine readable JSON")
	cmd.Flags().IntVarP(&opts.hitsPerPage, "limit", "n", 0, "Hits per category (default from config)")
	cmd.Flags().StringSliceVarP(&opts.categories, "category", "c", nil, "Restrict to categories (repeatable)")

	return cmd
}

type jsonHit struct {
	Index    int         `json:"index"`
	ObjectID string      `json:"objectID"`
	Name     string      `json:"name"`
	Price    string      `json:"price,omitempty"`
	Item     domain.Item `json:"item"`
}

type jsonSection struct {
	Category string    `json:"category"`
	Label    string    `json:"label"`
	Offset   int       `json:"offset"`
	Hits     []jsonHit `json:"hits"`
}

type jsonResult struct {
	Query    string            `json:"query"`
	Total    int               `json:"total"`
	Sections []jsonSection     `json:"sections"`
	Errors   map[string]string `json:"errors,omitempty"`
}

func runSearch(ctx context.Context, cmd *cobra.Command, rt *runtime, query string, opts searchOptions) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return errEmptyQuery
	}

	cat := rt.catalog
	if len(opts.categories) > 0 {
		sub, err := cat.Subset(opts.categories)
		if err != nil {
			return err
		}
		cat = sub
	}

	hits := rt.cfg.Search.HitsPerPage
	if opts.hitsPerPage > 0 {
		hits = opts.hitsPerPage
	}

	provider, err := rt.provider()
	if err != nil {
		return err
	}

	slog.Info("search_started", slog.String("query", query), slog.Int("categories", cat.Len()))
	sets := search.Federate(ctx, provider, cat, query, hits)
	if err := ctx.Err(); err != nil {
		return err
	}

	byName := make(map[string]domain.ResultSet, len(sets))
	failed := make(map[string]string)
	for _, set := range sets {
		byName[set.Category] = set
		if set.Err != nil {
			failed[set.Category] = set.Err.Error()
		}
	}
	view := logic.Aggregate(cat, byName)
	slog.Info("search_complete",
		slog.String("query", query),
		slog.Int("results", view.Len()),
		slog.Int("failed", len(failed)))

	out := cmd.OutOrStdout()
	if opts.json {
		return writeSearchJSON(out, query, view, failed)
	}

	for _, name := range cat.Names() {
		if msg, ok := failed[name]; ok {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %s\n", name, msg)
		}
	}
	writeSearchText(out, query, view, isTerminal(out))
	return nil
}

func writeSearchJSON(w io.Writer, query string, view logic.View, failed map[string]string) error {
	res := jsonResult{
		Query:    query,
		Total:    view.Len(),
		Sections: make([]jsonSection, 0, len(view.Sections)),
	}
	if len(failed) > 0 {
		res.Errors = failed
	}

	for _, sec := range view.Sections {
		js := jsonSection{
			Category: sec.Category.Name,
			Label:    sec.Category.Label,
			Offset:   sec.Offset,
			Hits:     make([]jsonHit, 0, len(sec.Items)),
		}
		for i, item := range sec.Items {
			price, _ := item.Price()
			js.Hits = append(js.Hits, jsonHit{
				Index:    sec.Offset + i,
				ObjectID: item.ID(),
				Name:     item.Name(),
				Price:    price,
				Item:     item,
			})
		}
		res.Sections = append(res.Sections, js)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return nil
}

func writeSearchText(w io.Writer, query string, view logic.View, styled bool) {
	if view.Len() == 0 {
		fmt.Fprintf(w, "No results for %q\n", query)
		return
	}

	styles := views.NewStyles()
	plain := lipgloss.NewStyle()
	for i, sec := range view.Sections {
		if i > 0 {
			fmt.Fprintln(w)
		}

		header := fmt.Sprintf("%s %s (%d)", sec.Category.Icon, sec.Category.Label, len(sec.Items))
		if styled {
			header = styles.SectionHeader.Render(header)
		}
		fmt.Fprintln(w, header)

		for local, item := range sec.Items {
			name := item.Name()
			if styled {
				name = views.RenderSegments(views.MatchTerms(name, query), plain, styles.Highlight)
			}
			line := fmt.Sprintf("  [%d] %s", sec.Offset+local, name)
			if price, ok := item.Price(); ok {
				p := "$" + price
				if styled {
					p = styles.Price.Render(p)
				}
				line += "  " + p
			}
			fmt.Fprintln(w, line)
		}
	}
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
