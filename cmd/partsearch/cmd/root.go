// Package cmd provides the CLI commands for partsearch.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"partsearch/internal/build"
	"partsearch/internal/catalog"
	"partsearch/internal/config"
	"partsearch/internal/eventbus"
	"partsearch/internal/logging"
	"partsearch/internal/search"
	"partsearch/internal/ui"
)

// errNoCredentials is returned when neither a fixture nor Algolia
// credentials are available
var errNoCredentials = errors.New("missing Algolia credentials: set ALGOLIA_APP_ID and ALGOLIA_SEARCH_API_KEY or pass --fixture")

// rootOptions holds the persistent flags
type rootOptions struct {
	configPath string
	fixture    string
	debug      bool
	noMouse    bool
}

// runtime is what every command needs once flags are parsed
type runtime struct {
	opts    rootOptions
	cfg     *config.Config
	catalog *catalog.Catalog
	cleanup func()
}

// NewRootCmd creates the root command for the partsearch CLI.
func NewRootCmd() *cobra.Command {
	rt := &runtime{}

	cmd := &cobra.Command{
		Use:   "partsearch",
		Short: "Search PC parts across every component index",
		Long: `partsearch searches every PC component index of an Algolia
application at once and shows the hits grouped by category.

Run 'partsearch' to open the builder screen and press ctrl+k to search.
Picked parts are kept in a local build list.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), rt)
		},
	}

	defaultConfig := filepath.Join(config.Dir(), "config.toml")
	cmd.PersistentFlags().StringVar(&rt.opts.configPath, "config", "", "Config file (default "+defaultConfig+")")
	cmd.PersistentFlags().StringVar(&rt.opts.fixture, "fixture", "", "Serve hits from a JSON fixture instead of Algolia")
	cmd.PersistentFlags().BoolVar(&rt.opts.debug, "debug", false, "Enable debug logging")
	cmd.Flags().BoolVar(&rt.opts.noMouse, "no-mouse", false, "Disable mouse support")

	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		return rt.setup()
	}
	cmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		rt.close()
		return nil
	}

	cmd.AddCommand(newSearchCmd(rt))
	cmd.AddCommand(newIndicesCmd(rt))
	cmd.AddCommand(newBuildCmd(rt))

	return cmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// setup loads .env files and the config, then installs the file logger
func (rt *runtime) setup() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.NewService(rt.opts.configPath).Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.Log.Level
	if rt.opts.debug {
		level = "debug"
	}
	logger, cleanup, err := logging.Setup(logging.Config{Level: level, FilePath: cfg.Log.Path})
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	slog.SetDefault(logger)

	cat, err := cfg.Catalog()
	if err != nil {
		cleanup()
		return err
	}

	rt.cfg = cfg
	rt.catalog = cat
	rt.cleanup = cleanup
	slog.Debug("config_loaded",
		slog.Int("categories", cat.Len()),
		slog.Int("hits_per_page", cfg.Search.HitsPerPage),
		slog.Bool("fixture", rt.opts.fixture != ""))
	return nil
}

func (rt *runtime) close() {
	if rt.cleanup != nil {
		rt.cleanup()
		rt.cleanup = nil
	}
}

// algolia builds a client from the configured credentials
func (rt *runtime) algolia() (*search.AlgoliaClient, error) {
	if !rt.cfg.HasCredentials() {
		return nil, errNoCredentials
	}
	timeout, err := rt.cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}

	opts := []search.AlgoliaOption{
		search.WithTimeout(timeout),
		search.WithAdminKey(rt.cfg.Algolia.AdminAPIKey),
	}
	if rt.cfg.Algolia.BaseURL != "" {
		opts = append(opts, search.WithBaseURL(rt.cfg.Algolia.BaseURL))
	}
	return search.NewAlgoliaClient(rt.cfg.Algolia.AppID, rt.cfg.Algolia.SearchAPIKey, opts...), nil
}

// provider returns the fixture when one is given, otherwise a cached
// Algolia client
func (rt *runtime) provider() (search.Provider, error) {
	if rt.opts.fixture != "" {
		return search.LoadFixture(rt.opts.fixture)
	}
	client, err := rt.algolia()
	if err != nil {
		return nil, err
	}
	return search.NewCachedProvider(client, rt.cfg.Search.CacheSize), nil
}

func runTUI(ctx context.Context, rt *runtime) error {
	provider, err := rt.provider()
	if err != nil {
		return err
	}

	store, err := build.Open(rt.cfg.Build.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	bus := eventbus.New(slog.Default())
	defer bus.Close()

	debounce, err := rt.cfg.DebounceDuration()
	if err != nil {
		return err
	}

	mouse := rt.cfg.UI.Mouse && !rt.opts.noMouse
	model := ui.NewModel(bus, provider, rt.catalog, ui.Options{
		HitsPerPage:   rt.cfg.Search.HitsPerPage,
		Debounce:      debounce,
		CloseOnSelect: rt.cfg.Search.CloseOnSelect,
		Mouse:         mouse,
		Placeholder:   rt.cfg.Search.Placeholder,
	})
	model.SetBuild(store)

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if mouse {
		progOpts = append(progOpts, tea.WithMouseAllMotion())
	}
	p := tea.NewProgram(model, progOpts...)
	model.SetProgram(p)

	// Persist picks and push them back to the landing screen
	unrecord := store.Record(bus, func(pick build.Pick) {
		p.Send(ui.PickAddedMsg{Pick: pick})
	})
	defer unrecord()

	unwatch := bus.Subscribe(eventbus.EventQueryIssued, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.QueryIssuedEvent); ok {
			slog.Debug("query_issued",
				slog.String("query", ev.Query),
				slog.Uint64("generation", ev.Generation),
				slog.Int("categories", ev.Categories))
		}
	})
	defer unwatch()

	unfailed := bus.Subscribe(eventbus.EventCategoryFailed, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.CategoryFailedEvent); ok {
			slog.Warn("category_failed",
				slog.String("category", ev.Category),
				slog.String("query", ev.Query),
				slog.Any("error", ev.Err))
		}
	})
	defer unfailed()

	slog.Info("tui_started", slog.Bool("mouse", mouse))
	_, err = p.Run()
	model.Shutdown()

	// Drain queued selections while the recorder is still subscribed
	bus.Close()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
