package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"gamepulse/dashboard/internal/config"
	"gamepulse/dashboard/internal/database"
	"gamepulse/dashboard/internal/dataset"
	"gamepulse/dashboard/internal/filters"
	"gamepulse/dashboard/internal/insights"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// bindDataFlags registers the flags shared by every command that loads the dataset.
func bindDataFlags(cmd *cobra.Command, v *viper.Viper) {
	f := cmd.Flags()
	f.String("data-dir", ".", "directory searched for the dataset files")
	f.String("data-url", "", "download the dataset from this URL when no local file exists")
	f.Int("years-back", 10, "keep only the last N release years (0 keeps all)")
	f.String("snapshot-dsn", "", "snapshot store: postgres:// URL or sqlite path")
	f.String("log-level", "warn", "log level")
	_ = v.BindPFlag("DATA_DIR", f.Lookup("data-dir"))
	_ = v.BindPFlag("DATA_URL", f.Lookup("data-url"))
	_ = v.BindPFlag("YEARS_BACK", f.Lookup("years-back"))
	_ = v.BindPFlag("SNAPSHOT_DSN", f.Lookup("snapshot-dsn"))
	_ = v.BindPFlag("LOG_LEVEL", f.Lookup("log-level"))
}

// loadConfig reads .env and the environment, with flags taking precedence.
func loadConfig(v *viper.Viper) (*config.Config, error) {
	cfg, err := config.Load(v, ".")
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	config.SetupLogger(cfg.LogLevel)
	return cfg, nil
}

func loaderOptions(cfg *config.Config, store dataset.SnapshotStore) dataset.Options {
	opts := dataset.DefaultOptions(cfg.DataDir)
	opts.DataURL = cfg.DataURL
	opts.Finalize.YearsBack = cfg.YearsBack
	opts.Snapshot = store
	return opts
}

func openStore(dsn string) (*database.SnapshotStore, error) {
	if dsn == "" {
		return nil, nil
	}
	db, err := database.Open(dsn)
	if err != nil {
		return nil, err
	}
	return database.NewSnapshotStore(db), nil
}

func newSummaryCmd() *cobra.Command {
	v := viper.New()
	var (
		section string
		asJSON  bool
		q       filters.Query
		yearMin int
		yearMax int
	)
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Load the dataset, apply filters and print a section",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			store, err := openStore(cfg.SnapshotDSN)
			if err != nil {
				return err
			}
			var snap dataset.SnapshotStore
			if store != nil {
				snap = store
			}
			t, err := dataset.NewLoader(loaderOptions(cfg, snap)).Load(cmd.Context())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("year-min") {
				q.YearMin = &yearMin
			}
			if cmd.Flags().Changed("year-max") {
				q.YearMax = &yearMax
			}
			c := q.Criteria(filters.BuildOptions(t, cfg.YearsBackDefault))
			res, err := insights.Build(t, c, section)
			if err != nil {
				return err
			}
			for _, n := range t.Notices {
				fmt.Fprintln(os.Stderr, "note:", n)
			}
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			printKPIs(res, t.Source)
			return nil
		},
	}
	bindDataFlags(cmd, v)
	f := cmd.Flags()
	f.StringVar(&section, "section", "overview", "section to compute")
	f.BoolVar(&asJSON, "json", false, "print the whole section as JSON")
	f.IntVar(&yearMin, "year-min", 0, "first release year")
	f.IntVar(&yearMax, "year-max", 0, "last release year")
	f.StringSliceVar(&q.Platforms, "platform", nil, "platform filter (repeatable)")
	f.StringSliceVar(&q.Genres, "genre", nil, "primary genre filter (repeatable)")
	f.Float64Var(&q.MinAcceptance, "min-acceptance", 0, "minimum acceptance percentage")
	f.Float64Var(&q.MinUserScore, "min-user-score", 0, "minimum user score")
	return cmd
}

func printKPIs(res *insights.Result, source string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()
	fmt.Fprintf(w, "Section\t%s\n", res.Title)
	fmt.Fprintf(w, "Source\t%s\n", source)
	fmt.Fprintf(w, "Games\t%d\n", res.KPIs.Games)
	fmt.Fprintf(w, "Free to play\t%.2f%%\n", res.KPIs.FreeToPlayPct)
	fmt.Fprintf(w, "Median price\t$%.2f\n", res.KPIs.MedianPrice)
	fmt.Fprintf(w, "Mean user score\t%.2f\n", res.KPIs.MeanUserScore)
	fmt.Fprintf(w, "Median owners\t%.0f\n", res.KPIs.MedianOwners)
	fmt.Fprintf(w, "Mean acceptance\t%.2f%%\n", res.KPIs.MeanAcceptance)
	for _, n := range res.Notices {
		fmt.Fprintf(w, "Notice\t%s\n", n)
	}
	for _, n := range res.Warnings {
		fmt.Fprintf(w, "Warning\t%s\n", n)
	}
}

func newSnapshotCmd() *cobra.Command {
	v := viper.New()
	var history int
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Load the dataset from files or DATA_URL and store it in the snapshot store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			if cfg.SnapshotDSN == "" {
				return errors.New("--snapshot-dsn (or SNAPSHOT_DSN) is required")
			}
			store, err := openStore(cfg.SnapshotDSN)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if history > 0 {
				return printHistory(ctx, store, history)
			}

			// Read from the files only, so the snapshot reflects the current source.
			t, err := dataset.NewLoader(loaderOptions(cfg, nil)).Load(ctx)
			if err != nil {
				return err
			}
			if t.Empty() {
				return errors.New("no dataset rows found; nothing to snapshot")
			}
			if err := store.SaveSnapshot(ctx, t.Source, t.Records(), t.Columns()); err != nil {
				return err
			}
			fmt.Printf("stored %d rows from %s\n", t.Len(), t.Source)
			return nil
		},
	}
	bindDataFlags(cmd, v)
	cmd.Flags().IntVar(&history, "history", 0, "list the last N snapshots instead of writing one")
	return cmd
}

func printHistory(ctx context.Context, store *database.SnapshotStore, limit int) error {
	metas, err := store.History(ctx, limit)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()
	fmt.Fprintln(w, "ID\tCREATED\tROWS\tSOURCE")
	for _, m := range metas {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", m.ID, m.CreatedAt.Format("2006-01-02 15:04:05"), m.Rows, m.Source)
	}
	return nil
}

func newSectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "List the dashboard sections",
		Run: func(cmd *cobra.Command, args []string) {
			for _, s := range insights.Sections {
				fmt.Printf("%-22s %s\n", s.ID, s.Title)
			}
		},
	}
}
