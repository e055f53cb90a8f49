package biomemod

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"google.golang.org/grpc/codes"

	platformcmd "github.com/louisbranch/biomemod/internal/platform/cmd"
	apperrors "github.com/louisbranch/biomemod/internal/platform/errors"
	"github.com/louisbranch/biomemod/internal/platform/pagination"
	"github.com/louisbranch/biomemod/internal/storage"
	"github.com/louisbranch/biomemod/internal/storage/sqlite"
)

var historyPageSize = pagination.PageSizeConfig{Default: 20, Max: 200}

// HistoryConfig holds history command configuration.
type HistoryConfig struct {
	DBPath    string `env:"DB_PATH"`
	PageSize  int    `env:"HISTORY_PAGE_SIZE"`
	PageToken string
	RunID     string
}

// ParseHistoryConfig loads env defaults and then flags.
func ParseHistoryConfig(fs *flag.FlagSet, args []string) (HistoryConfig, error) {
	var cfg HistoryConfig
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return HistoryConfig{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "sqlite database recording pass reports")
	fs.IntVar(&cfg.PageSize, "n", cfg.PageSize, "runs per page")
	fs.StringVar(&cfg.PageToken, "page", "", "page token from a previous listing")
	fs.StringVar(&cfg.RunID, "run", "", "show one run with its applications")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return HistoryConfig{}, err
	}
	cfg.PageSize = pagination.ClampPageSize(cfg.PageSize, historyPageSize)
	return cfg, nil
}

// History lists recorded passes, or shows one when RunID is set.
func History(ctx context.Context, cfg HistoryConfig, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return errors.New("database path is required")
	}
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.RunID != "" {
		run, err := store.GetPassRun(ctx, cfg.RunID)
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.WrapWithMetadata(apperrors.CodeNotFound, "run "+cfg.RunID,
				map[string]string{"Run": cfg.RunID}, err)
		}
		if err != nil {
			return fmt.Errorf("run %s: %w", cfg.RunID, err)
		}
		printRun(out, run)
		return nil
	}

	page, err := store.ListPassRuns(ctx, cfg.PageSize, cfg.PageToken)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSTARTED\tSTATUS\tCHANGED\tPROCESSED\tAPPLIED\tWORLD")
	for _, run := range page.Runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			run.ID, run.StartedAt.Format(time.RFC3339), run.Status, run.BiomesChanged, run.BiomesProcessed, run.ModifiersApplied, run.World)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if page.NextPageToken != "" {
		fmt.Fprintf(out, "next page: -page %s\n", page.NextPageToken)
	}
	return nil
}

func printRun(out io.Writer, run storage.PassRun) {
	color.New(color.Bold).Fprintf(out, "run %s\n", run.ID)
	fmt.Fprintf(out, "world: %s\nstarted: %s\nelapsed: %v\n", run.World, run.StartedAt.Format(time.RFC3339), run.Elapsed)
	if run.Status != "" && run.Status != codes.OK.String() {
		color.New(color.FgRed).Fprintf(out, "status: %s %s\n", run.Status, run.ErrorReason)
		fmt.Fprintf(out, "error: %s\n", run.ErrorMessage)
	}
	fmt.Fprintf(out, "%d of %d biomes changed, %d modifiers applied\n", run.BiomesChanged, run.BiomesProcessed, run.ModifiersApplied)
	for _, application := range run.Applications {
		fmt.Fprintf(out, "  %-12s %s -> %s\n", application.Phase, application.Modifier, application.Biome)
	}
}
