package biomemod

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fatih/color"

	core "github.com/louisbranch/biomemod/internal/biomemod"
	"github.com/louisbranch/biomemod/internal/biomemod/modifier"
	platformcmd "github.com/louisbranch/biomemod/internal/platform/cmd"
	apperrors "github.com/louisbranch/biomemod/internal/platform/errors"
	"github.com/louisbranch/biomemod/internal/platform/errors/i18n"
	"github.com/louisbranch/biomemod/internal/platform/timeouts"
	"github.com/louisbranch/biomemod/internal/script"
	"github.com/louisbranch/biomemod/internal/storage"
	"github.com/louisbranch/biomemod/internal/storage/sqlite"
	"github.com/louisbranch/biomemod/internal/world/worldfile"
)

const (
	serviceRun     = platformcmd.ServiceRun
	serviceHistory = platformcmd.ServiceHistory
)

var runWithTelemetry = platformcmd.RunWithTelemetry

// RunConfig holds run command configuration.
type RunConfig struct {
	World   string        `env:"WORLD"`
	Scripts []string      `env:"SCRIPTS" envSeparator:","`
	DBPath  string        `env:"DB_PATH"`
	Output  string        `env:"OUTPUT"`
	Verbose bool          `env:"VERBOSE"`
	Timeout time.Duration `env:"TIMEOUT"`
}

// ParseRunConfig loads env defaults and then flags. -script may repeat and
// appends to the scripts from the environment.
func ParseRunConfig(fs *flag.FlagSet, args []string) (RunConfig, error) {
	var cfg RunConfig
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return RunConfig{}, err
	}

	fs.StringVar(&cfg.World, "world", cfg.World, "path to the world file")
	fs.Func("script", "modifier pack file or directory of .lua packs (repeatable)", func(value string) error {
		cfg.Scripts = append(cfg.Scripts, value)
		return nil
	})
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "sqlite database recording pass reports")
	fs.StringVar(&cfg.Output, "out", cfg.Output, "write the modified world file here")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "list every applied modifier")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "pass timeout")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return RunConfig{}, err
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = timeouts.Pass
	}
	return cfg, nil
}

// Run loads the world and packs, applies one pass, then writes and records
// the result.
func Run(ctx context.Context, cfg RunConfig, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if strings.TrimSpace(cfg.World) == "" {
		return errors.New("world file path is required")
	}
	logger := log.New(errOut, "biomemod run: ", 0)
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	regs, err := worldfile.LoadFile(cfg.World)
	if err != nil {
		return err
	}
	modifiers := modifier.NewRegistry()
	paths, err := scriptPaths(cfg.Scripts)
	if err != nil {
		return err
	}
	for _, path := range paths {
		pack, err := script.LoadFile(path)
		if err != nil {
			return err
		}
		if err := pack.Register(modifiers); err != nil {
			return fmt.Errorf("register pack %s: %w", pack.ID, err)
		}
		logger.Printf("loaded pack %s with %d rules", pack.ID, len(pack.Rules))
	}

	report, err := core.Modify(ctx, regs, modifiers, core.NewPassState())
	if err != nil {
		// A failed pass is still recorded when it got far enough to have an id.
		if cfg.DBPath != "" && report.RunID != "" {
			if recordErr := recordPass(context.WithoutCancel(ctx), cfg.DBPath, failedPassRun(cfg.World, report, err)); recordErr != nil {
				logger.Printf("record failed pass %s: %v", report.RunID, recordErr)
			}
		}
		return err
	}

	if cfg.Output != "" {
		if err := worldfile.WriteFile(cfg.Output, regs); err != nil {
			return err
		}
	}
	if cfg.DBPath != "" {
		if err := recordPass(ctx, cfg.DBPath, passRunRecord(cfg.World, report)); err != nil {
			return err
		}
	}
	printReport(out, report, cfg.Verbose)
	return nil
}

// scriptPaths expands directories to their .lua files in name order.
func scriptPaths(inputs []string) ([]string, error) {
	var paths []string
	for _, input := range inputs {
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		info, err := os.Stat(input)
		if err != nil {
			return nil, fmt.Errorf("script path: %w", err)
		}
		if !info.IsDir() {
			paths = append(paths, input)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(input, "*.lua"))
		if err != nil {
			return nil, fmt.Errorf("script dir %s: %w", input, err)
		}
		slices.Sort(matches)
		paths = append(paths, matches...)
	}
	return paths, nil
}

func recordPass(ctx context.Context, dbPath string, run storage.PassRun) error {
	store, err := sqlite.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.RecordPassRun(ctx, run)
}

// failedPassRun records the partial report with the gRPC status of cause.
// Messages are stored in the base locale.
func failedPassRun(world string, report core.Report, cause error) storage.PassRun {
	run := passRunRecord(world, report)
	message := UserMessage(cause, i18n.BaseLocale)
	st := apperrors.StatusOf(cause, i18n.BaseLocale, message)
	run.Status = st.Code().String()
	run.ErrorReason = apperrors.ReasonOf(st)
	run.ErrorMessage = message
	return run
}

func passRunRecord(world string, report core.Report) storage.PassRun {
	run := storage.PassRun{
		ID:               report.RunID,
		World:            world,
		StartedAt:        report.StartedAt,
		Elapsed:          report.Elapsed,
		BiomesProcessed:  report.BiomesProcessed,
		BiomesChanged:    report.BiomesChanged,
		ModifiersApplied: report.ModifiersApplied,
	}
	for _, application := range report.Applications {
		run.Applications = append(run.Applications, storage.Application{
			Modifier: application.Modifier.String(),
			Phase:    application.Phase.String(),
			Biome:    application.Biome.String(),
		})
	}
	return run
}

func printReport(out io.Writer, report core.Report, verbose bool) {
	headline := color.New(color.FgGreen, color.Bold)
	if report.BiomesChanged == 0 {
		headline = color.New(color.FgYellow)
	}
	headline.Fprintf(out, "pass %s: %d of %d biomes changed\n", report.RunID, report.BiomesChanged, report.BiomesProcessed)
	fmt.Fprintf(out, "%d modifiers applied in %v\n", report.ModifiersApplied, report.Elapsed.Round(time.Microsecond))
	if !verbose {
		return
	}
	phase := color.New(color.FgCyan)
	for _, application := range report.Applications {
		fmt.Fprintf(out, "  %s %s -> %s\n", phase.Sprintf("%-12s", application.Phase), application.Modifier, application.Biome)
	}
}
