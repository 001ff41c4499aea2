package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/rgehrsitz/ccsgo/internal/calculation"
	"github.com/rgehrsitz/ccsgo/internal/compare"
	"github.com/rgehrsitz/ccsgo/internal/config"
	"github.com/rgehrsitz/ccsgo/internal/domain"
	"github.com/rgehrsitz/ccsgo/internal/scenario"
	"github.com/rgehrsitz/ccsgo/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries what every subcommand needs after the root pre-run has loaded settings
type app struct {
	settings *config.Settings
	log      *logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "ccsgo",
		Short: "Child Care Subsidy estimator",
		Long: `Estimate the Australian Child Care Subsidy for a household and compare how
different work-day arrangements change subsidy, out-of-pocket cost and net income.

Settings are read from CCS_CONFIG (a YAML file) and CCS_* environment variables;
command flags take precedence.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (default from settings)")
	root.PersistentFlags().Bool("debug", false, "Log per-child pricing details")

	root.AddCommand(
		generateCmd(a),
		customCmd(a),
		compareCmd(a),
		bestCmd(a),
		validateCmd(a),
		ratesCmd(a),
		serveCmd(a),
		versionCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	settings, err := config.LoadSettings(cmd.Context())
	if err != nil {
		return err
	}
	level := settings.LogLevel
	if flag, _ := cmd.Flags().GetString("log-level"); flag != "" {
		level = flag
	}
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		level = "debug"
	}
	log, err := logger.New(cmd.ErrOrStderr(), level, logger.FormatText)
	if err != nil {
		return err
	}
	a.settings = settings
	a.log = log
	return nil
}

// engine loads the rate schedule named by the flag, falling back to settings
func (a *app) engine(cmd *cobra.Command) (*calculation.CalculationEngine, error) {
	path, _ := cmd.Flags().GetString("rates")
	if path == "" {
		path = a.settings.RatesFile
	}
	schedule, err := config.LoadRateSchedule(path)
	if err != nil {
		return nil, err
	}
	if path != "" {
		a.log.Debugf("loaded rate schedule %s (%s)", path, schedule.Metadata.FinancialYear)
	}
	engine := calculation.NewCalculationEngineWithSchedule(schedule)
	engine.SetLogger(a.log.Named("calculation"))
	engine.Debug = a.log.Enabled(slog.LevelDebug)
	return engine, nil
}

// request loads a household file and applies any withholding override
func (a *app) request(cmd *cobra.Command, path string, schedule *domain.RateSchedule) (scenario.Request, error) {
	household, err := config.NewInputParserWithSchedule(schedule).LoadFromFile(path)
	if err != nil {
		return scenario.Request{}, err
	}
	req := scenario.RequestFromHousehold(household)

	raw := a.settings.Withholding
	if cmd.Flags().Changed("withholding") {
		raw, _ = cmd.Flags().GetString("withholding")
	} else if req.WithholdingRate != nil {
		return req, nil
	}
	override, err := config.ParseDecimal(strings.TrimSpace(raw))
	if err != nil {
		return req, err
	}
	if override != nil {
		w := schedule.Withholding
		if override.LessThan(w.Min) || override.GreaterThan(w.Max) {
			return req, fmt.Errorf("%w: withholding must be between %s and %s, got %s",
				config.ErrInvalidConfig, w.Min.String(), w.Max.String(), override.String())
		}
		req.WithholdingRate = override
	}
	return req, nil
}

// ranking resolves --metric and --order, defaulting the metric from settings
func (a *app) ranking(cmd *cobra.Command) (compare.Metric, compare.Order, error) {
	name := a.settings.Metric
	if cmd.Flags().Changed("metric") {
		name, _ = cmd.Flags().GetString("metric")
	}
	metric, err := compare.ParseMetric(name)
	if err != nil {
		return "", "", err
	}
	orderName, _ := cmd.Flags().GetString("order")
	order, err := compare.ParseOrder(orderName)
	if err != nil {
		return "", "", err
	}
	return metric, order, nil
}

// write renders a comparison set with the formatter named by --format
func write(cmd *cobra.Command, set *compare.ComparisonSet) error {
	name, _ := cmd.Flags().GetString("format")
	f := compare.GetFormatterByName(name)
	if f == nil {
		return fmt.Errorf("%w: unknown format %q (available: %s)",
			domain.ErrInvalidInput, name, strings.Join(compare.AvailableFormatterNames(), ", "))
	}
	data, err := f.Format(set)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func addRatesFlag(cmd *cobra.Command) {
	cmd.Flags().String("rates", "", "Rate schedule YAML overlay (default from settings, else built-in figures)")
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "table", "Output format ("+strings.Join(compare.AvailableFormatterNames(), ", ")+")")
	cmd.Flags().String("withholding", "", "Withholding percentage override (0-100)")
	addRatesFlag(cmd)
}

func addRankingFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("metric", "m", "net_income", "Ranking metric ("+metricNames()+")")
	cmd.Flags().StringP("order", "o", "desc", "Sort order (asc, desc)")
}

func metricNames() string {
	names := make([]string, 0, len(compare.Metrics()))
	for _, m := range compare.Metrics() {
		names = append(names, string(m))
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ccsgo %s (commit %s, built %s)\n", version, commit, date)
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				if info := buildInfo(); info != "" {
					fmt.Fprintln(cmd.OutOrStdout(), info)
				}
			}
		},
	}
	cmd.Flags().BoolP("verbose", "v", false, "Include module build information")
	return cmd
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func run(args []string, stdout, stderr io.Writer) error {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.Execute()
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}
