package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rgehrsitz/ccsgo/internal/compare"
	"github.com/rgehrsitz/ccsgo/internal/config"
	"github.com/rgehrsitz/ccsgo/internal/domain"
	"github.com/rgehrsitz/ccsgo/internal/scenario"
	"github.com/spf13/cobra"
)

// generated is one batch plus the assumptions it was computed under
type generated struct {
	scenario.Batch
	assumptions []string
}

// comparison ranks scenarios from the batch into a set ready for output
func (r generated) comparison(title, source string, scenarios []domain.Scenario, metric compare.Metric, order compare.Order) *compare.ComparisonSet {
	set := compare.NewComparisonSet(title, scenarios, metric, order)
	set.Dropped = r.Dropped
	set.Source = filepath.Base(source)
	set.Assumptions = r.assumptions
	return set
}

// batch generates scenarios for the household file at path
func (a *app) batch(cmd *cobra.Command, path string) (generated, error) {
	engine, err := a.engine(cmd)
	if err != nil {
		return generated{}, err
	}
	req, err := a.request(cmd, path, engine.Schedule)
	if err != nil {
		return generated{}, err
	}

	modeName := a.settings.Mode
	if cmd.Flags().Changed("mode") {
		modeName, _ = cmd.Flags().GetString("mode")
	}
	mode, err := scenario.ParseMode(modeName)
	if err != nil {
		return generated{}, err
	}

	gen := scenario.NewGenerator(engine, scenario.WithLogger(a.log.Named("generator")))
	batch, err := gen.Generate(cmd.Context(), mode, req)
	if err != nil {
		return generated{}, err
	}
	if batch.Dropped > 0 {
		a.log.Warnf("%d of %d %s combinations could not be calculated", batch.Dropped, batch.Dropped+len(batch.Scenarios), mode)
	}
	return generated{Batch: batch, assumptions: compare.ScheduleAssumptions(engine.Schedule, req.WithholdingRate)}, nil
}

func generateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [household-file]",
		Short: "Generate and rank work-day scenarios for a household",
		Long: `Generate every work-day combination (exhaustive) or a curated list (common)
for the household in the input file, then rank them by a metric.

Examples:
  ccsgo generate family.yaml
  ccsgo generate family.yaml --mode exhaustive --metric out_of_pocket --order asc
  ccsgo generate family.yaml --withholding 0 --format csv
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			metric, order, err := a.ranking(cmd)
			if err != nil {
				return err
			}
			batch, err := a.batch(cmd, args[0])
			if err != nil {
				return err
			}
			return write(cmd, batch.comparison(title(batch.Mode), args[0], batch.Scenarios, metric, order))
		},
	}
	cmd.Flags().String("mode", "common", "Generation mode (common, exhaustive)")
	addOutputFlags(cmd)
	addRankingFlags(cmd)
	return cmd
}

func compareCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [household-file]",
		Short: "Generate scenarios and keep only those matching the given limits",
		Long: `Generate scenarios, filter them by net income, out-of-pocket cost and
combined work days, then rank what remains.

Examples:
  ccsgo compare family.yaml --min-net 150000 --max-oop 8000
  ccsgo compare family.yaml --mode exhaustive --min-days 6 --max-days 8 --metric cost_percentage --order asc
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			metric, order, err := a.ranking(cmd)
			if err != nil {
				return err
			}
			criteria, err := criteriaFromFlags(cmd)
			if err != nil {
				return err
			}
			batch, err := a.batch(cmd, args[0])
			if err != nil {
				return err
			}
			kept := compare.Filter(batch.Scenarios, criteria)
			a.log.Debugf("%d of %d scenarios match", len(kept), len(batch.Scenarios))

			return write(cmd, batch.comparison(title(batch.Mode)+" (filtered)", args[0], kept, metric, order))
		},
	}
	cmd.Flags().String("mode", "common", "Generation mode (common, exhaustive)")
	cmd.Flags().String("min-net", "", "Minimum net income after child care")
	cmd.Flags().String("max-oop", "", "Maximum annual out-of-pocket cost")
	cmd.Flags().Int("min-days", 0, "Minimum combined work days")
	cmd.Flags().Int("max-days", 0, "Maximum combined work days")
	addOutputFlags(cmd)
	addRankingFlags(cmd)
	return cmd
}

func criteriaFromFlags(cmd *cobra.Command) (compare.Criteria, error) {
	var c compare.Criteria
	var err error

	minNet, _ := cmd.Flags().GetString("min-net")
	if c.MinNetIncome, err = config.ParseDecimal(minNet); err != nil {
		return c, err
	}
	maxOOP, _ := cmd.Flags().GetString("max-oop")
	if c.MaxOutOfPocket, err = config.ParseDecimal(maxOOP); err != nil {
		return c, err
	}
	if cmd.Flags().Changed("min-days") {
		v, _ := cmd.Flags().GetInt("min-days")
		c.MinWorkDays = &v
	}
	if cmd.Flags().Changed("max-days") {
		v, _ := cmd.Flags().GetInt("max-days")
		c.MaxWorkDays = &v
	}
	return c, nil
}

func bestCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "best [household-file]",
		Short: "Show the single best scenario for a metric",
		Long: `Generate scenarios and report the one with the highest value for the metric.
Use --direction min (or preferred) for metrics where lower is better, such as
out_of_pocket.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			metric, _, err := a.ranking(cmd)
			if err != nil {
				return err
			}
			batch, err := a.batch(cmd, args[0])
			if err != nil {
				return err
			}

			direction, _ := cmd.Flags().GetString("direction")
			var found *domain.Scenario
			switch compare.Direction(strings.ToLower(direction)) {
			case "":
				found = compare.FindBest(batch.Scenarios, metric)
			case compare.Maximize, compare.Minimize:
				found = compare.FindOptimal(batch.Scenarios, metric, compare.Direction(strings.ToLower(direction)))
			case "preferred":
				found = compare.FindOptimal(batch.Scenarios, metric, metric.Preferred())
			default:
				return fmt.Errorf("%w: unknown direction %q (want max, min or preferred)", domain.ErrInvalidInput, direction)
			}
			if found == nil {
				return fmt.Errorf("no scenario could be calculated for %s", args[0])
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Best by %s: %s (%s)\n\n", metric.Label(), found.Name, metric.Value(found).String())
			return writeScenario(cmd, found, filepath.Base(args[0]))
		},
	}
	cmd.Flags().String("mode", "exhaustive", "Generation mode (common, exhaustive)")
	cmd.Flags().StringP("metric", "m", "net_income", "Metric to optimize ("+metricNames()+")")
	cmd.Flags().String("direction", "", "max, min or preferred (default: highest value)")
	addOutputFlags(cmd)
	return cmd
}

func customCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "custom [household-file]",
		Short: "Price one chosen work-day combination",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.engine(cmd)
			if err != nil {
				return err
			}
			req, err := a.request(cmd, args[0], engine.Schedule)
			if err != nil {
				return err
			}
			p1, _ := cmd.Flags().GetInt("parent1-days")
			p2, _ := cmd.Flags().GetInt("parent2-days")

			gen := scenario.NewGenerator(engine, scenario.WithLogger(a.log.Named("generator")))
			built := gen.Custom(req, p1, p2)
			if built == nil {
				return fmt.Errorf("%w: combination %d + %d days could not be calculated", domain.ErrInvalidInput, p1, p2)
			}
			built.Custom = true
			return writeScenario(cmd, built, filepath.Base(args[0]))
		},
	}
	cmd.Flags().Int("parent1-days", scenario.MaxDaysPerWeek, "Days parent 1 works")
	cmd.Flags().Int("parent2-days", 0, "Days parent 2 works")
	addOutputFlags(cmd)
	return cmd
}

// writeScenario renders one scenario, adding the per-child breakdown for table output
func writeScenario(cmd *cobra.Command, s *domain.Scenario, source string) error {
	set := &compare.ComparisonSet{
		Title:           s.Name,
		Scenarios:       []domain.Scenario{*s},
		Recommendations: []compare.Recommendation{},
		Source:          source,
	}
	if err := write(cmd, set); err != nil {
		return err
	}
	if name, _ := cmd.Flags().GetString("format"); compare.GetFormatterByName(name).Name() != "table" {
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "CHILDREN")
	fmt.Fprintln(out, strings.Repeat("-", 96))
	for _, c := range s.Children {
		fmt.Fprintf(out, "%-14s age %-2d %-16s %s track, rate %s%%, cap $%s/h\n",
			c.ChildName, c.Age, c.CareType, c.RateTrack, c.SubsidyRate.String(), c.EffectiveHourlyRate.StringFixed(2))
		fmt.Fprintf(out, "  %s h/wk (%s subsidised): cost $%s, subsidy $%s, withheld $%s, out of pocket $%s\n",
			c.ActualHours.String(), c.HoursWithSubsidy.String(),
			c.WeeklyFullCost.StringFixed(2), c.WeeklyPaidSubsidy.StringFixed(2),
			c.WeeklyWithheld.StringFixed(2), c.WeeklyOutOfPocket.StringFixed(2))
	}
	return nil
}

func title(mode scenario.Mode) string {
	return fmt.Sprintf("Childcare scenarios (%s)", mode)
}
