package main

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/ccsgo/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func validateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [household-file]",
		Short: "Validate a household file against the rate schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.engine(cmd)
			if err != nil {
				return err
			}
			household, err := config.NewInputParserWithSchedule(engine.Schedule).LoadFromFile(args[0])
			if err != nil {
				return err
			}

			earners := "two incomes"
			if household.Family.SingleEarner() {
				earners = "single income"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Household file %s is valid (%s, %d children)\n", args[0], earners, len(household.Children))
			return nil
		},
	}
	addRatesFlag(cmd)
	return cmd
}

func ratesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Print the effective rate schedule",
		Long: `Print the rate schedule after the optional YAML overlay has been applied.
The output can be saved and edited as a starting point for --rates.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.engine(cmd)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			var data []byte
			switch strings.ToLower(format) {
			case "yaml", "yml":
				data, err = yaml.Marshal(engine.Schedule)
			case "json":
				data, err = json.MarshalIndent(engine.Schedule, "", "  ")
				data = append(data, '\n')
			default:
				return fmt.Errorf("%w: unknown format %q (want yaml or json)", config.ErrInvalidConfig, format)
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringP("format", "f", "yaml", "Output format (yaml, json)")
	addRatesFlag(cmd)
	return cmd
}
