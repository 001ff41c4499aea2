package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/ccsgo/internal/calculation"
	"github.com/rgehrsitz/ccsgo/internal/compare"
	"github.com/rgehrsitz/ccsgo/internal/config"
	"github.com/rgehrsitz/ccsgo/internal/scenario"
	"github.com/rgehrsitz/ccsgo/internal/tui"
	"github.com/rgehrsitz/ccsgo/pkg/logger"
)

// debugLogFile receives log output when the log level is debug; the terminal belongs to the UI
const debugLogFile = "ccsgo-tui.log"

func main() {
	if len(os.Args) != 2 {
		fmt.Println("Usage: ccsgo-tui <household-file>")
		os.Exit(1)
	}
	if err := run(os.Args[1]); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(householdPath string) error {
	settings, err := config.LoadSettings(context.Background())
	if err != nil {
		return err
	}

	schedule, err := config.LoadRateSchedule(settings.RatesFile)
	if err != nil {
		return err
	}
	household, err := config.NewInputParserWithSchedule(schedule).LoadFromFile(householdPath)
	if err != nil {
		return err
	}
	req := scenario.RequestFromHousehold(household)
	if req.WithholdingRate == nil {
		if req.WithholdingRate, err = settings.WithholdingRate(); err != nil {
			return err
		}
	}

	engine := calculation.NewCalculationEngineWithSchedule(schedule)
	if settings.LogLevel == "debug" {
		f, err := tea.LogToFile(debugLogFile, "")
		if err != nil {
			return err
		}
		defer f.Close()
		log, err := logger.New(f, settings.LogLevel, logger.FormatText)
		if err != nil {
			return err
		}
		engine.SetLogger(log)
		engine.Debug = true
	}

	mode, err := scenario.ParseMode(settings.Mode)
	if err != nil {
		return err
	}
	metric, err := compare.ParseMetric(settings.Metric)
	if err != nil {
		return err
	}

	model := tui.NewModel(
		filepath.Base(householdPath),
		scenario.NewGenerator(engine),
		req,
		tui.WithMode(mode),
		tui.WithMetric(metric),
	)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
