package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"weatherdash/config"
	"weatherdash/dashboard"
	"weatherdash/presentation"
	"weatherdash/weathercode"
)

// Runtime is everything a command needs once the configuration is known.
type Runtime struct {
	Config    config.Config
	Logger    logr.Logger
	Dashboard *dashboard.Dashboard
	Locator   dashboard.Locator
	Shutdown  func(context.Context) error
}

// Factory builds the runtime from an optional configuration file path.
type Factory func(configPath string) (*Runtime, error)

func New(factory Factory) (*cobra.Command, error) {
	if factory == nil {
		return nil, fmt.Errorf("cli: nil runtime factory")
	}

	var (
		configPath string
		runtime    *Runtime
	)

	load := func() (*Runtime, error) {
		if runtime != nil {
			return runtime, nil
		}
		rt, err := factory(configPath)
		if err != nil {
			return nil, err
		}
		runtime = rt
		return runtime, nil
	}

	cmd := &cobra.Command{
		Use:          "weatherdash",
		Short:        "Weather dashboard: current conditions and a 5-day forecast for a city or position",
		SilenceUsage: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if runtime == nil || runtime.Shutdown == nil {
				return nil
			}
			return runtime.Shutdown(context.WithoutCancel(cmd.Context()))
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML file overriding the built-in configuration")

	cmd.AddCommand(
		newCityCommand(load),
		newCoordsCommand(load),
		newExplainCommand(),
		newTipCommand(),
		newCodesCommand(),
		newSuggestCommand(),
		newServeCommand(load),
	)

	return cmd, nil
}

func newCityCommand(load func() (*Runtime, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "city <name>",
		Args:  cobra.MinimumNArgs(1),
		Short: "Show the weather for a city",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := load()
			if err != nil {
				return err
			}

			snapshot, err := rt.Dashboard.SearchCity(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			printSnapshot(cmd, snapshot)
			return nil
		},
	}
}

func newCoordsCommand(load func() (*Runtime, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "coords <lat> <lon>",
		Args:  cobra.ExactArgs(2),
		Short: "Show the weather for a position",
		RunE: func(cmd *cobra.Command, args []string) error {
			latitude, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("latitude: %w", err)
			}
			longitude, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("longitude: %w", err)
			}

			rt, err := load()
			if err != nil {
				return err
			}

			snapshot, err := rt.Dashboard.SearchCoords(cmd.Context(), latitude, longitude)
			if err != nil {
				return err
			}

			printSnapshot(cmd, snapshot)
			return nil
		},
	}
}

func newExplainCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "explain <label> <value>",
		Args:    cobra.ExactArgs(2),
		Short:   "Explain a metric value",
		Example: `  weatherdash explain "Wind Speed" "12 km/h"`,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(presentation.Explain(args[0], args[1]))
		},
	}
}

func newTipCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tip <condition>",
		Args:  cobra.MinimumNArgs(1),
		Short: "Advice for a weather condition",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(presentation.Tip(strings.Join(args, " ")))
		},
	}
}

func newCodesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "codes",
		Args:  cobra.NoArgs,
		Short: "List the known weather codes",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("CODE\tDAY\tNIGHT\tDESCRIPTION\n")
			for _, code := range weathercode.Codes() {
				entry := weathercode.Lookup(code)
				cmd.Printf("%3d\t%s\t%s\t%s\n", code, entry.Day, entry.Night, entry.Description)
			}
		},
	}
}

func newSuggestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <query>",
		Args:  cobra.MinimumNArgs(1),
		Short: "Suggest city names",
		Run: func(cmd *cobra.Command, args []string) {
			for _, s := range presentation.Suggest(strings.Join(args, " ")) {
				cmd.Println(s.Label)
			}
		},
	}
}

func printSnapshot(cmd *cobra.Command, snapshot dashboard.Snapshot) {
	view := snapshot.View
	if view == nil {
		cmd.Printf("STATUS\t\t %s\n", snapshot.Status)
		return
	}

	panel := view.Current

	cmd.Printf("LOCATION\t %s %s\n", panel.City, panel.Country)
	cmd.Printf("DATE\t\t %s\n", panel.Date)
	cmd.Printf("CONDITION\t %s %s\n", panel.Glyph, panel.Description)
	cmd.Printf("TEMP\t\t %s (feels like %s)\n", panel.Temperature, panel.FeelsLike)
	cmd.Printf("MIN/MAX\t\t %s / %s\n", panel.MinTemp, panel.MaxTemp)
	cmd.Printf("WIND\t\t %s %s\n", panel.WindSpeed, panel.WindDirection)
	for _, metric := range panel.Metrics {
		if metric.Label == presentation.LabelWindSpeed {
			continue
		}
		cmd.Printf("%-15s %s\n", strings.ToUpper(metric.Label), metric.Value)
	}

	cmd.Printf("\nFORECAST\n")
	for _, card := range view.Forecast {
		cmd.Printf("%3s %-6s  %s %-24s %4s %4s\n", card.Weekday, card.MonthDay, card.Glyph, card.Description, card.High, card.Low)
	}

	cmd.Printf("\nTHEME\t\t %s\n", view.Ambient.Theme)
	cmd.Printf("PARTICLES\t %s x%d\n", view.Ambient.ParticleKind, view.Ambient.ParticleCount)
}
