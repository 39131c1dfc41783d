package main

import (
	"context"
	_ "embed"
	"log"
	"os"

	"github.com/joho/godotenv"

	"weatherdash/ambient"
	"weatherdash/apis/geocoding"
	"weatherdash/apis/openmeteo"
	"weatherdash/cli"
	"weatherdash/config"
	"weatherdash/dashboard"
	"weatherdash/manager"
	"weatherdash/telemetry"
)

//go:embed config.yaml
var configRaw []byte

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %s\n", err)
	}

	cmd, err := cli.New(newRuntime)
	if err != nil {
		log.Fatalf("new cli: %s\n", err)
	}

	if err = cmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRuntime(configPath string) (*cli.Runtime, error) {
	cfg, err := config.Load(configRaw, configPath)
	if err != nil {
		return nil, err
	}

	logger := telemetry.NewLogger(cfg.Telemetry.Verbosity)

	shutdown, err := telemetry.SetupTracing(cfg.Telemetry, logger)
	if err != nil {
		return nil, err
	}

	pipeline := manager.New(
		geocoding.New(cfg.Geocoding, logger),
		openmeteo.New(cfg.Forecast, logger),
		logger,
	)

	locator := dashboard.Unavailable
	if lat, lon, ok := cfg.Dashboard.DeviceLocation(); ok {
		locator = dashboard.Fixed(lat, lon)
	}

	return &cli.Runtime{
		Config:    cfg,
		Logger:    logger,
		Dashboard: dashboard.New(pipeline, ambient.NewField(nil), cfg.Dashboard.DefaultCity, logger),
		Locator:   locator,
		Shutdown:  shutdown,
	}, nil
}
