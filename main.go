package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TFMV/artistgraph/graph"
	"github.com/TFMV/artistgraph/ingest"
	"github.com/TFMV/artistgraph/models"
	"github.com/TFMV/artistgraph/physics"
	"github.com/TFMV/artistgraph/render"
	"github.com/TFMV/artistgraph/server"
)

// Configuration represents all the settings for the application
type Configuration struct {
	Mode        string
	DataFile    string
	OutputFile  string
	PhysicsFile string
	Port        int
	Width       float64
	Height      float64
	Seed        int64
	Iterations  int
	DebugMode   bool
	JSONLogs    bool
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	config := parseConfig()
	logger := newLogger(config)
	slog.SetDefault(logger)

	// Handle OS signals for graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		logger.Info("received shutdown signal")
		cancel()
	}()

	physicsCfg := physics.DefaultConfig()
	if config.PhysicsFile != "" {
		var err error
		physicsCfg, err = physics.LoadConfig(config.PhysicsFile)
		if err != nil {
			logger.Error("failed to load physics config", "error", err)
			os.Exit(1)
		}
	}

	dataGraph, err := processInputFile(config)
	if err != nil {
		logger.Error("failed to process input file", "error", err)
		os.Exit(1)
	}
	logger.Info("graph loaded",
		"artists", len(dataGraph.Nodes),
		"relations", len(dataGraph.Edges))

	// Initial layout before any interaction or rendering.
	physics.Settle(dataGraph.Graph, config.Seed, config.Iterations)

	if config.Mode == "serve" {
		if err := serve(ctx, dataGraph, physicsCfg, config, logger); err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := renderOutput(dataGraph, config); err != nil {
		logger.Error("rendering failed", "error", err)
		os.Exit(1)
	}
	logger.Info("processing complete", "output", config.OutputFile)
}

// parseConfig parses command-line flags and returns a Configuration object
func parseConfig() *Configuration {
	config := &Configuration{}

	flag.StringVar(&config.Mode, "mode", "serve", "Mode: serve, svg, json")
	flag.StringVar(&config.DataFile, "data", "", "Path to artist graph JSON file")
	flag.StringVar(&config.OutputFile, "output", "", "Path to output file (defaults to 'output.[format]')")
	flag.StringVar(&config.PhysicsFile, "config", "", "Optional TOML file overriding physics tuning")
	flag.IntVar(&config.Port, "port", 8080, "Port for serve mode")
	flag.Float64Var(&config.Width, "width", 1200.0, "Width of the visualization")
	flag.Float64Var(&config.Height, "height", 900.0, "Height of the visualization")
	flag.Int64Var(&config.Seed, "seed", 1, "Seed for initial layout scatter")
	flag.IntVar(&config.Iterations, "iterations", 500, "Maximum iterations for the initial layout")
	flag.BoolVar(&config.DebugMode, "debug", false, "Enable debug logging")
	flag.BoolVar(&config.JSONLogs, "log-json", false, "Emit JSON logs")

	flag.Parse()

	if config.DataFile == "" {
		fmt.Println("Please provide a data file using -data flag")
		flag.Usage()
		os.Exit(1)
	}

	if config.OutputFile == "" && config.Mode != "serve" {
		config.OutputFile = "output." + config.Mode
	}

	return config
}

// newLogger builds the application logger from the configuration.
func newLogger(config *Configuration) *slog.Logger {
	level := slog.LevelInfo
	if config.DebugMode {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if config.JSONLogs {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// processInputFile reads and ingests the artist graph file.
func processInputFile(config *Configuration) (*models.DataGraph, error) {
	data, err := os.ReadFile(config.DataFile)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	processor := ingest.NewJSONProcessor(nil)
	dataGraph, err := processor.ProcessData(data)
	if err != nil {
		return nil, err
	}

	dataGraph.Width = config.Width
	dataGraph.Height = config.Height
	return dataGraph, nil
}

// serve wires the runtime store, drag controller and HTTP server together.
func serve(ctx context.Context, dataGraph *models.DataGraph, cfg physics.Config, config *Configuration, logger *slog.Logger) error {
	store := graph.FromModel(dataGraph.Graph)
	frames := physics.NewDisplayScheduler(cfg.FrameInterval())
	ctrl := physics.NewDragController(store, store, frames, cfg, logger)

	srv := server.New(dataGraph, store, ctrl, logger)
	addr := fmt.Sprintf(":%d", config.Port)

	start := time.Now()
	err := srv.Start(ctx, addr)
	logger.Info("server stopped", "uptime", time.Since(start).Round(time.Second))
	return err
}

// renderOutput writes a static snapshot of the positioned graph.
func renderOutput(dataGraph *models.DataGraph, config *Configuration) error {
	output, err := render.Generate(dataGraph, config.Mode)
	if err != nil {
		return err
	}
	if err := os.WriteFile(config.OutputFile, output, 0644); err != nil {
		return fmt.Errorf("error writing output: %w", err)
	}
	return nil
}
