package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/user/adventure-sim/config"
	"github.com/user/adventure-sim/internal/gen"
	"github.com/user/adventure-sim/internal/report"
	"github.com/user/adventure-sim/internal/sim"
	"github.com/user/adventure-sim/internal/types"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "./config/config.json", "Path to configuration file")
	counts := flag.String("counts", "3,3,3,3,3,3,3,3", "Characters to generate per race, comma separated")
	rosterPath := flag.String("roster", "", "Roster file inside the output directory to load instead of generating")
	serve := flag.Bool("serve", false, "Keep a results HTTP server running after the simulation")
	flag.Parse()

	// Set up logger
	logger := setupLogger()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	if err := sim.Validate(cfg); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	// Initialize simulation manager
	manager := sim.NewSimulationManager(cfg)
	manager.SetLogger(logger)

	dataLoader := sim.NewDataLoader(cfg.Data.Dir)
	if err := manager.LoadEvents(dataLoader); err != nil {
		logger.Fatal("Failed to load events", zap.Error(err))
	}

	// The class catalog feeds both the generator and the personalized
	// probability calculator.
	classes, err := dataLoader.LoadClassCatalog()
	if err != nil {
		logger.Warn("Class catalog unavailable, falling back to global weights", zap.Error(err))
	} else {
		manager.SetCalculator(sim.NewProbabilityCalculator(classes))
	}

	storage, err := sim.NewStorage(cfg.Report.OutputDir)
	if err != nil {
		logger.Fatal("Failed to initialize storage", zap.Error(err))
	}

	// Build the roster: either replay a saved one or generate fresh
	roster, err := buildRoster(cfg, dataLoader, storage, classes, *rosterPath, *counts)
	if err != nil {
		logger.Fatal("Failed to build roster", zap.Error(err))
	}
	manager.LoadCharacters(roster)

	// Run the simulation
	if err := manager.Run(); err != nil {
		logger.Fatal("Simulation failed", zap.Error(err))
	}
	stats := manager.Summarize()

	// Persist raw results
	if err := storage.SaveRoster("personajes_final.json", manager.Roster()); err != nil {
		logger.Error("Failed to save final roster", zap.Error(err))
	}
	if err := storage.SaveEventLog("eventos.json", manager.EventLog()); err != nil {
		logger.Error("Failed to save event log", zap.Error(err))
	}
	if err := storage.SaveStats("estadisticas.json", stats); err != nil {
		logger.Error("Failed to save stats", zap.Error(err))
	}

	// Export the workbook and summary
	exporter, err := report.NewExporter(cfg.Report.OutputDir, cfg.Report.Basename)
	if err != nil {
		logger.Fatal("Failed to initialize exporter", zap.Error(err))
	}
	exporter.SetLogger(logger)

	workbookPath, err := exporter.Export(manager.Initial(), manager.Roster(), manager.EventLog(), stats)
	if err != nil {
		logger.Error("Failed to export workbook", zap.Error(err))
	} else {
		logger.Info("Workbook written", zap.String("path", workbookPath))
	}
	if summaryPath, err := exporter.SaveSummary(manager.Roster(), stats); err != nil {
		logger.Error("Failed to write summary", zap.Error(err))
	} else {
		logger.Info("Summary written", zap.String("path", summaryPath))
	}

	fmt.Print(report.Summary(manager.Roster(), stats))

	if !*serve {
		return
	}

	// Start HTTP server exposing the run results
	server := setupHTTPServer(cfg, manager, stats, logger)
	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server stopped", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	waitForShutdown(logger)
}

func setupLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}

func buildRoster(cfg config.Config, dataLoader *sim.DataLoader, storage *sim.Storage, classes *types.ClassCatalog, rosterPath, counts string) ([]*types.Character, error) {
	if rosterPath != "" {
		return storage.LoadRoster(rosterPath)
	}
	if classes == nil {
		return nil, fmt.Errorf("cannot generate characters without the class catalog")
	}

	dict, err := dataLoader.LoadDictionary()
	if err != nil {
		return nil, fmt.Errorf("failed to load dictionary: %w", err)
	}

	raceCounts, err := parseCounts(counts)
	if err != nil {
		return nil, err
	}

	generator := gen.NewGenerator(dict, classes, sim.NewDiceRoller(cfg.Simulation.Seed))
	return generator.Generate(raceCounts)
}

func parseCounts(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	counts := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid count %q: %w", part, err)
		}
		counts = append(counts, n)
	}
	return counts, nil
}

func setupHTTPServer(cfg config.Config, manager *sim.SimulationManager, stats sim.Stats, logger *zap.Logger) *http.Server {
	// Create router
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("Failed to encode response", zap.Error(err))
		}
	}

	// Set up routes
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	router.Get("/roster", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, manager.Roster())
	})

	router.Get("/roster/living", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, manager.Living())
	})

	router.Get("/roster/dead", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, manager.Dead())
	})

	router.Get("/events", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, manager.EventLog())
	})

	router.Get("/stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, stats)
	})

	// Create HTTP server
	return &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}
}

func waitForShutdown(logger *zap.Logger) {
	// Set up channel for shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Wait for shutdown signal
	sig := <-sigChan
	logger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	// Perform cleanup
	logger.Info("Shutting down")
}
