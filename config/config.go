package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration for the application
type Config struct {
	// Simulation configuration
	Simulation SimulationConfig `json:"simulation"`

	// Data configuration
	Data DataConfig `json:"data"`

	// Report configuration
	Report ReportConfig `json:"report"`

	// Server configuration
	Server ServerConfig `json:"server"`
}

// SimulationConfig holds simulation specific configuration
type SimulationConfig struct {
	// Events each character lives through
	EventsPerCharacter int `json:"events_per_character" env:"SIM_EVENTS_PER_CHARACTER"`

	// Probability of death on a critical failure (0-1)
	DeathProbability float64 `json:"death_probability" env:"SIM_DEATH_PROBABILITY"`

	// Random seed; 0 seeds from the clock
	Seed int64 `json:"seed" env:"SIM_SEED"`

	// Global weights used when no personalized calculator is available
	EquipmentWeight      float64 `json:"equipment_weight"`
	AttributeWeight      float64 `json:"attribute_weight"`
	CharacteristicWeight float64 `json:"characteristic_weight"`
}

// DataConfig holds data file specific configuration
type DataConfig struct {
	// Directory with the event and table JSON files
	Dir string `json:"dir" env:"SIM_DATA_DIR"`
}

// ReportConfig holds report specific configuration
type ReportConfig struct {
	// Directory where workbooks and summaries are written
	OutputDir string `json:"output_dir" env:"SIM_OUTPUT_DIR"`

	// Base name of the exported files
	Basename string `json:"basename" env:"SIM_OUTPUT_BASENAME"`
}

// ServerConfig holds server specific configuration
type ServerConfig struct {
	// Server port
	Port string `json:"port" env:"SIM_PORT"`

	// Log level (debug, info, warn, error)
	LogLevel string `json:"log_level" env:"SIM_LOG_LEVEL"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Simulation: SimulationConfig{
			EventsPerCharacter:   5,
			DeathProbability:     0.1,
			Seed:                 0,
			EquipmentWeight:      0.45,
			AttributeWeight:      0.45,
			CharacteristicWeight: 0.10,
		},
		Data: DataConfig{
			Dir: "./data",
		},
		Report: ReportConfig{
			OutputDir: "./salidas",
			Basename:  "simulacion",
		},
		Server: ServerConfig{
			Port:     "8080",
			LogLevel: "info",
		},
	}
}

// LoadConfig loads configuration from a file, then applies environment
// overrides
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return config, err
	}

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// Create default config file
		if err := SaveConfig(config, path); err != nil {
			return config, err
		}
	} else {
		file, err := os.Open(path)
		if err != nil {
			return config, err
		}
		defer file.Close()

		decoder := json.NewDecoder(file)
		if err := decoder.Decode(&config); err != nil {
			return config, err
		}
	}

	// Environment variables win over the file
	if err := env.Parse(&config); err != nil {
		return config, err
	}

	return config, nil
}

// SaveConfig saves configuration to a file
func SaveConfig(config Config, path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Create or truncate file
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	// Write config to file
	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(config); err != nil {
		return err
	}

	return nil
}
