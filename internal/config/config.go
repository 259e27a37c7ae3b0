package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// DisplayConfig controls how results are rendered for humans
type DisplayConfig struct {
	Precision int    `yaml:"precision"` // decimal places in display strings
	Category  string `yaml:"category"`  // label attached to every catalog function
}

// PricingConfig holds conventions used when the caller does not pass total volatility
type PricingConfig struct {
	DayCountBasis float64 `yaml:"day_count_basis"` // days per year for expiry -> year fraction
}

type Config struct {
	// Server settings
	Port           string
	MetricsEnabled bool

	Logging LoggingConfig `yaml:"logging"`
	Display DisplayConfig `yaml:"display"`
	Pricing PricingConfig `yaml:"pricing"`
}

type YAMLConfig struct {
	Server struct {
		Port           string `yaml:"port"`
		MetricsEnabled *bool  `yaml:"metrics_enabled"`
	} `yaml:"server"`

	Logging LoggingConfig `yaml:"logging"`
	Display struct {
		Precision *int   `yaml:"precision"`
		Category  string `yaml:"category"`
	} `yaml:"display"`
	Pricing PricingConfig `yaml:"pricing"`
}

func Load() *Config {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
		Logging: LoggingConfig{
			LogLevel: getEnv("LOG_LEVEL", "info"),
			LogFile:  getEnv("LOG_FILE", "bsm.log"),
		},
		Display: DisplayConfig{
			Precision: getEnvInt("DISPLAY_PRECISION", 6),
			Category:  getEnv("FUNCTION_CATEGORY", "FRE6233"),
		},
		Pricing: PricingConfig{
			DayCountBasis: getEnvFloat("DAY_COUNT_BASIS", 365),
		},
	}

	// YAML values win over defaults but not over explicitly set environment variables
	if yamlCfg := loadYAMLConfig(getEnv("BSM_CONFIG", "config.yaml")); yamlCfg != nil {
		if yamlCfg.Server.Port != "" && os.Getenv("PORT") == "" {
			cfg.Port = yamlCfg.Server.Port
		}
		if yamlCfg.Server.MetricsEnabled != nil && os.Getenv("METRICS_ENABLED") == "" {
			cfg.MetricsEnabled = *yamlCfg.Server.MetricsEnabled
		}

		if yamlCfg.Logging.LogLevel != "" && os.Getenv("LOG_LEVEL") == "" {
			cfg.Logging.LogLevel = yamlCfg.Logging.LogLevel
		}
		if yamlCfg.Logging.LogFile != "" && os.Getenv("LOG_FILE") == "" {
			cfg.Logging.LogFile = yamlCfg.Logging.LogFile
		}

		if yamlCfg.Display.Precision != nil && os.Getenv("DISPLAY_PRECISION") == "" {
			cfg.Display.Precision = *yamlCfg.Display.Precision
		}
		if yamlCfg.Display.Category != "" && os.Getenv("FUNCTION_CATEGORY") == "" {
			cfg.Display.Category = yamlCfg.Display.Category
		}

		if yamlCfg.Pricing.DayCountBasis > 0 && os.Getenv("DAY_COUNT_BASIS") == "" {
			cfg.Pricing.DayCountBasis = yamlCfg.Pricing.DayCountBasis
		}
	}

	// Guard against nonsense that would break formatting or year fractions
	if cfg.Display.Precision < 0 {
		cfg.Display.Precision = 6
	}
	if cfg.Pricing.DayCountBasis <= 0 {
		cfg.Pricing.DayCountBasis = 365
	}

	return cfg
}

func loadYAMLConfig(path string) *YAMLConfig {
	data, err := os.ReadFile(path)
	if err != nil {
		// Could not read config file - silently return nil
		return nil
	}

	var yamlCfg YAMLConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		// Could not parse config file - silently return nil
		return nil
	}

	return &yamlCfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
