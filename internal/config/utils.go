package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load starts from Default, applies the YAML file named by CONFIG_FILE if set,
// then lets environment variables override individual values.
func Load(logger *log.Logger) (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := LoadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.BotToken = getEnv(logger, "TOKEN", cfg.BotToken, parseString)
	cfg.FontFile = getEnv(logger, "FONT_FILE", cfg.FontFile, parseString)
	cfg.OutputDir = getEnv(logger, "OUTPUT_DIR", cfg.OutputDir, parseString)
	cfg.TempDir = getEnv(logger, "TEMP_DIR", cfg.TempDir, parseString)
	cfg.MaxFileSize = getEnv(logger, "MAX_FILE_SIZE", cfg.MaxFileSize, parseInt64)
	cfg.Workers = getEnv(logger, "WORKERS", cfg.Workers, parseInt)
	cfg.Overflow = getEnv(logger, "OVERFLOW", cfg.Overflow, parseOverflow)

	r := &cfg.Render
	r.Width = getEnv(logger, "CANVAS_WIDTH", r.Width, parseInt)
	r.Height = getEnv(logger, "CANVAS_HEIGHT", r.Height, parseInt)
	r.Margin = getEnv(logger, "MARGIN", r.Margin, parseInt)
	r.MinFontSize = getEnv(logger, "MIN_FONT_SIZE", r.MinFontSize, parseInt)
	r.MaxFontSize = getEnv(logger, "MAX_FONT_SIZE", r.MaxFontSize, parseInt)
	r.TextColor = getEnv(logger, "TEXT_COLOR", r.TextColor, parseColorString)
	r.BackgroundColor = getEnv(logger, "BACKGROUND_COLOR", r.BackgroundColor, parseColorString)

	return cfg, nil
}

// LoadFile overlays the YAML file at path onto cfg. Keys missing from the
// file keep their current value.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := ValidateOverflow(cfg.Overflow); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

func LoadJobs(path string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read jobs: %w", err)
	}

	var batch BatchFile
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("parse jobs %s: %w", path, err)
	}
	for i := range batch.Jobs {
		if batch.Jobs[i].Name == "" {
			batch.Jobs[i].Name = fmt.Sprintf("caption_%d", i+1)
		}
	}
	return batch.Jobs, nil
}

func getEnv[T any](logger *log.Logger, key string, defaultValue T, parser func(string) (T, error)) T {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}

	parsed, err := parser(val)
	if err != nil {
		logger.Printf("[WARN]: invalid value for %s (%s). Using default: %v\n", key, val, defaultValue)
		return defaultValue
	}

	return parsed
}

func parseString(val string) (string, error) {
	return val, nil
}

func parseInt(val string) (int, error) {
	return strconv.Atoi(val)
}

func parseInt64(val string) (int64, error) {
	return strconv.ParseInt(val, 10, 64)
}

func parseOverflow(val string) (string, error) {
	switch val {
	case OverflowFail, OverflowClip:
		return val, nil
	}
	return "", fmt.Errorf("unknown overflow policy %q", val)
}

// ValidateOverflow rejects anything but the fail and clip policies.
func ValidateOverflow(val string) error {
	_, err := parseOverflow(val)
	return err
}

func parseColorString(val string) (string, error) {
	if _, err := ParseColor(val); err != nil {
		return "", err
	}
	return val, nil
}
