package report

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries the run parameters. Paths are fixed per run; there are no
// per-image knobs.
type Config struct {
	// InputPDF is the shuffled screenshot PDF to read.
	InputPDF string `yaml:"input_pdf"`
	// WorkDir holds the intermediate page images for the duration of the run.
	WorkDir string `yaml:"work_dir"`
	// OutputPDF is where the sorted report is written.
	OutputPDF string `yaml:"output_pdf"`
	// Languages are OCR language hints.
	Languages []string `yaml:"languages"`
	// DPI is the rasterization resolution.
	DPI int `yaml:"dpi"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the built-in run parameters.
func DefaultConfig() Config {
	return Config{
		InputPDF:  "Shuffled_images.pdf",
		WorkDir:   "images",
		OutputPDF: "Result.pdf",
		Languages: []string{"eng"},
		DPI:       150,
		LogLevel:  "info",
	}
}

// LoadConfig reads a YAML config file; absent fields keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.InputPDF == "" {
		c.InputPDF = def.InputPDF
	}
	if c.WorkDir == "" {
		c.WorkDir = def.WorkDir
	}
	if c.OutputPDF == "" {
		c.OutputPDF = def.OutputPDF
	}
	if len(c.Languages) == 0 {
		c.Languages = def.Languages
	}
	if c.DPI <= 0 {
		c.DPI = def.DPI
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	return c
}
