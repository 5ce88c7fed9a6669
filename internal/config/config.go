package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	ReportPath        string `mapstructure:"report_path" yaml:"report_path"`
	VisualizationsDir string `mapstructure:"visualizations_dir" yaml:"visualizations_dir"`
	HeadRows          int    `mapstructure:"head_rows" yaml:"head_rows"`

	// Chart rendering
	HistogramBins int     `mapstructure:"histogram_bins" yaml:"histogram_bins"`
	ChartWidthIn  float64 `mapstructure:"chart_width_in" yaml:"chart_width_in"`
	ChartHeightIn float64 `mapstructure:"chart_height_in" yaml:"chart_height_in"`
}

// Keys lists the settable configuration keys in display order.
var Keys = []string{"report_path", "visualizations_dir", "head_rows", "histogram_bins", "chart_width_in", "chart_height_in"}

// Defaults returns the built-in configuration.
func Defaults() *Global {
	return &Global{
		ReportPath:        "analysis_summary.txt",
		VisualizationsDir: "Visualizations",
		HeadRows:          5,
		HistogramBins:     10,
		ChartWidthIn:      8,
		ChartHeightIn:     6,
	}
}

// DefaultPath returns ~/.iris-analyzer/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".iris-analyzer", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.iris-analyzer/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (applied by the caller) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("IRIS")
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("report_path", d.ReportPath)
	v.SetDefault("visualizations_dir", d.VisualizationsDir)
	v.SetDefault("head_rows", d.HeadRows)
	v.SetDefault("histogram_bins", d.HistogramBins)
	v.SetDefault("chart_width_in", d.ChartWidthIn)
	v.SetDefault("chart_height_in", d.ChartHeightIn)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		path, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Dir(path))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; a malformed one is not.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects values no stage can work with.
func (c *Global) Validate() error {
	switch {
	case c.ReportPath == "":
		return fmt.Errorf("report_path must not be empty")
	case c.VisualizationsDir == "":
		return fmt.Errorf("visualizations_dir must not be empty")
	case c.HeadRows <= 0:
		return fmt.Errorf("head_rows must be positive, got %d", c.HeadRows)
	case c.HistogramBins <= 0:
		return fmt.Errorf("histogram_bins must be positive, got %d", c.HistogramBins)
	case c.ChartWidthIn <= 0 || c.ChartHeightIn <= 0:
		return fmt.Errorf("chart size must be positive, got %gx%g", c.ChartWidthIn, c.ChartHeightIn)
	}
	return nil
}

// Set assigns key from its string form.
func (c *Global) Set(key, value string) error {
	switch key {
	case "report_path":
		c.ReportPath = value
	case "visualizations_dir":
		c.VisualizationsDir = value
	case "head_rows", "histogram_bins":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: invalid integer %q", key, value)
		}
		if key == "head_rows" {
			c.HeadRows = n
		} else {
			c.HistogramBins = n
		}
	case "chart_width_in", "chart_height_in":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: invalid number %q", key, value)
		}
		if key == "chart_width_in" {
			c.ChartWidthIn = f
		} else {
			c.ChartHeightIn = f
		}
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	return c.Validate()
}

// Get returns the string form of key.
func (c *Global) Get(key string) (string, error) {
	switch key {
	case "report_path":
		return c.ReportPath, nil
	case "visualizations_dir":
		return c.VisualizationsDir, nil
	case "head_rows":
		return strconv.Itoa(c.HeadRows), nil
	case "histogram_bins":
		return strconv.Itoa(c.HistogramBins), nil
	case "chart_width_in":
		return strconv.FormatFloat(c.ChartWidthIn, 'g', -1, 64), nil
	case "chart_height_in":
		return strconv.FormatFloat(c.ChartHeightIn, 'g', -1, 64), nil
	}
	return "", fmt.Errorf("unknown key %q", key)
}
