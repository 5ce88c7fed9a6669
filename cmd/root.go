package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/KaramelBytes/iris-analyzer/internal/analysis"
	"github.com/KaramelBytes/iris-analyzer/internal/charts"
	cfgpkg "github.com/KaramelBytes/iris-analyzer/internal/config"
	"github.com/KaramelBytes/iris-analyzer/internal/pipeline"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// Output overrides (take precedence over config)
	flagReport string
	flagOutDir string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "iris-analyzer",
	Short: "Iris Data Analyzer: explore, analyze and chart the Iris dataset",
	Long: `iris-analyzer loads the bundled Iris dataset, writes an exploration and
statistical summary to a text report and renders four charts as PNG images.

Run without a subcommand to execute every stage.

Settings come from flags, then IRIS_* environment variables (for example
IRIS_REPORT_PATH, IRIS_VISUALIZATIONS_DIR), then the config file, then
built-in defaults.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStages(cmd, pipeline.StageAll)
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.iris-analyzer/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagReport, "report", "", "report file path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagOutDir, "out-dir", "", "directory for chart images (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Defaults()
	}
	cfg = c
}

// effectiveConfig returns the loaded config with CLI overrides applied.
func effectiveConfig() cfgpkg.Global {
	c := cfg
	if c == nil {
		c = cfgpkg.Defaults()
	}
	out := *c
	if flagReport != "" {
		out.ReportPath = flagReport
	}
	if flagOutDir != "" {
		out.VisualizationsDir = flagOutDir
	}
	return out
}

func pipelineConfig(c cfgpkg.Global) pipeline.Config {
	ao := analysis.DefaultOptions()
	ao.HeadRows = c.HeadRows
	return pipeline.Config{
		ReportPath:        c.ReportPath,
		VisualizationsDir: c.VisualizationsDir,
		Analysis:          ao,
		Charts: charts.Options{
			Width:  vg.Length(c.ChartWidthIn) * vg.Inch,
			Height: vg.Length(c.ChartHeightIn) * vg.Inch,
			Bins:   c.HistogramBins,
		},
	}
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
