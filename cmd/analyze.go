package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/iris-analyzer/internal/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Load, explore, analyze and visualize (the default)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStages(cmd, pipeline.StageAll)
	},
}

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Write head rows, data types and missing values to the report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStages(cmd, pipeline.StageExplore)
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Explore, then append statistics, species means and findings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStages(cmd, pipeline.StageExplore|pipeline.StageAnalyze)
	},
}

var visualizeCmd = &cobra.Command{
	Use:   "visualize",
	Short: "Render the line, bar, histogram and scatter charts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStages(cmd, pipeline.StageVisualize)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(exploreCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(visualizeCmd)
}

// runStages runs the pipeline until it finishes or the user interrupts it.
// Stage failures are reported on the console, so the command itself succeeds.
func runStages(cmd *cobra.Command, stages pipeline.Stage) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := pipeline.New(pipelineConfig(effectiveConfig()), cmd.OutOrStdout(), newLogger(cmd.ErrOrStderr()))
	_ = p.Run(ctx, stages)
	return nil
}
