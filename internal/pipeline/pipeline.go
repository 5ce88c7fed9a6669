package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/iris-analyzer/internal/analysis"
	"github.com/KaramelBytes/iris-analyzer/internal/charts"
	"github.com/KaramelBytes/iris-analyzer/internal/dataset"
)

// Stage selects which steps run after loading.
type Stage uint8

const (
	StageExplore Stage = 1 << iota
	StageAnalyze
	StageVisualize

	StageAll = StageExplore | StageAnalyze | StageVisualize
)

// ErrInterrupted is returned when the context is cancelled mid-run.
var ErrInterrupted = errors.New("interrupted")

// Config carries the resolved settings of a run.
type Config struct {
	ReportPath        string
	VisualizationsDir string
	Analysis          analysis.Options
	Charts            charts.Options
}

// Pipeline runs load, explore, analyze and visualize in order, printing
// progress to Out.
type Pipeline struct {
	Config Config
	Out    io.Writer
	Log    *slog.Logger
	// Load produces the table; dataset.Load when nil.
	Load func() (*dataset.Table, error)
}

// New returns a pipeline that loads the bundled Iris sample.
func New(cfg Config, out io.Writer, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Pipeline{Config: cfg, Out: out, Log: log, Load: dataset.Load}
}

// Run executes the selected stages. Stage failures are reported on Out and do
// not stop later stages. The returned error is non-nil only when the run was
// interrupted or a stage panicked.
func (p *Pipeline) Run(ctx context.Context, stages Stage) (err error) {
	log := p.Log.With(slog.String("run", uuid.NewString()))
	out := p.Out

	fmt.Fprintln(out, "Welcome to the Iris Data Analyzer")
	fmt.Fprintln(out, "A tool for analyzing and visualizing the Iris dataset")
	fmt.Fprintln(out)

	defer func() {
		if r := recover(); r != nil {
			log.Error("run panicked", slog.Any("panic", r))
			fmt.Fprintf(out, "✗ An unexpected error occurred: %v\n", r)
			err = fmt.Errorf("unexpected error: %v", r)
		}
	}()

	interrupted := func() bool {
		if ctx.Err() == nil {
			return false
		}
		log.Debug("run cancelled", slog.String("cause", context.Cause(ctx).Error()))
		fmt.Fprintln(out, "\nProgram interrupted by user.")
		return true
	}

	if interrupted() {
		return ErrInterrupted
	}
	t := p.load(log)
	if t == nil {
		return nil
	}

	steps := []struct {
		stage Stage
		name  string
		fn    func(*dataset.Table, *slog.Logger)
	}{
		{StageExplore, "explore", p.explore},
		{StageAnalyze, "analyze", p.analyze},
		{StageVisualize, "visualize", p.visualize},
	}
	for _, s := range steps {
		if stages&s.stage == 0 {
			continue
		}
		if interrupted() {
			return ErrInterrupted
		}
		start := time.Now()
		log.Debug("stage started", slog.String("stage", s.name))
		s.fn(t, log)
		log.Debug("stage finished", slog.String("stage", s.name), slog.Duration("elapsed", time.Since(start)))
	}

	fmt.Fprintln(out, "\nAnalysis and visualization completed.")
	return nil
}

func (p *Pipeline) load(log *slog.Logger) *dataset.Table {
	loader := p.Load
	if loader == nil {
		loader = dataset.Load
	}
	t, err := loader()
	if err != nil {
		log.Debug("load failed", slog.String("error", err.Error()))
		fmt.Fprintf(p.Out, "✗ Error loading Iris dataset: %v\n", err)
		return nil
	}
	rows, cols := t.Dims()
	log.Debug("dataset loaded", slog.Int("rows", rows), slog.Int("cols", cols))
	fmt.Fprintln(p.Out, "✓ Successfully loaded Iris dataset")
	return t
}

func (p *Pipeline) explore(t *dataset.Table, log *slog.Logger) {
	ex, err := analysis.Explore(t, p.Config.Analysis)
	if errors.Is(err, analysis.ErrNoData) {
		fmt.Fprintln(p.Out, "✗ Error: No data to explore.")
		return
	}
	if err != nil {
		fmt.Fprintf(p.Out, "✗ Error during exploration: %v\n", err)
		return
	}
	fmt.Fprintf(p.Out, "\n%s", ex.Console())
	path := p.Config.ReportPath
	if err := ex.Save(path); err != nil {
		log.Debug("save report failed", slog.String("path", path), slog.String("error", err.Error()))
		if errors.Is(err, fs.ErrPermission) {
			fmt.Fprintf(p.Out, "✗ Error: Permission denied when saving to '%s'.\n", path)
			return
		}
		fmt.Fprintf(p.Out, "✗ Error during exploration: %v\n", err)
		return
	}
	fmt.Fprintf(p.Out, "✓ Exploration results saved to '%s'\n", path)
}

func (p *Pipeline) analyze(t *dataset.Table, log *slog.Logger) {
	an, err := analysis.Analyze(t)
	if errors.Is(err, analysis.ErrNoData) {
		fmt.Fprintln(p.Out, "✗ Error: No data to analyze.")
		return
	}
	if err != nil {
		fmt.Fprintf(p.Out, "✗ Error during analysis: %v\n", err)
		return
	}
	fmt.Fprintf(p.Out, "\n%s\n", an.Text())
	path := p.Config.ReportPath
	if err := an.Append(path); err != nil {
		log.Debug("append report failed", slog.String("path", path), slog.String("error", err.Error()))
		if errors.Is(err, fs.ErrPermission) {
			fmt.Fprintf(p.Out, "✗ Error: Permission denied when appending to '%s'.\n", path)
			return
		}
		fmt.Fprintf(p.Out, "✗ Error during analysis: %v\n", err)
		return
	}
	fmt.Fprintf(p.Out, "✓ Analysis results appended to '%s'\n", path)
}

func (p *Pipeline) visualize(t *dataset.Table, log *slog.Logger) {
	arts, err := charts.Render(t, p.Config.VisualizationsDir, p.Config.Charts)
	if errors.Is(err, charts.ErrNoData) {
		fmt.Fprintln(p.Out, "✗ Error: No data to visualize.")
		return
	}
	fmt.Fprintln(p.Out)
	for _, a := range arts {
		fmt.Fprintf(p.Out, "✓ Saved %s to '%s'\n", a.Kind, a.Path)
	}
	if err == nil {
		return
	}
	log.Debug("render charts failed", slog.String("dir", p.Config.VisualizationsDir), slog.String("error", err.Error()))
	// One line per failed chart.
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			fmt.Fprintf(p.Out, "✗ Error during visualization: %v\n", e)
		}
		return
	}
	fmt.Fprintf(p.Out, "✗ Error during visualization: %v\n", err)
}
