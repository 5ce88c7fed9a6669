package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"

	"github.com/KaramelBytes/iris-analyzer/internal/dataset"
)

// ErrNoData is returned when a stage receives an absent or empty table.
var ErrNoData = errors.New("no data")

// Options controls exploration and analysis of a table.
type Options struct {
	// HeadRows determines how many leading rows the exploration shows.
	HeadRows int
	// Title heads the report file.
	Title string
}

// DefaultOptions returns the defaults used by the CLI.
func DefaultOptions() Options {
	return Options{
		HeadRows: 5,
		Title:    "Iris Dataset Exploration",
	}
}

// ColumnSummary captures descriptive statistics for one numeric column.
type ColumnSummary struct {
	Name  string
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Q1    float64
	Q2    float64
	Q3    float64
	Max   float64
}

// GroupResult captures aggregated metrics per category.
type GroupResult struct {
	Key     string
	Size    int
	Metrics map[string]NumSummary // by column name
}

type NumSummary struct {
	Count          int
	Min, Max, Mean float64
}

// Describe computes count, mean, std, min, quartiles and max for every
// numeric column. NaN cells are excluded.
func Describe(t *dataset.Table) ([]ColumnSummary, error) {
	if t.Empty() {
		return nil, ErrNoData
	}
	cols := t.NumericColumns()
	out := make([]ColumnSummary, 0, len(cols))
	for _, name := range cols {
		vals, err := t.Float(name)
		if err != nil {
			return nil, fmt.Errorf("describe: %w", err)
		}
		s := stats.Sample{Xs: dropNaN(vals)}
		cs := ColumnSummary{Name: name, Count: len(s.Xs)}
		if cs.Count == 0 {
			cs.Mean, cs.Std = math.NaN(), math.NaN()
			cs.Min, cs.Q1, cs.Q2, cs.Q3, cs.Max = math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN()
			out = append(out, cs)
			continue
		}
		sorted := s.Copy().Sort()
		cs.Mean = s.Mean()
		cs.Std = s.StdDev()
		cs.Min, cs.Max = sorted.Bounds()
		cs.Q1 = quantile(sorted.Xs, 0.25)
		cs.Q2 = quantile(sorted.Xs, 0.5)
		cs.Q3 = quantile(sorted.Xs, 0.75)
		out = append(out, cs)
	}
	return out, nil
}

// GroupMeans aggregates every numeric column per category, one group per
// category in sorted order.
func GroupMeans(t *dataset.Table) ([]GroupResult, error) {
	if t.Empty() {
		return nil, ErrNoData
	}
	cols := t.NumericColumns()
	cats := t.Categories()
	out := make([]GroupResult, 0, len(cats))
	for _, c := range cats {
		sub := t.Where(c)
		df := sub.Frame()
		if err := df.Error(); err != nil {
			return nil, fmt.Errorf("group %q: %w", c, err)
		}
		rows, _ := sub.Dims()
		gr := GroupResult{Key: c, Size: rows, Metrics: map[string]NumSummary{}}
		for _, name := range cols {
			vals, err := sub.Float(name)
			if err != nil {
				return nil, fmt.Errorf("group %q: %w", c, err)
			}
			s := stats.Sample{Xs: dropNaN(vals)}
			ns := NumSummary{Count: len(s.Xs), Min: math.NaN(), Max: math.NaN(), Mean: math.NaN()}
			if ns.Count > 0 {
				ns.Min, ns.Max = s.Bounds()
				ns.Mean = s.Mean()
			}
			gr.Metrics[name] = ns
		}
		out = append(out, gr)
	}
	return out, nil
}

func dropNaN(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// quantile interpolates linearly between the closest ranks of sorted.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
