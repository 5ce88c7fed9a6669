package charts

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"path/filepath"

	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/KaramelBytes/iris-analyzer/internal/dataset"
	"github.com/KaramelBytes/iris-analyzer/internal/utils"
)

// ErrNoData is returned when Render receives an absent or empty table.
var ErrNoData = errors.New("no data")

var (
	blue    = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	green   = color.RGBA{R: 0, G: 128, B: 0, A: 255}
	skyBlue = color.RGBA{R: 135, G: 206, B: 235, A: 255}
)

// Options controls chart size and histogram resolution.
type Options struct {
	Width  vg.Length
	Height vg.Length
	Bins   int
}

// DefaultOptions returns 8in x 6in charts with 10 histogram bins.
func DefaultOptions() Options {
	return Options{Width: 8 * vg.Inch, Height: 6 * vg.Inch, Bins: 10}
}

// Artifact is a chart written to disk.
type Artifact struct {
	Kind string // line plot|bar plot|histogram|scatter plot
	Path string
}

// ChartError reports a chart that could not be rendered or written.
type ChartError struct {
	Name string
	Err  error
}

func (e *ChartError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Name, e.Err)
}

func (e *ChartError) Unwrap() error { return e.Err }

type chart struct {
	kind  string
	file  string
	build func(*dataset.Table, Options) (*plot.Plot, error)
}

var charts = []chart{
	{"line plot", "line_plot.png", linePlot},
	{"bar plot", "bar_plot.png", barPlot},
	{"histogram", "histogram.png", histogram},
	{"scatter plot", "scatter_plot.png", scatterPlot},
}

// Render draws the four charts of t into dir. Charts are independent: a
// failing chart is reported in the joined error and the rest are still
// written.
func Render(t *dataset.Table, dir string, opt Options) ([]Artifact, error) {
	if t.Empty() {
		return nil, ErrNoData
	}
	def := DefaultOptions()
	if opt.Width <= 0 {
		opt.Width = def.Width
	}
	if opt.Height <= 0 {
		opt.Height = def.Height
	}
	if opt.Bins <= 0 {
		opt.Bins = def.Bins
	}
	if err := utils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var out []Artifact
	var errs []error
	for _, c := range charts {
		path := filepath.Join(dir, c.file)
		if err := renderOne(t, c, path, opt); err != nil {
			errs = append(errs, &ChartError{Name: c.kind, Err: err})
			continue
		}
		out = append(out, Artifact{Kind: c.kind, Path: path})
	}
	return out, errors.Join(errs...)
}

func renderOne(t *dataset.Table, c chart, path string, opt Options) error {
	p, err := c.build(t, opt)
	if err != nil {
		return err
	}
	w, err := p.WriterTo(opt.Width, opt.Height, "png")
	if err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}

func newPlot(title, x, y string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = x
	p.Y.Label.Text = y
	p.Add(plotter.NewGrid())
	return p
}

func linePlot(t *dataset.Table, _ Options) (*plot.Plot, error) {
	vals, err := t.Float(dataset.SepalLength)
	if err != nil {
		return nil, err
	}
	xys := make(plotter.XYs, len(vals))
	for i, v := range vals {
		xys[i].X = float64(i)
		xys[i].Y = v
	}
	p := newPlot("Sepal Length Trend Over Dataset Index", "Index", "Sepal Length (cm)")
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	line.Color = blue
	p.Add(line)
	p.Legend.Add("Sepal Length", line)
	p.Legend.Top = true
	return p, nil
}

func barPlot(t *dataset.Table, _ Options) (*plot.Plot, error) {
	cats := t.Categories()
	means := make(plotter.Values, len(cats))
	for i, c := range cats {
		vals, err := t.Where(c).Float(dataset.PetalLength)
		if err != nil {
			return nil, err
		}
		means[i] = stats.Mean(vals)
	}
	p := newPlot("Average Petal Length by Species", "Species", "Petal Length (cm)")
	bars, err := plotter.NewBarChart(means, vg.Points(60))
	if err != nil {
		return nil, err
	}
	bars.Color = green
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(cats...)
	return p, nil
}

func histogram(t *dataset.Table, opt Options) (*plot.Plot, error) {
	vals, err := t.Float(dataset.SepalWidth)
	if err != nil {
		return nil, err
	}
	p := newPlot("Distribution of Sepal Width", "Sepal Width (cm)", "Frequency")
	h, err := plotter.NewHist(plotter.Values(vals), opt.Bins)
	if err != nil {
		return nil, err
	}
	h.FillColor = skyBlue
	h.Color = color.Black
	p.Add(h)
	return p, nil
}

func scatterPlot(t *dataset.Table, _ Options) (*plot.Plot, error) {
	p := newPlot("Sepal Length vs. Petal Length", "Sepal Length (cm)", "Petal Length (cm)")
	for i, c := range t.Categories() {
		sub := t.Where(c)
		xs, err := sub.Float(dataset.SepalLength)
		if err != nil {
			return nil, err
		}
		ys, err := sub.Float(dataset.PetalLength)
		if err != nil {
			return nil, err
		}
		xys := make(plotter.XYs, len(xs))
		for j := range xs {
			xys[j].X, xys[j].Y = xs[j], ys[j]
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Color = plotutil.Color(i)
		s.GlyphStyle.Shape = plotutil.Shape(0)
		p.Add(s)
		p.Legend.Add(c, s)
	}
	p.Legend.Top = true
	return p, nil
}
