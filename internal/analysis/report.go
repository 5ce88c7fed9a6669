package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/KaramelBytes/iris-analyzer/internal/dataset"
)

// ReportError reports a failure to write the report file.
type ReportError struct {
	Op   string // save|append
	Path string
	Err  error
}

func (e *ReportError) Error() string {
	return fmt.Sprintf("%s report %s: %v", e.Op, e.Path, e.Err)
}

func (e *ReportError) Unwrap() error { return e.Err }

// renderTable lays out rows as whitespace-aligned columns without borders.
// Columns listed in right are right-aligned.
func renderTable(header []string, rows [][]string, right map[int]bool) string {
	tw := table.NewWriter()
	if header != nil {
		hr := make(table.Row, len(header))
		for i, h := range header {
			hr[i] = h
		}
		tw.AppendHeader(hr)
	}
	for _, r := range rows {
		row := make(table.Row, len(r))
		for i, v := range r {
			row[i] = v
		}
		tw.AppendRow(row)
	}
	style := table.StyleDefault
	style.Options = table.OptionsNoBordersAndSeparators
	style.Format.Header = text.FormatDefault
	tw.SetStyle(style)

	var configs []table.ColumnConfig
	for col := range right {
		configs = append(configs, table.ColumnConfig{Number: col + 1, Align: text.AlignRight, AlignHeader: text.AlignRight})
	}
	tw.SetColumnConfigs(configs)

	lines := strings.Split(tw.Render(), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}

// headTable renders rows with a leading row index.
func headTable(t *dataset.Table) string {
	names := t.Names()
	header := append([]string{""}, names...)
	rows, _ := t.Dims()
	cols := make([][]string, len(names))
	right := map[int]bool{0: true}
	for j, n := range names {
		if vals, err := t.Float(n); err == nil {
			cols[j] = make([]string, len(vals))
			for i, v := range vals {
				cols[j][i] = strconv.FormatFloat(v, 'f', 1, 64)
			}
			right[j+1] = true
			continue
		}
		cols[j] = t.Frame().Col(n).Records()
	}
	out := make([][]string, rows)
	for i := 0; i < rows; i++ {
		r := make([]string, 0, len(header))
		r = append(r, strconv.Itoa(i))
		for j := range names {
			r = append(r, cols[j][i])
		}
		out[i] = r
	}
	return renderTable(header, out, right)
}

func dtypesTable(types []dataset.ColumnType) string {
	rows := make([][]string, len(types))
	for i, c := range types {
		rows[i] = []string{c.Name, c.Dtype}
	}
	return renderTable(nil, rows, map[int]bool{1: true})
}

func missingTable(counts []dataset.MissingCount) string {
	rows := make([][]string, len(counts))
	for i, c := range counts {
		rows[i] = []string{c.Name, strconv.Itoa(c.Count)}
	}
	return renderTable(nil, rows, map[int]bool{1: true})
}

func describeTable(summary []ColumnSummary) string {
	header := []string{""}
	for _, c := range summary {
		header = append(header, c.Name)
	}
	stat := []struct {
		name string
		get  func(ColumnSummary) float64
	}{
		{"count", func(c ColumnSummary) float64 { return float64(c.Count) }},
		{"mean", func(c ColumnSummary) float64 { return c.Mean }},
		{"std", func(c ColumnSummary) float64 { return c.Std }},
		{"min", func(c ColumnSummary) float64 { return c.Min }},
		{"25%", func(c ColumnSummary) float64 { return c.Q1 }},
		{"50%", func(c ColumnSummary) float64 { return c.Q2 }},
		{"75%", func(c ColumnSummary) float64 { return c.Q3 }},
		{"max", func(c ColumnSummary) float64 { return c.Max }},
	}
	rows := make([][]string, len(stat))
	for i, s := range stat {
		r := []string{s.name}
		for _, c := range summary {
			r = append(r, strconv.FormatFloat(s.get(c), 'f', 6, 64))
		}
		rows[i] = r
	}
	right := map[int]bool{}
	for i := range summary {
		right[i+1] = true
	}
	return renderTable(header, rows, right)
}

func groupsTable(label string, columns []string, groups []GroupResult) string {
	header := append([]string{label}, columns...)
	rows := make([][]string, len(groups))
	for i, g := range groups {
		r := []string{g.Key}
		for _, c := range columns {
			r = append(r, strconv.FormatFloat(g.Metrics[c].Mean, 'f', 3, 64))
		}
		rows[i] = r
	}
	right := map[int]bool{}
	for i := range columns {
		right[i+1] = true
	}
	return renderTable(header, rows, right)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
