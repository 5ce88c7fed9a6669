package dataset

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Dtype names reported for table columns.
const (
	DtypeFloat    = "float64"
	DtypeCategory = "category"
	DtypeObject   = "object"
)

// Table is a labeled tabular dataset: numeric measurement columns plus one
// categorical label column.
type Table struct {
	df    dataframe.DataFrame
	label string
}

// ColumnType pairs a column name with its reported dtype.
type ColumnType struct {
	Name  string
	Dtype string
}

// MissingCount is the number of missing values in a column.
type MissingCount struct {
	Name  string
	Count int
}

// NewTable wraps a gota frame. label names the categorical column.
func NewTable(df dataframe.DataFrame, label string) (*Table, error) {
	if err := df.Error(); err != nil {
		return nil, fmt.Errorf("build table: %w", err)
	}
	found := false
	for _, n := range df.Names() {
		if n == label {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("build table: label column %q not found", label)
	}
	if df.Col(label).Type() != series.String {
		return nil, errors.New("build table: label column must hold strings")
	}
	return &Table{df: df, label: label}, nil
}

// Empty reports whether t is nil or has no rows.
func (t *Table) Empty() bool {
	return t == nil || t.df.Nrow() == 0
}

// Dims returns rows and columns.
func (t *Table) Dims() (int, int) {
	if t == nil {
		return 0, 0
	}
	return t.df.Dims()
}

// Names returns column names in table order.
func (t *Table) Names() []string { return t.df.Names() }

// LabelColumn returns the name of the categorical column.
func (t *Table) LabelColumn() string { return t.label }

// Frame exposes the underlying dataframe.
func (t *Table) Frame() dataframe.DataFrame { return t.df }

// NumericColumns returns the float-typed columns in table order.
func (t *Table) NumericColumns() []string {
	var out []string
	types := t.df.Types()
	for i, n := range t.df.Names() {
		if n == t.label {
			continue
		}
		if types[i] == series.Float || types[i] == series.Int {
			out = append(out, n)
		}
	}
	return out
}

// Float returns the values of a numeric column.
func (t *Table) Float(name string) ([]float64, error) {
	col := t.df.Col(name)
	if err := col.Error(); err != nil {
		return nil, fmt.Errorf("column %q: %w", name, err)
	}
	if col.Type() != series.Float && col.Type() != series.Int {
		return nil, fmt.Errorf("column %q is not numeric", name)
	}
	return col.Float(), nil
}

// Labels returns the label value of every row.
func (t *Table) Labels() []string {
	return t.df.Col(t.label).Records()
}

// Categories returns the distinct label values, sorted.
func (t *Table) Categories() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, v := range t.Labels() {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Head returns the first n rows (fewer if the table is shorter). n <= 0
// yields an empty table with the same columns, which every stage treats as
// absent data.
func (t *Table) Head(n int) *Table {
	rows := t.df.Nrow()
	if n > rows {
		n = rows
	}
	if n <= 0 {
		return &Table{df: t.df.Subset([]int{}), label: t.label}
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return &Table{df: t.df.Subset(idx), label: t.label}
}

// Where returns the rows whose label equals category.
func (t *Table) Where(category string) *Table {
	sub := t.df.Filter(dataframe.F{
		Colname:    t.label,
		Comparator: series.Eq,
		Comparando: category,
	})
	return &Table{df: sub, label: t.label}
}

// Dtypes reports the dtype of every column in table order.
func (t *Table) Dtypes() []ColumnType {
	types := t.df.Types()
	out := make([]ColumnType, 0, len(types))
	for i, n := range t.df.Names() {
		dt := DtypeObject
		switch {
		case n == t.label:
			dt = DtypeCategory
		case types[i] == series.Float:
			dt = DtypeFloat
		case types[i] == series.Int:
			dt = "int64"
		}
		out = append(out, ColumnType{Name: n, Dtype: dt})
	}
	return out
}

// MissingCounts counts NaN/NA cells per column in table order.
func (t *Table) MissingCounts() []MissingCount {
	names := t.df.Names()
	out := make([]MissingCount, 0, len(names))
	for _, n := range names {
		cnt := 0
		for _, na := range t.df.Col(n).IsNaN() {
			if na {
				cnt++
			}
		}
		out = append(out, MissingCount{Name: n, Count: cnt})
	}
	return out
}

// TotalMissing sums MissingCounts.
func (t *Table) TotalMissing() int {
	total := 0
	for _, m := range t.MissingCounts() {
		total += m.Count
	}
	return total
}
