package dataset

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Column names of the bundled Iris sample.
const (
	SepalLength = "sepal length (cm)"
	SepalWidth  = "sepal width (cm)"
	PetalLength = "petal length (cm)"
	PetalWidth  = "petal width (cm)"
	Species     = "species"
)

// Shape of the bundled sample.
const (
	IrisRows       = 150
	IrisCategories = 3
)

//go:embed iris.csv
var irisCSV []byte

// ErrInvalidDataset is returned when the bundled data violates its shape.
var ErrInvalidDataset = errors.New("invalid dataset")

// Load returns the bundled Iris table.
func Load() (*Table, error) {
	return load(irisCSV)
}

func load(raw []byte) (*Table, error) {
	df := dataframe.ReadCSV(bytes.NewReader(raw),
		dataframe.HasHeader(true),
		dataframe.WithTypes(map[string]series.Type{
			SepalLength: series.Float,
			SepalWidth:  series.Float,
			PetalLength: series.Float,
			PetalWidth:  series.Float,
			Species:     series.String,
		}),
	)
	if err := df.Error(); err != nil {
		return nil, fmt.Errorf("read iris csv: %w", err)
	}
	t, err := NewTable(df, Species)
	if err != nil {
		return nil, err
	}
	if err := validate(t); err != nil {
		return nil, err
	}
	return t, nil
}

func validate(t *Table) error {
	rows, _ := t.Dims()
	if rows != IrisRows {
		return fmt.Errorf("%w: %d rows, want %d", ErrInvalidDataset, rows, IrisRows)
	}
	want := []string{SepalLength, SepalWidth, PetalLength, PetalWidth, Species}
	names := t.Names()
	if len(names) != len(want) {
		return fmt.Errorf("%w: %d columns, want %d", ErrInvalidDataset, len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrInvalidDataset, i, names[i], want[i])
		}
	}
	if n := len(t.NumericColumns()); n != 4 {
		return fmt.Errorf("%w: %d numeric columns, want 4", ErrInvalidDataset, n)
	}
	if n := len(t.Categories()); n != IrisCategories {
		return fmt.Errorf("%w: %d categories, want %d", ErrInvalidDataset, n, IrisCategories)
	}
	if n := t.TotalMissing(); n != 0 {
		return fmt.Errorf("%w: %d missing values", ErrInvalidDataset, n)
	}
	for _, c := range t.NumericColumns() {
		vals, err := t.Float(c)
		if err != nil {
			return err
		}
		for i, v := range vals {
			if v <= 0 {
				return fmt.Errorf("%w: %s row %d is %g, want > 0", ErrInvalidDataset, c, i, v)
			}
		}
	}
	return nil
}
