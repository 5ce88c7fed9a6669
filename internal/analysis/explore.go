package analysis

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/iris-analyzer/internal/dataset"
	"github.com/KaramelBytes/iris-analyzer/internal/utils"
)

// Exploration holds the head rows, column types and missing counts of a table.
type Exploration struct {
	Title   string
	Head    *dataset.Table
	Dtypes  []dataset.ColumnType
	Missing []dataset.MissingCount
}

// Explore inspects t. It returns ErrNoData for an absent or empty table.
func Explore(t *dataset.Table, opt Options) (*Exploration, error) {
	if t.Empty() {
		return nil, ErrNoData
	}
	n := opt.HeadRows
	if n <= 0 {
		n = 5
	}
	return &Exploration{
		Title:   opt.Title,
		Head:    t.Head(n),
		Dtypes:  t.Dtypes(),
		Missing: t.MissingCounts(),
	}, nil
}

// Text renders the head, dtypes and missing-value sections as written to the
// report.
func (e *Exploration) Text() string {
	return e.render("First %d rows:\n")
}

// Console renders the same sections with the console's head caption.
func (e *Exploration) Console() string {
	return e.render("First %d rows of the dataset:\n")
}

func (e *Exploration) render(caption string) string {
	rows, _ := e.Head.Dims()
	var b strings.Builder
	fmt.Fprintf(&b, caption, rows)
	b.WriteString(headTable(e.Head))
	b.WriteString("\n\nData Types:\n")
	b.WriteString(dtypesTable(e.Dtypes))
	b.WriteString("\n\nMissing Values:\n")
	b.WriteString(missingTable(e.Missing))
	b.WriteString("\n")
	return b.String()
}

// Save writes the exploration to path, replacing any existing report.
func (e *Exploration) Save(path string) error {
	var b strings.Builder
	if e.Title != "" {
		b.WriteString(e.Title)
		b.WriteString("\n\n")
	}
	b.WriteString(e.Text())
	if err := utils.WriteFile(path, []byte(b.String())); err != nil {
		return &ReportError{Op: "save", Path: path, Err: err}
	}
	return nil
}
