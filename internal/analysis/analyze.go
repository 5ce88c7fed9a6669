package analysis

import (
	"strings"

	"github.com/KaramelBytes/iris-analyzer/internal/dataset"
	"github.com/KaramelBytes/iris-analyzer/internal/utils"
)

// Analysis is the statistical summary, grouped means and findings of a table.
type Analysis struct {
	Label    string
	Columns  []string
	Summary  []ColumnSummary
	Groups   []GroupResult
	Findings []string
}

// Analyze computes the summary of t. It returns ErrNoData for an absent or
// empty table.
func Analyze(t *dataset.Table) (*Analysis, error) {
	if t.Empty() {
		return nil, ErrNoData
	}
	summary, err := Describe(t)
	if err != nil {
		return nil, err
	}
	groups, err := GroupMeans(t)
	if err != nil {
		return nil, err
	}
	return &Analysis{
		Label:    t.LabelColumn(),
		Columns:  t.NumericColumns(),
		Summary:  summary,
		Groups:   groups,
		Findings: Findings(t, summary, groups),
	}, nil
}

// Text renders the summary, grouped means and findings sections.
func (a *Analysis) Text() string {
	var b strings.Builder
	b.WriteString("Statistical Summary:\n")
	b.WriteString(describeTable(a.Summary))
	b.WriteString("\n\nMean Values by ")
	b.WriteString(titleCase(a.Label))
	b.WriteString(":\n")
	b.WriteString(groupsTable(a.Label, a.Columns, a.Groups))
	b.WriteString("\n\nFindings:\n")
	for _, f := range a.Findings {
		b.WriteString(f)
		b.WriteString("\n")
	}
	return b.String()
}

// Append adds the analysis to the report at path.
func (a *Analysis) Append(path string) error {
	if err := utils.AppendFile(path, []byte("\n"+a.Text())); err != nil {
		return &ReportError{Op: "append", Path: path, Err: err}
	}
	return nil
}
