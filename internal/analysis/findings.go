package analysis

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/iris-analyzer/internal/dataset"
)

// Findings derives the report's free-text observations from the computed
// statistics. For the bundled Iris sample they read:
//
//	- The Iris dataset has no missing values.
//	- Sepal length and width vary across species, with 'virginica' having the largest average petal length.
//	- Petal measurements show more variation than sepal measurements.
func Findings(t *dataset.Table, summary []ColumnSummary, groups []GroupResult) []string {
	var out []string

	if missing := t.TotalMissing(); missing == 0 {
		out = append(out, "- The Iris dataset has no missing values.")
	} else {
		out = append(out, fmt.Sprintf("- The Iris dataset has %d missing values.", missing))
	}

	if top, ok := largestMean(groups, dataset.PetalLength); ok {
		out = append(out, fmt.Sprintf("- Sepal length and width vary across %s, with '%s' having the largest average petal length.",
			t.LabelColumn(), top))
	}

	petal, okP := meanStd(summary, "petal")
	sepal, okS := meanStd(summary, "sepal")
	if okP && okS {
		if petal > sepal {
			out = append(out, "- Petal measurements show more variation than sepal measurements.")
		} else {
			out = append(out, "- Sepal measurements show more variation than petal measurements.")
		}
	}
	return out
}

// largestMean returns the group key with the highest mean for column.
// Ties keep the earlier group.
func largestMean(groups []GroupResult, column string) (string, bool) {
	best, key := 0.0, ""
	for _, g := range groups {
		m, ok := g.Metrics[column]
		if !ok {
			continue
		}
		if key == "" || m.Mean > best {
			best, key = m.Mean, g.Key
		}
	}
	return key, key != ""
}

// meanStd averages the std of the columns whose name starts with prefix.
func meanStd(summary []ColumnSummary, prefix string) (float64, bool) {
	var sum float64
	var n int
	for _, c := range summary {
		if strings.HasPrefix(strings.ToLower(c.Name), prefix) {
			sum += c.Std
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
