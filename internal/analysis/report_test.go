package analysis

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeReport(t *testing.T, path string) string {
	t.Helper()
	tbl := loadIris(t)
	ex, err := Explore(tbl, DefaultOptions())
	if err != nil {
		t.Fatalf("Explore: %v", err)
	}
	if err := ex.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	an, err := Analyze(tbl)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if err := an.Append(path); err != nil {
		t.Fatalf("Append: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	return string(b)
}

func TestReportSectionOrder(t *testing.T) {
	got := writeReport(t, filepath.Join(t.TempDir(), "analysis_summary.txt"))
	sections := []string{
		"Iris Dataset Exploration",
		"First 5 rows:",
		"Data Types:",
		"Missing Values:",
		"Statistical Summary:",
		"Mean Values by Species:",
		"Findings:",
		"- Petal measurements show more variation than sepal measurements.",
	}
	last := -1
	for _, s := range sections {
		i := strings.Index(got, s)
		if i < 0 {
			t.Fatalf("report missing %q:\n%s", s, got)
		}
		if i <= last {
			t.Fatalf("section %q out of order", s)
		}
		last = i
	}
	for _, want := range []string{"setosa", "5.006", "5.843333", "0.828066", "4.350000", "category", "float64"} {
		if !strings.Contains(got, want) {
			t.Fatalf("report missing %q", want)
		}
	}
	if !strings.HasSuffix(got, "measurements.\n") {
		t.Fatalf("report should end with the last finding, got tail %q", got[len(got)-40:])
	}
}

func TestReportDeterministic(t *testing.T) {
	dir := t.TempDir()
	first := writeReport(t, filepath.Join(dir, "a.txt"))
	second := writeReport(t, filepath.Join(dir, "b.txt"))
	if first != second {
		t.Fatal("two runs produced different reports")
	}
	// Save truncates, so rerunning into the same path is stable too.
	again := writeReport(t, filepath.Join(dir, "a.txt"))
	if again != first {
		t.Fatal("rerun into existing report changed its content")
	}
}

func TestHeadRowsOption(t *testing.T) {
	ex, err := Explore(loadIris(t), Options{HeadRows: 2})
	if err != nil {
		t.Fatalf("Explore: %v", err)
	}
	text := ex.Text()
	if !strings.HasPrefix(text, "First 2 rows:\n") {
		t.Fatalf("unexpected head: %q", text[:20])
	}
	if !strings.Contains(text, "5.1") || !strings.Contains(text, "4.9") {
		t.Fatalf("head rows missing values:\n%s", text)
	}
}

func TestReportErrorOnMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "analysis_summary.txt")
	tbl := loadIris(t)

	ex, err := Explore(tbl, DefaultOptions())
	if err != nil {
		t.Fatalf("Explore: %v", err)
	}
	err = ex.Save(path)
	var re *ReportError
	if !errors.As(err, &re) || re.Op != "save" || re.Path != path {
		t.Fatalf("Save err = %v, want *ReportError(save)", err)
	}

	an, err := Analyze(tbl)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	err = an.Append(path)
	if !errors.As(err, &re) || re.Op != "append" {
		t.Fatalf("Append err = %v, want *ReportError(append)", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatalf("report should not exist, stat err = %v", statErr)
	}
}

func TestSaveRespectsReadOnlyReport(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores file modes")
	}
	path := filepath.Join(t.TempDir(), "analysis_summary.txt")
	if err := os.WriteFile(path, []byte("protected\n"), 0o444); err != nil {
		t.Fatal(err)
	}
	tbl := loadIris(t)

	ex, err := Explore(tbl, DefaultOptions())
	if err != nil {
		t.Fatalf("Explore: %v", err)
	}
	err = ex.Save(path)
	var re *ReportError
	if !errors.As(err, &re) || re.Op != "save" || !errors.Is(err, fs.ErrPermission) {
		t.Fatalf("Save err = %v, want permission *ReportError(save)", err)
	}

	an, err := Analyze(tbl)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if err := an.Append(path); !errors.Is(err, fs.ErrPermission) {
		t.Fatalf("Append err = %v, want permission error", err)
	}

	b, _ := os.ReadFile(path)
	if string(b) != "protected\n" {
		t.Fatalf("read-only report was modified: %q", string(b))
	}
	st, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if st.Mode().Perm() != 0o444 {
		t.Fatalf("report mode = %v, want 0444", st.Mode().Perm())
	}
}

func TestConsoleCaption(t *testing.T) {
	ex, err := Explore(loadIris(t), DefaultOptions())
	if err != nil {
		t.Fatalf("Explore: %v", err)
	}
	if !strings.HasPrefix(ex.Console(), "First 5 rows of the dataset:\n") {
		t.Fatalf("console caption: %q", ex.Console()[:40])
	}
	if !strings.HasPrefix(ex.Text(), "First 5 rows:\n") {
		t.Fatalf("report caption: %q", ex.Text()[:20])
	}
	if strings.TrimPrefix(ex.Console(), "First 5 rows of the dataset:\n") != strings.TrimPrefix(ex.Text(), "First 5 rows:\n") {
		t.Fatal("console and report sections differ beyond the caption")
	}
}
