package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// execRoot is a helper to execute the root command with args and capture stdout.
func execRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// Reset sticky flags that may persist Changed state across invocations
	for _, name := range []string{"report", "out-dir", "config"} {
		if fl := rootCmd.PersistentFlags().Lookup(name); fl != nil {
			_ = fl.Value.Set("")
			fl.Changed = false
		}
	}
	if fl := rootCmd.Flags().Lookup("help"); fl != nil {
		_ = fl.Value.Set("false")
		fl.Changed = false
	}
	cfg = nil
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestCLI_DefaultRunWritesArtifacts(t *testing.T) {
	home := isolateHome(t)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(home); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(wd) }()

	out, err := execRoot(t)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out, "Analysis and visualization completed.") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(home, "analysis_summary.txt")); err != nil {
		t.Fatalf("report not written: %v", err)
	}
	for _, f := range []string{"line_plot.png", "bar_plot.png", "histogram.png", "scatter_plot.png"} {
		if _, err := os.Stat(filepath.Join(home, "Visualizations", f)); err != nil {
			t.Fatalf("chart %s not written: %v", f, err)
		}
	}
}

func TestCLI_ExploreOnlyHonorsFlags(t *testing.T) {
	home := isolateHome(t)
	report := filepath.Join(home, "out", "report.txt")
	if err := os.MkdirAll(filepath.Dir(report), 0o755); err != nil {
		t.Fatal(err)
	}
	outDir := filepath.Join(home, "charts")

	out, err := execRoot(t, "explore", "--report", report, "--out-dir", outDir)
	if err != nil {
		t.Fatalf("explore failed: %v", err)
	}
	if !strings.Contains(out, "✓ Exploration results saved to '"+report+"'") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	b, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if strings.Contains(string(b), "Statistical Summary:") {
		t.Fatal("explore should not append analysis")
	}
	if _, err := os.Stat(outDir); !os.IsNotExist(err) {
		t.Fatal("explore should not render charts")
	}
}

func TestCLI_AnalyzeAppendsToReport(t *testing.T) {
	home := isolateHome(t)
	report := filepath.Join(home, "summary.txt")
	if _, err := execRoot(t, "analyze", "--report", report); err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	b, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	got := string(b)
	if !strings.HasPrefix(got, "Iris Dataset Exploration\n") || !strings.Contains(got, "Mean Values by Species:") {
		t.Fatalf("unexpected report:\n%s", got)
	}
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	home := isolateHome(t)
	cfgPath := filepath.Join(home, "conf", "config.yaml")

	if _, err := execRoot(t, "config", "set", "head_rows", "3", "--config", cfgPath); err != nil {
		t.Fatalf("config set failed: %v", err)
	}
	out, err := execRoot(t, "config", "show", "--config", cfgPath)
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(out, "head_rows: 3") || !strings.Contains(out, "report_path: analysis_summary.txt") {
		t.Fatalf("unexpected config:\n%s", out)
	}

	report := filepath.Join(home, "r.txt")
	out, err = execRoot(t, "explore", "--config", cfgPath, "--report", report)
	if err != nil {
		t.Fatalf("explore failed: %v", err)
	}
	if !strings.Contains(out, "First 3 rows of the dataset:") {
		t.Fatalf("head_rows not applied:\n%s", out)
	}
}

func TestCLI_ConfigSetRejectsBadValue(t *testing.T) {
	home := isolateHome(t)
	cfgPath := filepath.Join(home, "config.yaml")
	if _, err := execRoot(t, "config", "set", "histogram_bins", "many", "--config", cfgPath); err == nil {
		t.Fatal("expected error for non-numeric histogram_bins")
	}
	if _, err := os.Stat(cfgPath); !os.IsNotExist(err) {
		t.Fatal("config should not be written on bad value")
	}
}

func TestCLI_HelpListsEnvOverrides(t *testing.T) {
	isolateHome(t)
	out, err := execRoot(t, "--help")
	if err != nil {
		t.Fatalf("help failed: %v", err)
	}
	for _, want := range []string{"IRIS_REPORT_PATH", "IRIS_VISUALIZATIONS_DIR"} {
		if !strings.Contains(out, want) {
			t.Fatalf("help missing %q:\n%s", want, out)
		}
	}
}
