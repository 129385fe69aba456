package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resumematch/internal/domain"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	yml := fmt.Sprintf(`store:
  type: sqlite
  dsn: %s
files:
  type: local
  dir: %s
download_dir: %s
`, filepath.Join(dir, "db", "resumes.db"), filepath.Join(dir, "resumes"), filepath.Join(dir, "downloads"))
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	matchUploads, matchLimit, matchDownloadDir, matchJobFile = nil, 0, "", ""
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommands_EndToEnd(t *testing.T) {
	cfg := writeConfig(t)
	src := t.TempDir()
	files := map[string]string{
		"go.txt":   "Go developer. Writes Kubernetes operators.",
		"chef.txt": "Pastry chef. Bakes bread.",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(src, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	out, err := run(t, "--config", cfg, "add", filepath.Join(src, "go.txt"), filepath.Join(src, "chef.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Stored 2 resume(s).") {
		t.Fatalf("unexpected add output %q", out)
	}

	downloads := filepath.Join(t.TempDir(), "out")
	out, err = run(t, "--config", cfg, "match", "--limit", "1", "--download", downloads, "kubernetes", "operators")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "1. go.txt (") {
		t.Fatalf("unexpected match output %q", out)
	}
	if data, err := os.ReadFile(filepath.Join(downloads, "go.txt")); err != nil || string(data) != files["go.txt"] {
		t.Fatalf("expected downloaded résumé, got %q %v", data, err)
	}

	out, err = run(t, "--config", cfg, "list")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "go.txt") || !strings.Contains(out, "chef.txt") {
		t.Fatalf("unexpected list output %q", out)
	}

	if _, err := run(t, "--config", cfg, "remove", "chef.txt"); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "--config", cfg, "remove", "chef.txt"); err == nil {
		t.Fatal("expected removing a missing résumé to fail")
	}

	out, err = run(t, "--config", cfg, "clean")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "already clean") {
		t.Fatalf("unexpected clean output %q", out)
	}
}

func TestMatch_EmptyStoreWarns(t *testing.T) {
	out, err := run(t, "--config", writeConfig(t), "match", "data", "engineer")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Warning: no resumes found") {
		t.Fatalf("expected warning, got %q", out)
	}
}

func TestReadJobDescription(t *testing.T) {
	jobFile := filepath.Join(t.TempDir(), "job.txt")
	if err := os.WriteFile(jobFile, []byte("  from file \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		name    string
		stdin   string
		args    []string
		file    string
		want    string
		wantErr bool
	}{
		{name: "args", args: []string{"go", "developer"}, want: "go developer"},
		{name: "file wins", args: []string{"ignored"}, file: jobFile, want: "from file"},
		{name: "stdin", stdin: "from stdin\n", want: "from stdin"},
		{name: "empty", stdin: "   ", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := readJobDescription(strings.NewReader(tc.stdin), tc.args, tc.file)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil || got != tc.want {
				t.Fatalf("got %q, %v; want %q", got, err, tc.want)
			}
		})
	}
}

func TestPrintResult_UploadedScores(t *testing.T) {
	var buf bytes.Buffer
	printResult(&buf, &domain.MatchResult{
		CorpusSize: 2,
		Matches:    []domain.Match{{ScoredDocument: domain.ScoredDocument{Name: "a.pdf", Score: 0.1234, SourcePath: "/r/a.pdf"}}},
		Supplied:   []domain.ScoredDocument{{Name: "b.pdf", Score: 0}},
	})
	out := buf.String()
	for _, want := range []string{"1. a.pdf (12.34% match)  /r/a.pdf", "Uploaded Resume Scores:", "b.pdf: 0.00%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
}
