package main

// Notes:
// - runMain/run: we test dispatch and exit codes end to end on temporary
//   trees. Expansion details are covered by the library tests.
// - Environment captures Stdout/Stderr in buffers.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Test Infrastructure
// ---------------------------------------------------------------------------

type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestEnv() *testEnv {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &testEnv{
		Environment: &Environment{
			Now:    func() time.Time { return time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC) },
			Stdout: stdout,
			Stderr: stderr,
		},
		stdout: stdout,
		stderr: stderr,
	}
}

// writeTree writes files (relative path -> content) under root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// manualTree is a minimal valid source tree rooted at manual/.
var manualTree = map[string]string{
	"manual/manual.html": "<!-- include_header UM nil intro nil -->\n<h1>Contents</h1>\n<!-- generate intro -->\n",
	"manual/intro.html":  "<!-- include_header UM nil nil manual -->\n<a id=\"intro\"></a>\n<h1>Intro</h1>\n\nSee <file>go.mod</file>.\n\n",
}

// ---------------------------------------------------------------------------
// TestRunMain - Exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		files      map[string]string
		args       func(root string) []string
		wantCode   int
		wantStderr string
	}{
		{
			name:  "success",
			files: manualTree,
			args: func(root string) []string {
				return []string{"expand", filepath.Join(root, "manual"), filepath.Join(root, "out")}
			},
			wantCode: ExitSuccess,
		},
		{
			name:  "implicit expand",
			files: manualTree,
			args: func(root string) []string {
				return []string{filepath.Join(root, "manual"), filepath.Join(root, "out")}
			},
			wantCode: ExitSuccess,
		},
		{
			name: "duplicate anchor",
			files: map[string]string{
				"docs/docs.html": "<a id=\"x\"></a>\n<!-- generate a -->\n",
				"docs/a.html":    "<a id=\"x\"></a>\n",
			},
			args: func(root string) []string {
				return []string{"expand", filepath.Join(root, "docs"), filepath.Join(root, "out")}
			},
			wantCode:   ExitGeneral,
			wantStderr: `id "x" seen twice in`,
		},
		{
			name:  "missing contents page",
			files: map[string]string{"docs/other.html": "x\n"},
			args: func(root string) []string {
				return []string{"expand", filepath.Join(root, "docs"), filepath.Join(root, "out")}
			},
			wantCode:   ExitIO,
			wantStderr: "hint: the contents page must be named after the input directory: docs.html",
		},
		{
			name:  "missing generated page",
			files: map[string]string{"docs/docs.html": "<!-- generate ghost -->\n"},
			args: func(root string) []string {
				return []string{"expand", filepath.Join(root, "docs"), filepath.Join(root, "out")}
			},
			wantCode:   ExitIO,
			wantStderr: "hint: generate NAME reads NAME.html",
		},
		{
			name: "missing input directory",
			args: func(root string) []string {
				return []string{"expand", filepath.Join(root, "nope"), filepath.Join(root, "out")}
			},
			wantCode: ExitIO,
		},
		{
			name:       "unknown command",
			args:       func(string) []string { return []string{"bogus"} },
			wantCode:   ExitUsage,
			wantStderr: "unknown command: bogus",
		},
		{
			name:       "unknown flag",
			args:       func(string) []string { return []string{"expand", "--bogus"} },
			wantCode:   ExitUsage,
			wantStderr: "unknown flag: --bogus",
		},
		{
			name:       "unknown style",
			files:      manualTree,
			args:       func(root string) []string { return []string{"expand", "--style", "bogus", filepath.Join(root, "manual"), filepath.Join(root, "out")} },
			wantCode:   ExitUsage,
			wantStderr: "hint: available: default, plain",
		},
		{
			name:       "missing output directory",
			files:      manualTree,
			args:       func(root string) []string { return []string{"expand", filepath.Join(root, "manual")} },
			wantCode:   ExitUsage,
			wantStderr: "no output directory specified",
		},
		{
			name:     "unsupported shell",
			args:     func(string) []string { return []string{"completion", "tcsh"} },
			wantCode: ExitUsage,
		},
		{
			name:     "version",
			args:     func(string) []string { return []string{"version"} },
			wantCode: ExitSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			writeTree(t, root, tt.files)
			env := newTestEnv()

			args := append([]string{"doc2xhtml"}, tt.args(root)...)
			code := runMain(args, env.Environment)

			if code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d (stderr: %s)", code, tt.wantCode, env.stderr)
			}
			if tt.wantStderr != "" && !strings.Contains(env.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want to contain %q", env.stderr, tt.wantStderr)
			}
		})
	}
}

func TestRun_NoCommand(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	err := run(context.Background(), []string{"doc2xhtml"}, env.Environment)
	if err != ErrNoCommand {
		t.Errorf("run() error = %v, want %v", err, ErrNoCommand)
	}
	if !strings.Contains(env.stderr.String(), "Usage: doc2xhtml") {
		t.Errorf("stderr = %q, want usage", env.stderr)
	}
}

func TestRun_Version(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	if err := run(context.Background(), []string{"doc2xhtml", "version"}, env.Environment); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if got, want := env.stdout.String(), "doc2xhtml "+Version+"\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestRun_ExpandOutput(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, manualTree)
	out := filepath.Join(root, "out")

	env := newTestEnv()
	err := run(context.Background(), []string{"doc2xhtml", "expand", filepath.Join(root, "manual"), out}, env.Environment)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if got := env.stdout.String(); got != "Expanded 2 file(s)\n" {
		t.Errorf("stdout = %q, want %q", got, "Expanded 2 file(s)\n")
	}

	intro, err := os.ReadFile(filepath.Join(out, "intro.html"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	for _, want := range []string{
		"<title>User&#39;s Manual</title>",
		`<a href="manual.html">Table of Contents</a>`,
		"<h1>1 Intro</h1>",
		"<p>\nSee <span class=\"file\">go.mod</span>.\n</p>\n",
	} {
		if !strings.Contains(string(intro), want) {
			t.Errorf("intro.html missing %q:\n%s", want, intro)
		}
	}

	toc, err := os.ReadFile(filepath.Join(out, "manual.html"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(toc), `<a href="intro.html#intro">`) {
		t.Errorf("manual.html missing ToC entry:\n%s", toc)
	}
}

func TestRun_QuietAndVerbose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		flag string
		want []string
	}{
		{name: "quiet", flag: "-q", want: nil},
		{name: "verbose", flag: "-v", want: []string{"intro.html", "Expanded 2 file(s): 1 heading(s), 1 anchor(s) in"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			writeTree(t, root, manualTree)

			env := newTestEnv()
			err := run(context.Background(), []string{"doc2xhtml", "expand", tt.flag, filepath.Join(root, "manual"), filepath.Join(root, "out")}, env.Environment)
			if err != nil {
				t.Fatalf("run() error = %v", err)
			}

			got := env.stdout.String()
			if tt.want == nil && got != "" {
				t.Errorf("stdout = %q, want empty", got)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("stdout = %q, want to contain %q", got, w)
				}
			}
		})
	}
}

func TestIsImplicitExpand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "f.html")
	writeTree(t, dir, map[string]string{"f.html": "x"})

	tests := []struct {
		arg  string
		want bool
	}{
		{arg: dir, want: true},
		{arg: "--verbose", want: true},
		{arg: "-q", want: true},
		{arg: "-", want: false},
		{arg: file, want: false},
		{arg: "bogus", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			t.Parallel()

			if got := isImplicitExpand(tt.arg); got != tt.want {
				t.Errorf("isImplicitExpand(%q) = %v, want %v", tt.arg, got, tt.want)
			}
		})
	}
}
