package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dendrascience/dutree/fstree"
	"github.com/google/go-cmp/cmp"
)

const sampleTranscript = `$ cd /
$ ls
dir a
14848514 b.txt
8504156 c.dat
dir d
$ cd a
$ ls
dir e
29116 f
2557 g
62596 h.lst
$ cd e
$ ls
584 i
$ cd ..
$ cd ..
$ cd d
$ ls
4060174 j
8033020 d.log
5626152 d.ext
7214296 k
`

// runCLI executes the root command with stdin set to input and returns
// what it wrote to stdout.
func runCLI(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetIn(strings.NewReader(input))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestReport_Text(t *testing.T) {
	out, err := runCLI(t, sampleTranscript, "report")
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	for _, want := range []string{
		"Total size:          48381165",
		"95437",
		"Unused space:        21618835 of 70000000",
		"Space to free:       8381165",
		"Smallest to delete:  /d (24933642)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Warnings:") {
		t.Errorf("clean transcript should not report warnings:\n%s", out)
	}
}

func TestReport_JSON(t *testing.T) {
	path := writeFile(t, "session.txt", sampleTranscript+"12x broken\n")
	out, err := runCLI(t, "", "report", "--json", path)
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}

	var got struct {
		fstree.Report
		Warnings []fstree.Warning `json:"warnings"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	want := fstree.Report{
		RootSize:    48381165,
		Directories: 4,
		Files:       11,
		Threshold:   100000,
		SumBelow:    95437,
		Capacity:    70000000,
		Target:      30000000,
		Unused:      21618835,
		Deficit:     8381165,
		FreeSize:    24933642,
		FreePath:    "/d",
	}
	if diff := cmp.Diff(want, got.Report); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
	if len(got.Warnings) != 1 || got.Warnings[0].Line != 24 || got.Warnings[0].Reason == "" {
		t.Errorf("warnings = %+v, want one for line 24", got.Warnings)
	}
}

func TestReport_Flags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"threshold", []string{"report", "--threshold", "1000"}, "Sum below 1000       584"},
		{"short threshold", []string{"report", "-t", "1000"}, "Sum below 1000       584"},
		{"capacity and target", []string{"report", "--capacity", "100000000", "--target", "51668835"}, "Smallest to delete:  /a (94853)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, sampleTranscript, tt.args...)
			if err != nil {
				t.Fatalf("report failed: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestReport_ConfigFile(t *testing.T) {
	cfg := writeFile(t, "dutree.toml", "[query]\nthreshold = 1000\n")

	out, err := runCLI(t, sampleTranscript, "report", "--config", cfg)
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if !strings.Contains(out, "Sum below 1000       584") {
		t.Errorf("config threshold not applied:\n%s", out)
	}

	out, err = runCLI(t, sampleTranscript, "report", "--config", cfg, "--threshold", "100000")
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if !strings.Contains(out, "Sum below 100000     95437") {
		t.Errorf("flag should override config:\n%s", out)
	}
}

func TestReport_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		args    []string
		wantErr error
	}{
		{"strict malformed", "$ ls\n12x a\n", []string{"report", "--strict"}, fstree.ErrMalformedLine},
		{"ascend past root", "$ cd /\n$ cd ..\n", []string{"report"}, fstree.ErrAscendPastRoot},
		{"cannot free enough", sampleTranscript, []string{"report", "--capacity", "50000000", "--target", "60000000"}, fstree.ErrNoCandidate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.input, tt.args...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := runCLI(t, sampleTranscript, "report", "--target", "-5"); err == nil {
		t.Error("negative target should be rejected")
	}
	if _, err := runCLI(t, "", "report", filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("missing transcript should be an error")
	}
}

func TestTree(t *testing.T) {
	out, err := runCLI(t, sampleTranscript, "tree", "--dirs-only")
	if err != nil {
		t.Fatalf("tree failed: %v", err)
	}
	want := `- / (dir, size=48381165)
  - a (dir, size=94853)
    - e (dir, size=584)
  - d (dir, size=24933642)
`
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("tree output mismatch (-want +got):\n%s", diff)
	}

	out, err = runCLI(t, sampleTranscript, "tree", "-")
	if err != nil {
		t.Fatalf("tree failed: %v", err)
	}
	if lines := strings.Count(out, "\n"); lines != 14 {
		t.Errorf("full tree has %d lines, want 14:\n%s", lines, out)
	}
}

func TestColorize(t *testing.T) {
	if got := colorize("f.txt", false); got != "f.txt" {
		t.Errorf("files should not be colored, got %q", got)
	}
	a := colorize("a", true)
	if !strings.HasPrefix(a, "\x1b[38;5;") || !strings.HasSuffix(a, "a\x1b[0m") {
		t.Errorf("colorize(a) = %q", a)
	}
	if colorize("a", true) != a {
		t.Error("colorize is not stable")
	}
}

func TestCount(t *testing.T) {
	out, err := runCLI(t, sampleTranscript, "count")
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	want := "Directories: 4\nFiles: 10\nTotal size: 48381165\n"
	if out != want {
		t.Errorf("count output = %q, want %q", out, want)
	}
}

func TestValidate(t *testing.T) {
	t.Run("clean", func(t *testing.T) {
		out, err := runCLI(t, sampleTranscript, "validate")
		if err != nil {
			t.Fatalf("validate failed: %v", err)
		}
		if !strings.Contains(out, "0 problems") {
			t.Errorf("unexpected output:\n%s", out)
		}
	})

	t.Run("problems", func(t *testing.T) {
		out, err := runCLI(t, "$ ls\n12x bad\n$ pwd\n$ cd new\n4 ok\n", "validate")
		if !errors.Is(err, fstree.ErrMalformedLine) || !errors.Is(err, fstree.ErrUnknownCommand) {
			t.Fatalf("error = %v, want malformed line and unknown command", err)
		}
		if !strings.Contains(err.Error(), "line 2") || !strings.Contains(err.Error(), "line 3") {
			t.Errorf("error %q should name lines 2 and 3", err)
		}
		if errors.Is(err, fstree.ErrImplicitDirectory) {
			t.Error("implicit directories are not problems")
		}
		if !strings.Contains(out, "2 problems, 1 implicit directories") {
			t.Errorf("unexpected summary:\n%s", out)
		}
		if strings.Contains(out, "note:") {
			t.Errorf("notes should only appear with --verbose:\n%s", out)
		}
	})

	t.Run("verbose notes", func(t *testing.T) {
		out, err := runCLI(t, "$ cd new\n4 ok\n", "validate", "-v")
		if err != nil {
			t.Fatalf("validate failed: %v", err)
		}
		if !strings.Contains(out, "note: line 1") {
			t.Errorf("expected a note for line 1:\n%s", out)
		}
	})
}

func TestSeed_Deterministic(t *testing.T) {
	opts := seedOptions{Dirs: 30, Files: 200, MaxSize: 1000, MaxDepth: 4, Seed: 42}

	var first, second bytes.Buffer
	if _, err := generateTranscript(&first, opts); err != nil {
		t.Fatalf("generateTranscript failed: %v", err)
	}
	if _, err := generateTranscript(&second, opts); err != nil {
		t.Fatalf("generateTranscript failed: %v", err)
	}
	if first.String() != second.String() {
		t.Error("same seed produced different transcripts")
	}

	opts.Seed = 43
	var third bytes.Buffer
	if _, err := generateTranscript(&third, opts); err != nil {
		t.Fatalf("generateTranscript failed: %v", err)
	}
	if first.String() == third.String() {
		t.Error("different seeds produced the same transcript")
	}
}

func TestSeed_ReplaysStrict(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 1 << 40} {
		opts := seedOptions{Dirs: 25, Files: 150, MaxSize: 500_000, MaxDepth: 3, Seed: seed}
		var buf bytes.Buffer
		total, err := generateTranscript(&buf, opts)
		if err != nil {
			t.Fatalf("generateTranscript failed: %v", err)
		}

		fsys, err := fstree.BuildReader(&buf, fstree.WithPolicy(fstree.Strict))
		if err != nil {
			t.Fatalf("seed %d: strict replay failed: %v", seed, err)
		}
		if fsys.Size() != total {
			t.Errorf("seed %d: tree size %d, generated %d", seed, fsys.Size(), total)
		}
		if n := fsys.Tree().Len(); n != 1+opts.Dirs+opts.Files {
			t.Errorf("seed %d: %d nodes, want %d", seed, n, 1+opts.Dirs+opts.Files)
		}
		if w := fsys.Warnings(); len(w) != 0 {
			t.Errorf("seed %d: unexpected warnings %v", seed, w)
		}
		fsys.Tree().Walk(fstree.RootID, func(id fstree.NodeID, depth int) error {
			if fsys.Tree().Kind(id) == fstree.KindDir && depth > opts.MaxDepth {
				t.Errorf("seed %d: %s is at depth %d", seed, fsys.Tree().Path(id), depth)
			}
			return nil
		})
	}
}

func TestSeed_Command(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seeded.txt")
	if _, err := runCLI(t, "", "seed", "--seed", "7", "--dirs", "5", "--files", "10", "-o", path); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "$ cd /\n$ ls\n") {
		t.Errorf("unexpected transcript start:\n%s", data)
	}

	if _, err := runCLI(t, "", "seed", "--max-size", "0"); err == nil {
		t.Error("--max-size 0 should be rejected")
	}
}

func TestMount_InvalidMountpoint(t *testing.T) {
	transcript := writeFile(t, "session.txt", sampleTranscript)

	_, err := runCLI(t, "", "mount", transcript, filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want a missing mountpoint", err)
	}

	_, err = runCLI(t, "", "mount", transcript, transcript)
	if err == nil || !strings.Contains(err.Error(), "not a directory") {
		t.Errorf("error = %v, want not a directory", err)
	}

	if _, err := runCLI(t, "", "mount", transcript); err == nil {
		t.Error("mount with one argument should fail")
	}
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "", "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "dutree version ") {
		t.Errorf("unexpected output:\n%s", out)
	}

	out, err = runCLI(t, "", "version", "--json")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	var info map[string]string
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if info["version"] == "" {
		t.Errorf("version missing from %v", info)
	}
}
