// SPDX-License-Identifier: MPL-2.0

package history

import (
	"os"
	"path/filepath"
	"testing"
)

func writeHistory(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestParseFish(t *testing.T) {
	t.Parallel()

	path := writeHistory(t, "fish_history",
		"- cmd: git status\n"+
			"  when: 1704067200\n"+
			"- cmd: cargo build\n"+
			"  when: 1704067300\n"+
			"- cmd: rg pattern\n")
	entries, err := ParseFish(path)
	if err != nil {
		t.Fatalf("ParseFish: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len = %d, want 3", len(entries))
	}
	if entries[0].Command != "git status" || entries[0].Timestamp != 1704067200 {
		t.Errorf("entry 0 = %+v", entries[0])
	}
	if entries[1].Command != "cargo build" {
		t.Errorf("entry 1 = %+v", entries[1])
	}
	if entries[2].Command != "rg pattern" || entries[2].Timestamp != 0 {
		t.Errorf("entry 2 = %+v", entries[2])
	}
}

func TestParseFishEmpty(t *testing.T) {
	t.Parallel()

	entries, err := ParseFish(writeHistory(t, "fish_history", ""))
	if err != nil || len(entries) != 0 {
		t.Errorf("empty file = (%v, %v)", entries, err)
	}
}

func TestParseBash(t *testing.T) {
	t.Parallel()

	path := writeHistory(t, ".bash_history",
		"git status\ncargo build\n# comment line\nrg pattern\n\n")
	entries, err := ParseBash(path)
	if err != nil {
		t.Fatalf("ParseBash: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len = %d, want 3: %+v", len(entries), entries)
	}
	if entries[0].Command != "git status" || entries[0].Timestamp != 0 {
		t.Errorf("entry 0 = %+v", entries[0])
	}
}

func TestParseZshSimple(t *testing.T) {
	t.Parallel()

	entries, err := ParseZsh(writeHistory(t, ".zsh_history", "git status\ncargo build\n"))
	if err != nil {
		t.Fatalf("ParseZsh: %v", err)
	}
	if len(entries) != 2 || entries[0].Command != "git status" || entries[0].Timestamp != 0 {
		t.Errorf("entries = %+v", entries)
	}
}

func TestParseZshExtended(t *testing.T) {
	t.Parallel()

	path := writeHistory(t, ".zsh_history",
		": 1704067200:0;git status\n: 1704067300:5;cargo build --release\n")
	entries, err := ParseZsh(path)
	if err != nil {
		t.Fatalf("ParseZsh: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	if entries[0].Command != "git status" || entries[0].Timestamp != 1704067200 {
		t.Errorf("entry 0 = %+v", entries[0])
	}
	if entries[1].Command != "cargo build --release" || entries[1].Timestamp != 1704067300 {
		t.Errorf("entry 1 = %+v", entries[1])
	}
}

func TestParseZshMixed(t *testing.T) {
	t.Parallel()

	path := writeHistory(t, ".zsh_history",
		": 1704067200:0;git status\nsimple command\n: 1704067300:0;cargo build\n")
	entries, err := ParseZsh(path)
	if err != nil {
		t.Fatalf("ParseZsh: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len = %d, want 3", len(entries))
	}
	if entries[0].Timestamp != 1704067200 || entries[1].Timestamp != 0 || entries[2].Timestamp != 1704067300 {
		t.Errorf("timestamps = %d %d %d", entries[0].Timestamp, entries[1].Timestamp, entries[2].Timestamp)
	}
}

func TestCountCommands(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		{Command: "git status"},
		{Command: "git commit"},
		{Command: "rg pattern"},
		{Command: "git push"},
	}
	counts := CountCommands(entries)
	if counts["git"] != 3 || counts["rg"] != 1 {
		t.Errorf("counts = %v", counts)
	}

	if got := CountCommands(nil); len(got) != 0 {
		t.Errorf("empty entries = %v", got)
	}

	onlyBuiltins := []Entry{{Command: "cd /tmp"}, {Command: "echo hello"}}
	if got := CountCommands(onlyBuiltins); len(got) != 0 {
		t.Errorf("builtins counted: %v", got)
	}
}

func TestFishPipelineFiltersBuiltins(t *testing.T) {
	t.Parallel()

	path := writeHistory(t, "fish_history",
		"- cmd: git status\n  when: 1704067200\n"+
			"- cmd: git commit -m 'test'\n  when: 1704067300\n"+
			"- cmd: cargo build\n  when: 1704067400\n"+
			"- cmd: git push\n  when: 1704067500\n"+
			"- cmd: cd /tmp\n  when: 1704067600\n")
	entries, err := ParseFish(path)
	if err != nil {
		t.Fatalf("ParseFish: %v", err)
	}
	counts := CountCommands(entries)
	if counts["git"] != 3 || counts["cargo"] != 1 {
		t.Errorf("counts = %v", counts)
	}
	if _, ok := counts["cd"]; ok {
		t.Error("cd should be filtered out")
	}
}
