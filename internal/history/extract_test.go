// SPDX-License-Identifier: MPL-2.0

package history

import "testing"

func TestExtractCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		cmd  string
		ok   bool
	}{
		{"git status", "git", true},
		{"cargo build", "cargo", true},
		{"rg pattern file.rs", "rg", true},
		// Wrapper prefixes.
		{"sudo apt update", "apt", true},
		{"sudo docker ps", "docker", true},
		{"env cargo test", "cargo", true},
		{"time cargo build --release", "cargo", true},
		{"command git log", "git", true},
		// Path prefixes.
		{"/usr/bin/rg pattern", "rg", true},
		{"/home/user/.cargo/bin/cargo build", "cargo", true},
		{"./local-script.sh", "local-script.sh", true},
		// Builtins.
		{"cd /tmp", "", false},
		{"echo hello", "", false},
		{"export PATH=$PATH:/foo", "", false},
		{"if true", "", false},
		{"for i in 1 2 3", "", false},
		// Whitespace handling.
		{"  git status  ", "git", true},
		{"\tfd pattern", "fd", true},
		{"", "", false},
		{"   ", "", false},
		// Shell structure: pipes and quoting resolve to the first call.
		{"git log | head -5", "git", true},
		{`"git" status`, "git", true},
	}
	for _, tt := range tests {
		cmd, ok := ExtractCommand(tt.line)
		if cmd != tt.cmd || ok != tt.ok {
			t.Errorf("ExtractCommand(%q) = (%q, %v), want (%q, %v)", tt.line, cmd, ok, tt.cmd, tt.ok)
		}
	}
}

func TestParseAliasLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line   string
		name   string
		target string
		ok     bool
	}{
		{"alias ls='eza -la --git'", "ls", "eza", true},
		{`alias cat="bat --paging=never"`, "cat", "bat", true},
		{"alias grep=rg", "grep", "rg", true},
		{"  alias gs='git status'", "gs", "git", true},
		{"alias vim=/usr/local/bin/nvim", "vim", "nvim", true},
		{"export EDITOR=vim", "", "", false},
		{"# alias ls='eza'", "", "", false},
		{"ls -la", "", "", false},
	}
	for _, tt := range tests {
		name, target, ok := parseAliasLine(tt.line)
		if name != tt.name || target != tt.target || ok != tt.ok {
			t.Errorf("parseAliasLine(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.line, name, target, ok, tt.name, tt.target, tt.ok)
		}
	}
}

func TestParseAliasesFile(t *testing.T) {
	t.Parallel()

	path := writeHistory(t, ".bash_aliases",
		"# my aliases\n"+
			"alias ls='eza'\n"+
			"alias cat='bat'\n"+
			"unrelated line\n"+
			"alias ll='eza -la'\n")
	aliases, err := ParseAliases(path)
	if err != nil {
		t.Fatalf("ParseAliases: %v", err)
	}
	want := map[string]string{"ls": "eza", "cat": "bat", "ll": "eza"}
	if len(aliases) != len(want) {
		t.Fatalf("aliases = %v, want %v", aliases, want)
	}
	for name, target := range want {
		if aliases[name] != target {
			t.Errorf("aliases[%q] = %q, want %q", name, aliases[name], target)
		}
	}
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	counts := map[string]int64{
		"cat":  20,
		"grep": 15,
		"find": 8,
		"fd":   12, // modern already in regular use
		"ls":   30,
	}
	aliases := map[string]string{"grep": "rg"} // already redirected

	got := Suggest(counts, aliases)
	names := make(map[string]int64, len(got))
	for _, s := range got {
		names[s.Traditional] = s.Uses
	}
	if names["cat"] != 20 {
		t.Errorf("cat suggestion missing: %v", got)
	}
	if names["ls"] != 30 {
		t.Errorf("ls suggestion missing: %v", got)
	}
	if _, ok := names["grep"]; ok {
		t.Error("aliased tool should be suppressed")
	}
	if _, ok := names["find"]; ok {
		t.Error("heavy direct fd use should suppress the find suggestion")
	}
}

func TestCountSuggestible(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		{Command: "ls -la"},
		{Command: "ls"},
		{Command: "cat notes.txt"},
		{Command: "git status"}, // not in the table
		{Command: "/bin/cat other.txt"},
	}
	counts := CountSuggestible(entries)
	if counts["ls"] != 2 || counts["cat"] != 2 {
		t.Errorf("counts = %v", counts)
	}
	if _, ok := counts["git"]; ok {
		t.Error("untabled commands should not be counted")
	}
}
