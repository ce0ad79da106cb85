// SPDX-License-Identifier: MPL-2.0

package invoke

import (
	"context"
	"os"
	"strings"
	"testing"
)

func TestStreamCapturesOutputAndLog(t *testing.T) {
	t.Parallel()

	cmd := newSafeCommand("sh", "-c", "echo out line; echo err line 1>&2")
	op, err := cmd.Stream(context.Background(), StreamOptions{
		Tool:   "demo",
		Source: "manual",
		LogDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}

	var stdout, stderr []string
	for line := range op.Lines {
		switch line.Kind {
		case LineStdout:
			stdout = append(stdout, line.Text)
		case LineStderr:
			stderr = append(stderr, line.Text)
		}
	}
	code, err := op.Wait()
	if err != nil || code != 0 {
		t.Fatalf("Wait = (%d, %v)", code, err)
	}

	if len(stdout) != 1 || stdout[0] != "out line" {
		t.Errorf("stdout = %v", stdout)
	}
	if len(stderr) != 1 || stderr[0] != "err line" {
		t.Errorf("stderr = %v", stderr)
	}

	data, err := os.ReadFile(op.LogPath())
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	log := string(data)
	for _, want := range []string{"Tool: demo", "Source: manual", "out line", "[stderr] err line", "Result: success"} {
		if !strings.Contains(log, want) {
			t.Errorf("log missing %q:\n%s", want, log)
		}
	}
}

func TestStreamNonZeroExit(t *testing.T) {
	t.Parallel()

	cmd := newSafeCommand("sh", "-c", "echo boom: failed to frob 1>&2; exit 3")
	op, err := cmd.Stream(context.Background(), StreamOptions{Tool: "demo", LogDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	for range op.Lines {
	}
	code, err := op.Wait()
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if code != 3 {
		t.Errorf("code = %d, want 3", code)
	}

	tail := op.StderrTail(5)
	if len(tail) != 1 || !strings.Contains(tail[0], "failed") {
		t.Errorf("tail = %v", tail)
	}

	data, _ := os.ReadFile(op.LogPath())
	if !strings.Contains(string(data), "Result: exit code 3") {
		t.Errorf("log footer missing exit code:\n%s", data)
	}
}

func TestRunForeground(t *testing.T) {
	t.Parallel()

	code, err := newSafeCommand("sh", "-c", "exit 0").Run(context.Background())
	if err != nil || code != 0 {
		t.Errorf("Run = (%d, %v)", code, err)
	}
	code, err = newSafeCommand("sh", "-c", "exit 7").Run(context.Background())
	if err != nil || code != 7 {
		t.Errorf("Run = (%d, %v), want exit 7", code, err)
	}
}

func TestStderrTailSelection(t *testing.T) {
	t.Parallel()

	lines := []string{
		"downloading",
		"Error: permission denied",
		"retrying",
		"build failed",
	}
	tail := stderrTail(lines, 15)
	if len(tail) != 2 {
		t.Fatalf("tail = %v, want the two flagged lines", tail)
	}
	if !strings.Contains(tail[0], "Error") || !strings.Contains(tail[1], "failed") {
		t.Errorf("tail = %v", tail)
	}

	// Nothing flagged: fall back to the last lines.
	quiet := []string{"a", "b", "c"}
	tail = stderrTail(quiet, 2)
	if len(tail) != 2 || tail[0] != "b" || tail[1] != "c" {
		t.Errorf("fallback tail = %v", tail)
	}
}

func TestSudoPromptMasking(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want bool
	}{
		{"[sudo] password for alice:", true},
		{"Password:", true},
		{"echoed hunter2 somewhere", true},
		{"ordinary stderr output", false},
	}
	for _, tt := range tests {
		if got := isSudoPromptLine(tt.line, "hunter2"); got != tt.want {
			t.Errorf("isSudoPromptLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
	if isSudoPromptLine("ordinary", "") {
		t.Error("empty password must not match everything")
	}
}
