// SPDX-License-Identifier: MPL-2.0

package invoke

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// ErrCancelled is returned when a streamed operation was killed on
// request rather than failing on its own.
var ErrCancelled = errors.New("operation cancelled")

// Run executes a planned command in the foreground, wired to the
// caller's terminal. A non-zero exit comes back as the exit code with
// a nil error only when the process itself ran.
func (c *SafeCommand) Run(ctx context.Context) (int, error) {
	cmd := exec.CommandContext(ctx, c.Program, c.Args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode(), nil
		}
		return -1, fmt.Errorf("failed to run %s: %w", c.Program, err)
	}
	return 0, nil
}

// LineKind distinguishes the stream a captured line came from.
type LineKind int

const (
	LineStdout LineKind = iota
	LineStderr
)

// OutputLine is one line of process output.
type OutputLine struct {
	Kind LineKind
	Text string
}

// Operation is a running streamed command.
type Operation struct {
	// Lines delivers process output until both pipes close.
	Lines <-chan OutputLine

	cmd     *exec.Cmd
	logPath string
	logFile *os.File

	mu        sync.Mutex
	stderr    []string
	cancelled bool
	done      bool
	err       error
	wg        *sync.WaitGroup
}

// StreamOptions configure a streamed run.
type StreamOptions struct {
	// Tool and Source annotate the log file header.
	Tool   string
	Source string
	// SudoPassword, when set and the plan needs sudo, is written once
	// to the process stdin. The command gains `-S --` so sudo reads it
	// from there instead of the terminal.
	SudoPassword string
	// LogDir overrides the default log directory. Empty means
	// <data-dir>/hoards/logs.
	LogDir string
}

// DefaultLogDir returns the directory operation logs land in.
func DefaultLogDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "hoards", "logs")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "hoards", "logs")
	}
	return filepath.Join(home, ".local", "share", "hoards", "logs")
}

// Stream starts the command with piped output. Lines appear on the
// returned operation's channel and in a timestamped log file.
func (c *SafeCommand) Stream(ctx context.Context, opts StreamOptions) (*Operation, error) {
	program, args := c.Program, c.Args
	if c.NeedsSudo() && opts.SudoPassword != "" {
		// sudo -S reads the password from stdin; -- ends sudo's own
		// option parsing before the wrapped command.
		args = append([]string{"-S", "--"}, args...)
	}

	cmd := exec.CommandContext(ctx, program, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stderr pipe: %w", err)
	}

	var stdin io.WriteCloser
	if c.NeedsSudo() && opts.SudoPassword != "" {
		stdin, err = cmd.StdinPipe()
		if err != nil {
			return nil, fmt.Errorf("failed to open stdin pipe: %w", err)
		}
	}

	logDir := opts.LogDir
	if logDir == "" {
		logDir = DefaultLogDir()
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	logName := fmt.Sprintf("%s-%s.log", opts.Tool, time.Now().UTC().Format("20060102-150405"))
	logFile, err := os.Create(filepath.Join(logDir, logName))
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}
	fmt.Fprintf(logFile, "Tool: %s\nSource: %s\nCommand: %s\nStarted: %s\nOS: %s\n\n",
		opts.Tool, opts.Source, c.Display, time.Now().UTC().Format(time.RFC3339), runtime.GOOS)

	if err := cmd.Start(); err != nil {
		logFile.Close()
		return nil, fmt.Errorf("failed to start %s: %w", program, err)
	}

	if stdin != nil {
		go func() {
			io.WriteString(stdin, opts.SudoPassword+"\n")
			stdin.Close()
		}()
	}

	lines := make(chan OutputLine, 64)
	op := &Operation{
		Lines:   lines,
		cmd:     cmd,
		logPath: logFile.Name(),
		logFile: logFile,
		wg:      &sync.WaitGroup{},
	}

	op.wg.Add(2)
	go op.consume(stdout, LineStdout, lines, opts.SudoPassword)
	go op.consume(stderr, LineStderr, lines, opts.SudoPassword)
	go func() {
		op.wg.Wait()
		close(lines)
	}()
	return op, nil
}

func (op *Operation) consume(r io.Reader, kind LineKind, lines chan<- OutputLine, password string) {
	defer op.wg.Done()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		text := scanner.Text()
		if kind == LineStderr && isSudoPromptLine(text, password) {
			continue
		}
		op.mu.Lock()
		if kind == LineStderr {
			op.stderr = append(op.stderr, text)
		}
		prefix := ""
		if kind == LineStderr {
			prefix = "[stderr] "
		}
		fmt.Fprintf(op.logFile, "%s%s\n", prefix, text)
		op.mu.Unlock()
		lines <- OutputLine{Kind: kind, Text: text}
	}
}

// isSudoPromptLine hides sudo's password prompt (and any accidental
// echo of the password) from captured output.
func isSudoPromptLine(line, password string) bool {
	if strings.Contains(line, "[sudo] password") || strings.Contains(line, "Password:") {
		return true
	}
	return password != "" && strings.Contains(line, password)
}

// Cancel kills the process. Wait will report ErrCancelled.
func (op *Operation) Cancel() {
	op.mu.Lock()
	op.cancelled = true
	op.mu.Unlock()
	if op.cmd.Process != nil {
		op.cmd.Process.Kill()
	}
}

// Wait blocks until the process exits and the output drains, then
// returns the exit code. The caller must have consumed Lines.
func (op *Operation) Wait() (int, error) {
	op.wg.Wait()

	err := op.cmd.Wait()
	code := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			code = exitErr.ExitCode()
			err = nil
		}
	}

	op.mu.Lock()
	defer op.mu.Unlock()
	op.done = true

	result := "success"
	switch {
	case op.cancelled:
		result = "cancelled"
		err = ErrCancelled
	case err != nil:
		result = "error: " + err.Error()
	case code != 0:
		result = fmt.Sprintf("exit code %d", code)
	}
	fmt.Fprintf(op.logFile, "\nResult: %s\n", result)
	op.logFile.Close()

	op.err = err
	return code, err
}

// LogPath is the operation's log file location.
func (op *Operation) LogPath() string { return op.logPath }

// StderrTail returns the most diagnostic stderr lines: lines carrying
// error markers when any exist, otherwise the final lines, capped at n.
func (op *Operation) StderrTail(n int) []string {
	op.mu.Lock()
	defer op.mu.Unlock()
	return stderrTail(op.stderr, n)
}

var errorMarkers = []string{
	"error", "failed", "cannot", "could not", "signal",
}

func stderrTail(lines []string, n int) []string {
	if n <= 0 {
		n = 15
	}
	var flagged []string
	for _, line := range lines {
		lower := strings.ToLower(line)
		for _, m := range errorMarkers {
			if strings.Contains(lower, m) {
				flagged = append(flagged, line)
				break
			}
		}
	}
	pick := flagged
	if len(pick) == 0 {
		pick = lines
	}
	if len(pick) > n {
		pick = pick[len(pick)-n:]
	}
	return pick
}
