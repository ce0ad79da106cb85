// SPDX-License-Identifier: MPL-2.0

package history

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Wrappers whose real command is the next word.
var commandWrappers = []string{"sudo ", "env ", "time ", "command "}

// Shell builtins and flow-control words that are not tools.
var builtins = map[string]bool{
	"cd": true, "ls": true, "echo": true, "export": true, "set": true,
	"unset": true, "alias": true, "source": true, "if": true,
	"then": true, "else": true, "fi": true, "for": true, "do": true,
	"done": true, "while": true, "case": true, "esac": true,
	"function": true, "return": true, "exit": true, "true": true,
	"false": true, "test": true, "[": true, "[[": true, "pwd": true,
	"pushd": true, "popd": true, "dirs": true, "history": true,
	"clear": true,
}

// ExtractCommand pulls the base tool name out of a history line:
// wrapper prefixes stripped, first word taken, leading path removed,
// builtins dropped.
func ExtractCommand(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}
	for _, w := range commandWrappers {
		if rest, ok := strings.CutPrefix(line, w); ok {
			line = rest
			break
		}
	}

	cmd := firstWord(line)
	if cmd == "" {
		return "", false
	}
	if i := strings.LastIndexByte(cmd, '/'); i >= 0 {
		cmd = cmd[i+1:]
	}
	if cmd == "" || builtins[cmd] {
		return "", false
	}
	return cmd, true
}

// firstWord finds the command word of the first call in the line. The
// shell parser handles quoting and compound statements; lines it cannot
// parse (history truncation, fish syntax) fall back to a whitespace
// split.
func firstWord(line string) string {
	file, err := syntax.NewParser().Parse(strings.NewReader(line), "")
	if err != nil {
		return splitFirst(line)
	}
	var first string
	syntax.Walk(file, func(node syntax.Node) bool {
		if first != "" {
			return false
		}
		if call, ok := node.(*syntax.CallExpr); ok && len(call.Args) > 0 {
			if lit := literalWord(call.Args[0]); lit != "" {
				first = lit
				return false
			}
		}
		return true
	})
	if first == "" {
		return splitFirst(line)
	}
	return first
}

// literalWord flattens a word's literal and quoted parts to plain
// text. Words with expansions yield "".
func literalWord(w *syntax.Word) string {
	var b strings.Builder
	for _, part := range w.Parts {
		switch p := part.(type) {
		case *syntax.Lit:
			b.WriteString(p.Value)
		case *syntax.SglQuoted:
			b.WriteString(p.Value)
		case *syntax.DblQuoted:
			for _, inner := range p.Parts {
				lit, ok := inner.(*syntax.Lit)
				if !ok {
					return ""
				}
				b.WriteString(lit.Value)
			}
		default:
			return ""
		}
	}
	return b.String()
}

func splitFirst(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
