// Copyright © 2025 The srcscope authors

package explore

import "strings"

var commandNames = []string{
	"types", "show", "deps", "metrics", "public", "files", "summary",
	"help", "exit", "quit",
}

// queryCompleter implements readline.AutoCompleter over the shell's
// commands and analyzed type names.
type queryCompleter struct {
	shell *Shell
}

func (c *queryCompleter) Do(line []rune, pos int) ([][]rune, int) {
	start := pos
	for start > 0 {
		ch := line[start-1]
		if ch == ' ' || ch == '\t' {
			break
		}
		start--
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}

	// the first word is a command, later words name types
	candidates := commandNames
	if start > 0 {
		candidates = c.shell.typeNames()
	}

	var result [][]rune
	for _, cand := range candidates {
		if strings.HasPrefix(cand, prefix) {
			result = append(result, []rune(cand[len(prefix):]))
		}
	}
	return result, len(prefix)
}
