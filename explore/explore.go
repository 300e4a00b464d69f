// Copyright © 2025 The srcscope authors

// Package explore provides an interactive shell for poking at a completed
// analysis: listing types, viewing subtrees, and following dependencies.
package explore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ergochat/readline"

	"github.com/srcscope/srcscope/analysis"
	"github.com/srcscope/srcscope/ast"
	"github.com/srcscope/srcscope/deps"
	"github.com/srcscope/srcscope/report"
)

type config struct {
	stdin  io.ReadCloser
	stderr io.WriteCloser
}

func newConfig(opts ...Option) *config {
	config := &config{}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

type Option func(*config)

// WithStdin allows overriding the input to the shell.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStderr allows overriding the output of the shell.
func WithStderr(stderr io.WriteCloser) Option {
	return func(c *config) {
		c.stderr = stderr
	}
}

// Shell holds the state one interactive session queries.
type Shell struct {
	res    *analysis.Result
	graph  *deps.Graph
	limits report.Limits
	out    io.Writer
}

// NewShell prepares a shell over a completed analysis.
func NewShell(res *analysis.Result, graph *deps.Graph) *Shell {
	return &Shell{
		res:    res,
		graph:  graph,
		limits: report.DefaultLimits,
		out:    os.Stderr,
	}
}

// Run reads commands until EOF or exit.
func (s *Shell) Run(prompt string, opts ...Option) error {
	cfg := newConfig(opts...)
	if cfg.stderr != nil {
		s.out = cfg.stderr
	}

	histFile := historyPath()
	ensureHistoryFilePermissions(histFile)
	rlCfg := &readline.Config{
		Stdout:            s.out,
		Stderr:            s.out,
		Prompt:            prompt,
		HistoryFile:       histFile,
		HistorySearchFold: true,
		AutoComplete:      &queryCompleter{shell: s},
	}
	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return err
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	for {
		line, err := rl.ReadLine()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !s.Eval(line) {
			return nil
		}
	}
}

// Eval executes one command line.  It returns false when the session
// should end.
func (s *Shell) Eval(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "types":
		s.types()
	case "show":
		if len(args) != 1 {
			fmt.Fprintln(s.out, "usage: show <name>")
			break
		}
		s.show(args[0])
	case "deps":
		if len(args) > 0 {
			s.depsFor(args[0])
			break
		}
		report.Relations(s.out, s.graph)
	case "files":
		report.SLOC(s.out, s.res)
	case "metrics":
		report.Metrics(s.out, s.res)
	case "public":
		report.PublicData(s.out, s.res)
	case "summary":
		report.Summary(s.out, s.res, s.limits)
	case "help":
		s.help()
	case "exit", "quit":
		return false
	default:
		fmt.Fprintf(s.out, "unknown command %q; try help\n", cmd)
	}
	return true
}

func (s *Shell) types() {
	names := s.typeNames()
	for _, name := range names {
		fmt.Fprintln(s.out, name)
	}
	if len(names) == 0 {
		fmt.Fprintln(s.out, "no types")
	}
}

func (s *Shell) show(name string) {
	node := s.findNode(name)
	if node == nil {
		fmt.Fprintf(s.out, "no scope named %q\n", name)
		return
	}
	report.Tree(s.out, node)
}

func (s *Shell) depsFor(name string) {
	node := s.findNode(name)
	if node == nil {
		fmt.Fprintf(s.out, "no scope named %q\n", name)
		return
	}
	rels := s.graph.From(node)
	if len(rels) == 0 {
		fmt.Fprintf(s.out, "%s has no outgoing relations\n", node.Name)
		return
	}
	for _, r := range rels {
		fmt.Fprintf(s.out, "%s %s %s\n", r.From.Name, r.Kind, r.To.Name)
	}
}

func (s *Shell) help() {
	fmt.Fprint(s.out, `commands:
  types          list analyzed types
  show <name>    print the scope subtree of a type or function
  deps [name]    print dependency relations, optionally for one type
  metrics        per-scope size and complexity table
  public         public data declarations
  files          per-file line counts
  summary        run totals and limit violations
  exit           leave the shell
`)
}

func (s *Shell) findNode(name string) *ast.Node {
	var found *ast.Node
	ast.Walk(s.res.Root, func(n *ast.Node, _ int) {
		if found == nil && n.Name == name && n.Kind != ast.Block {
			found = n
		}
	})
	return found
}

func (s *Shell) typeNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, t := range s.graph.Types {
		if !seen[t.Name] {
			seen[t.Name] = true
			names = append(names, t.Name)
		}
	}
	sort.Strings(names)
	return names
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".srcscope_history")
}

// ensureHistoryFilePermissions keeps the history file private.
func ensureHistoryFilePermissions(path string) {
	if path == "" {
		return
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return
		}
		f.Close() //nolint:errcheck // best-effort cleanup
		return
	}
	_ = os.Chmod(path, 0o600)
}
