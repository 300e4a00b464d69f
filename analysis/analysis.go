// Copyright © 2025 The srcscope authors

// Package analysis builds a type-scoped syntax tree from C++ and C# source.
//
// The analyzer feeds candidate statements through the grammar engine and
// maintains a stack of open scopes.  Definitions qualified with an owner
// (`int Shape::area()`) are relocated under the type node that declared
// them, which is why definition files must be analyzed after the headers
// that declare their types.  Parse problems never abort a run; they are
// recorded as degradations and the tree built so far is kept.
package analysis

import (
	"errors"
	"fmt"
	"io"

	"github.com/srcscope/srcscope/ast"
	"github.com/srcscope/srcscope/grammar"
	"github.com/srcscope/srcscope/parser/lexer"
	"github.com/srcscope/srcscope/parser/stmt"
	"github.com/srcscope/srcscope/parser/token"
)

// Config controls the behavior of the analyzer.
type Config struct {
	// Rules overrides the default grammar rule table.
	Rules []grammar.Rule

	// Log receives per-file progress and degradation notices.  When nil
	// the analyzer is silent.
	Log io.Writer
}

// Degradation records a recoverable parse problem and where it occurred.
type Degradation struct {
	Path string
	Line int
	Msg  string
}

func (d Degradation) String() string {
	return fmt.Sprintf("%s:%d: %s", d.Path, d.Line, d.Msg)
}

// Result holds the output of analysis: the scope tree rooted at the global
// scope, per-file physical line counts, and every degradation encountered.
type Result struct {
	Root         *ast.Node
	SLOC         map[string]int
	Degradations []Degradation
}

// Analyzer accumulates a scope tree across files.  Files sharing one
// Analyzer share one global scope, which is what lets a definition file
// attach members to types declared in a header.
type Analyzer struct {
	engine *grammar.Engine
	result *Result
	log    io.Writer
}

// NewAnalyzer constructs an analyzer.  It fails only when the grammar rule
// table cannot be built; every later problem degrades instead of failing.
func NewAnalyzer(cfg *Config) (*Analyzer, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	rules := cfg.Rules
	if rules == nil {
		rules = grammar.DefaultRules()
	}
	engine, err := grammar.NewFromRules(rules)
	if err != nil {
		return nil, err
	}
	log := cfg.Log
	if log == nil {
		log = io.Discard
	}
	return &Analyzer{
		engine: engine,
		log:    log,
		result: &Result{
			Root: ast.NewRoot(),
			SLOC: make(map[string]int),
		},
	}, nil
}

// AnalyzeFile parses one source file into the shared tree.  The returned
// error is always nil today; parse problems are recorded as degradations.
func (a *Analyzer) AnalyzeFile(path string, src io.Reader) error {
	dialect, ok := grammar.DialectForFile(path)
	if !ok {
		fmt.Fprintf(a.log, "skip %s: unrecognized extension\n", path)
		return nil
	}
	fmt.Fprintf(a.log, "analyze %s (%s)\n", path, dialect)

	scanner := token.NewScanner(path, src)
	lex := lexer.New(scanner)
	col := stmt.NewCollector(lex)
	b := newBuilder(a.result.Root, path, dialect, func(line int, msg string) {
		a.degrade(path, line, msg)
	})
	for {
		s, ok := col.Next()
		if !ok {
			break
		}
		if ev, ok := a.engine.Match(s, dialect); ok {
			b.apply(ev)
		}
	}
	last := lex.Line()
	if err := col.Err(); err != nil {
		// The broken literal consumed the rest of the file; scopes end at
		// the last line that parsed, not at the physical end of file.
		msg := err.Error()
		var lerr *token.LocationError
		if errors.As(err, &lerr) {
			last = lerr.Source.Line
			msg = lerr.Err.Error()
		}
		a.degrade(path, last, msg)
	}
	b.finish(last)
	a.result.SLOC[path] = lex.Line()
	return nil
}

// Result finalizes the tree and returns it.  Complexity is evaluated on
// every call so the analyzer can keep accepting files afterward.
func (a *Analyzer) Result() *Result {
	Evaluate(a.result.Root)
	return a.result
}

func (a *Analyzer) degrade(path string, line int, msg string) {
	d := Degradation{Path: path, Line: line, Msg: msg}
	a.result.Degradations = append(a.result.Degradations, d)
	fmt.Fprintf(a.log, "degraded: %s\n", d)
}
