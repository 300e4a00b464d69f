// Copyright © 2025 The srcscope authors

package grammar

import (
	"strings"

	"github.com/srcscope/srcscope/ast"
	"github.com/srcscope/srcscope/parser/stmt"
	"github.com/srcscope/srcscope/parser/token"
)

// DefaultRules returns the rule table in evaluation order.  Order matters:
// the operator-function and control-block rules must run before the
// angle-bracket disambiguation so that `operator<` and `if (a < b)` are not
// mistaken for unbalanced template syntax, and the disambiguation itself
// must run before the function and declaration rules.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:  "scope-close",
			Doc:   "a closing brace terminating the innermost open scope",
			Match: matchScopeClose,
		},
		{
			Name:  "access-label",
			Doc:   "a C++ access-specifier label such as `public:`",
			Match: matchAccessLabel,
		},
		{
			Name:  "namespace-open",
			Doc:   "a namespace definition",
			Match: matchNamespaceOpen,
		},
		{
			Name:  "type-open",
			Doc:   "a class, struct, interface or enum definition",
			Match: matchTypeOpen,
		},
		{
			Name:  "operator-function",
			Doc:   "an overloaded operator definition (checked before angle disambiguation because of operator< and friends)",
			Match: matchOperatorFunction,
		},
		{
			Name:  "control-block",
			Doc:   "a control-flow block (if/for/while/...) opening an anonymous scope",
			Match: matchControlBlock,
		},
		{
			Name:  "lambda-open",
			Doc:   "a lambda definition",
			Match: matchLambdaOpen,
		},
		{
			Name:  "angle-ambiguity",
			Doc:   "conservative fallback: a brace-opening statement whose angle brackets do not balance is treated as a declaration, never as a scope",
			Match: matchAngleAmbiguity,
		},
		{
			Name:  "function-open",
			Doc:   "a function definition, possibly qualified by an enclosing type",
			Match: matchFunctionOpen,
		},
		{
			Name:  "bare-block",
			Doc:   "any other brace-opening statement: an anonymous block",
			Match: matchBareBlock,
		},
		{
			Name:  "declaration",
			Doc:   "a data, alias, forward or prototype declaration",
			Match: matchDeclaration,
		},
	}
}

func matchScopeClose(s *stmt.Statement, d Dialect) (Event, bool) {
	if s.First() != "}" {
		return Event{}, false
	}
	return Event{Kind: EventClose}, true
}

func matchAccessLabel(s *stmt.Statement, d Dialect) (Event, bool) {
	if s.Len() != 2 || s.At(1) != ":" {
		return Event{}, false
	}
	access, ok := accessOf(s.At(0))
	if !ok {
		return Event{}, false
	}
	return Event{Kind: EventAccess, Access: access, HasAccess: true}, true
}

func matchNamespaceOpen(s *stmt.Statement, d Dialect) (Event, bool) {
	if s.Last() != "{" {
		return Event{}, false
	}
	k := s.Find("namespace")
	if k < 0 || k > 1 {
		return Event{}, false
	}
	// C# allows dotted namespace names; C++17 allows nested ones.
	name := strings.Join(s.Texts()[k+1:s.Len()-1], "")
	if name == "" {
		name = "anonymous"
	}
	return Event{Kind: EventOpen, Scope: ast.Namespace, Name: name}, true
}

var typeKeywords = map[string]ast.ScopeKind{
	"class":     ast.Class,
	"struct":    ast.Struct,
	"interface": ast.Interface,
	"enum":      ast.Enum,
}

func matchTypeOpen(s *stmt.Statement, d Dialect) (Event, bool) {
	if s.Last() != "{" {
		return Event{}, false
	}
	texts := stripTemplatePrefix(s.Texts())
	k := -1
	var kind ast.ScopeKind
	for i, t := range texts {
		if t == "(" {
			// `auto f(struct tm t)` and similar: a keyword after a paren
			// does not introduce a type scope.
			break
		}
		if tk, ok := typeKeywords[t]; ok {
			k, kind = i, tk
			break
		}
	}
	if k < 0 {
		return Event{}, false
	}
	i := k + 1
	if kind == ast.Enum && (texts[i] == "class" || texts[i] == "struct") {
		i++ // scoped enumeration
	}
	name := "anonymous"
	if i < len(texts) && isIdentText(texts[i]) {
		name = texts[i]
		i++
	}
	return Event{
		Kind:  EventOpen,
		Scope: kind,
		Name:  name,
		Bases: parseBases(texts[i:]),
	}, true
}

// parseBases extracts base-type names from the tokens between a type name
// and the opening brace.  Qualified names contribute their final segment and
// template arguments are skipped.
func parseBases(texts []string) []string {
	colon := -1
	depth := 0
	for i, t := range texts {
		depth += angleDelta(t)
		if t == ":" && depth == 0 {
			colon = i
			break
		}
	}
	if colon < 0 {
		return nil
	}
	var bases []string
	last := ""
	depth = 0
	flush := func() {
		if last != "" {
			bases = append(bases, last)
			last = ""
		}
	}
	for _, t := range texts[colon+1:] {
		if d := angleDelta(t); d != 0 {
			depth += d
			continue
		}
		if depth != 0 {
			continue
		}
		switch t {
		case "{", "where":
			flush()
			return bases
		case ",":
			flush()
		case "public", "protected", "private", "virtual", "::", ".":
			// base-clause noise
		default:
			if isIdentText(t) {
				last = t
			}
		}
	}
	flush()
	return bases
}

func matchOperatorFunction(s *stmt.Statement, d Dialect) (Event, bool) {
	if s.Last() != "{" || d != Cpp {
		return Event{}, false
	}
	p := s.Find("operator")
	if p < 0 || !s.Contains("(") {
		return Event{}, false
	}
	name := "operator" + s.At(p+1)
	texts := s.Texts()
	return Event{
		Kind:      EventOpen,
		Scope:     ast.Function,
		Name:      name,
		Qualifier: qualifierBefore(texts, p),
		Toks:      texts,
	}, true
}

var controlKeywords = map[string]bool{
	"if": true, "else": true, "for": true, "while": true, "switch": true,
	"do": true, "try": true, "catch": true, "finally": true,
	"foreach": true, "lock": true, "using": true, "fixed": true,
	"checked": true, "unsafe": true,
}

func matchControlBlock(s *stmt.Statement, d Dialect) (Event, bool) {
	if s.Last() != "{" || !controlKeywords[s.First()] {
		return Event{}, false
	}
	return Event{Kind: EventOpen, Scope: ast.Block, Name: s.First()}, true
}

func matchLambdaOpen(s *stmt.Statement, d Dialect) (Event, bool) {
	if s.Last() != "{" {
		return Event{}, false
	}
	texts := s.Texts()
	if d == CSharp {
		if s.Contains("=>") {
			return Event{Kind: EventOpen, Scope: ast.Lambda, Name: "lambda", Toks: texts}, true
		}
		return Event{}, false
	}
	for i, t := range texts {
		if t != "[" {
			continue
		}
		j := matchingBracket(texts, i)
		if j < 0 || j+1 >= len(texts) {
			continue
		}
		// A capture list is followed by a parameter list or the body; an
		// array declarator is followed by `=` or `;` and declines here.
		if texts[j+1] == "(" || texts[j+1] == "{" {
			return Event{Kind: EventOpen, Scope: ast.Lambda, Name: "lambda", Toks: texts}, true
		}
	}
	return Event{}, false
}

func matchAngleAmbiguity(s *stmt.Statement, d Dialect) (Event, bool) {
	if s.Last() != "{" {
		return Event{}, false
	}
	depth := 0
	for _, t := range s.Texts() {
		depth += angleDelta(t)
	}
	if depth == 0 {
		return Event{}, false
	}
	// Unbalanced angle brackets: relational operators and template brackets
	// cannot be told apart here.  Treating the statement as a declaration is
	// wrong for some inputs but never wedges the scope stack.
	return Event{Kind: EventDecl, Decl: ast.DeclData, Toks: s.Texts()}, true
}

func matchFunctionOpen(s *stmt.Statement, d Dialect) (Event, bool) {
	if s.Last() != "{" {
		return Event{}, false
	}
	texts := s.Texts()
	p := -1
	for i, t := range texts {
		if t == "(" {
			p = i
			break
		}
	}
	if p <= 0 {
		return Event{}, false
	}
	i := p - 1
	if texts[i] == ">" {
		// generic method: name < T > ( ... )
		i = backSkipAngles(texts, i)
		if i < 0 {
			return Event{}, false
		}
	}
	if !isIdentText(texts[i]) {
		return Event{}, false
	}
	name := texts[i]
	if i > 0 && texts[i-1] == "~" {
		name = "~" + name
		i--
	}
	return Event{
		Kind:      EventOpen,
		Scope:     ast.Function,
		Name:      name,
		Qualifier: qualifierBefore(texts, i),
		Toks:      texts,
	}, true
}

func matchBareBlock(s *stmt.Statement, d Dialect) (Event, bool) {
	if s.Last() != "{" {
		return Event{}, false
	}
	return Event{Kind: EventOpen, Scope: ast.Block, Name: "anonymous"}, true
}

var stmtKeywords = map[string]bool{
	"return": true, "break": true, "continue": true, "goto": true,
	"throw": true, "delete": true, "case": true, "default": true,
	"else": true, "do": true, "yield": true, "new": true,
}

func matchDeclaration(s *stmt.Statement, d Dialect) (Event, bool) {
	if s.Last() != ";" || s.Len() < 3 {
		return Event{}, false
	}
	first := s.First()
	if stmtKeywords[first] {
		return Event{}, false
	}
	texts := s.Texts()
	ev := Event{Kind: EventDecl, Toks: texts}
	if access, ok := accessOf(first); ok {
		ev.Access = access
		ev.HasAccess = true
	}
	switch {
	case first == "typedef":
		ev.Decl = ast.DeclTypeAlias
		return ev, true
	case first == "using":
		if s.Contains("=") {
			ev.Decl = ast.DeclTypeAlias
		} else {
			ev.Decl = ast.DeclUsing
		}
		return ev, true
	case isForwardDecl(texts):
		ev.Decl = ast.DeclForward
		return ev, true
	case !looksLikeDecl(s):
		return Event{}, false
	case beforeAssign(texts, "("):
		ev.Decl = ast.DeclFunc
		return ev, true
	default:
		ev.Decl = ast.DeclData
		return ev, true
	}
}

// isForwardDecl matches `class Foo ;` style forward declarations, allowing
// one leading modifier such as `friend`.
func isForwardDecl(texts []string) bool {
	for k := 0; k < 2 && k < len(texts); k++ {
		if _, ok := typeKeywords[texts[k]]; !ok {
			continue
		}
		return len(texts) == k+3 && isIdentText(texts[k+1])
	}
	return false
}

// looksLikeDecl requires the shape of a declarator: an identifier preceded
// either by another identifier (its type) or by a pointer/reference/template
// closer with an identifier further left.  Plain expression statements such
// as `x = y;` or `f(x);` fail this test and are invisible to the builder.
func looksLikeDecl(s *stmt.Statement) bool {
	toks := s.Toks
	for i := 1; i < len(toks); i++ {
		if toks[i].Type != token.IDENT {
			continue
		}
		prev := toks[i-1]
		if prev.Type == token.IDENT && !stmtKeywords[prev.Text] {
			return true
		}
		switch prev.Text {
		case ">", "*", "&":
			for j := 0; j < i-1; j++ {
				if toks[j].Type == token.IDENT {
					return true
				}
			}
		}
	}
	return false
}

// beforeAssign reports whether text appears before any `=` token.
func beforeAssign(texts []string, text string) bool {
	for _, t := range texts {
		if t == "=" {
			return false
		}
		if t == text {
			return true
		}
	}
	return false
}

func accessOf(text string) (ast.Access, bool) {
	switch text {
	case "public":
		return ast.Public, true
	case "protected", "internal":
		return ast.Protected, true
	case "private":
		return ast.Private, true
	}
	return 0, false
}

// qualifierBefore collects the chain of `Owner::` qualifiers ending just
// before texts[i], outermost first.
func qualifierBefore(texts []string, i int) []string {
	var qual []string
	for i-2 >= 0 && texts[i-1] == "::" {
		j := i - 2
		if texts[j] == ">" {
			j = backSkipAngles(texts, j)
			if j < 0 {
				break
			}
		}
		if !isIdentText(texts[j]) {
			break
		}
		qual = append([]string{texts[j]}, qual...)
		i = j
	}
	return qual
}

// stripTemplatePrefix removes a leading `template < ... >` clause.  When the
// clause never balances the texts are returned unchanged and the
// angle-ambiguity rule decides the statement's fate.
func stripTemplatePrefix(texts []string) []string {
	if len(texts) < 3 || texts[0] != "template" || texts[1] != "<" {
		return texts
	}
	depth := 0
	for i := 1; i < len(texts); i++ {
		depth += angleDelta(texts[i])
		if depth == 0 {
			return texts[i+1:]
		}
	}
	return texts
}

// backSkipAngles returns the index of the token preceding the `<` that
// matches the `>` at texts[i], or -1 when the brackets do not balance.
func backSkipAngles(texts []string, i int) int {
	depth := 0
	for ; i >= 0; i-- {
		depth -= angleDelta(texts[i])
		if depth == 0 {
			return i - 1
		}
	}
	return -1
}

// angleDelta maps a token to its angle-bracket nesting contribution.  The
// C++11 `>>` close of nested templates counts twice; shift operators in
// ordinary expressions are miscounted by design (see the package comment).
func angleDelta(t string) int {
	switch t {
	case "<":
		return 1
	case ">":
		return -1
	case ">>":
		return -2
	}
	return 0
}

// matchingBracket returns the index of the `]` matching the `[` at texts[i].
func matchingBracket(texts []string, i int) int {
	depth := 0
	for ; i < len(texts); i++ {
		switch texts[i] {
		case "[":
			depth++
		case "]":
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func isIdentText(t string) bool {
	if t == "" {
		return false
	}
	c := rune(t[0])
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
