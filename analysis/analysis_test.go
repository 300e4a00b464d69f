// Copyright © 2025 The srcscope authors

package analysis_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srcscope/srcscope/analysis"
	"github.com/srcscope/srcscope/ast"
)

type srcFile struct {
	path string
	text string
}

func analyze(t *testing.T, files ...srcFile) *analysis.Result {
	t.Helper()
	a, err := analysis.NewAnalyzer(nil)
	require.NoError(t, err)
	for _, f := range files {
		require.NoError(t, a.AnalyzeFile(f.path, strings.NewReader(f.text)))
	}
	return a.Result()
}

const shapeHeader = `
class Shape {
public:
	int area() const;
private:
	double w_;
	double h_;
};
`

const shapeImpl = `
#include "shape.h"

int Shape::area() const {
	return w_ * h_;
}
`

func TestCrossFileRelocation(t *testing.T) {
	res := analyze(t,
		srcFile{"shape.h", shapeHeader},
		srcFile{"shape.cpp", shapeImpl},
	)
	require.Empty(t, res.Degradations)

	shape := res.Root.FindChild("Shape", ast.Class)
	require.NotNil(t, shape)
	area := shape.FindChild("area", ast.Function)
	require.NotNil(t, area, "definition should attach under the declaring class")
	assert.Empty(t, res.Root.FindChild("area", ast.Function))

	assert.Equal(t, 2, shape.Complexity)
	assert.Equal(t, 1, area.Complexity)
	assert.Equal(t, 4, area.StartLine)
	assert.Equal(t, 6, area.EndLine)
}

func TestRelocationOwnerMissing(t *testing.T) {
	res := analyze(t, srcFile{"orphan.cpp", "int Widget::size() {\nreturn 0;\n}\n"})
	require.Len(t, res.Degradations, 1)
	assert.Contains(t, res.Degradations[0].Msg, "Widget")

	// the definition still lands in the tree, at the scope it appeared in
	size := res.Root.FindChild("size", ast.Function)
	require.NotNil(t, size)
}

func TestNamespaceQualifiedRelocation(t *testing.T) {
	hdr := `
namespace geo {
class Shape {
public:
	void reset();
};
}
`
	impl := "void geo::Shape::reset() {\n}\n"
	res := analyze(t, srcFile{"geo.h", hdr}, srcFile{"geo.cpp", impl})
	require.Empty(t, res.Degradations)

	ns := res.Root.FindChild("geo", ast.Namespace)
	require.NotNil(t, ns)
	shape := ns.FindChild("Shape", ast.Class)
	require.NotNil(t, shape)
	reset := shape.FindChild("reset", ast.Function)
	require.NotNil(t, reset)
	assert.Equal(t, "geo", reset.Package)
}

func TestComplexity(t *testing.T) {
	src := `
namespace app {
class Runner {
public:
	void run() {
		for (int i = 0; i < 3; ++i) {
			if (i > 0) {
				step();
			}
		}
	}
	void stop() {
	}
};
}
`
	res := analyze(t, srcFile{"runner.cpp", src})
	require.Empty(t, res.Degradations)

	ns := res.Root.FindChild("app", ast.Namespace)
	require.NotNil(t, ns)
	runner := ns.FindChild("Runner", ast.Class)
	require.NotNil(t, runner)

	// control blocks do not count toward complexity
	assert.Equal(t, 1, runner.FindChild("run", ast.Function).Complexity)
	assert.Equal(t, 1, runner.FindChild("stop", ast.Function).Complexity)
	assert.Equal(t, 3, runner.Complexity)
	assert.Equal(t, 4, ns.Complexity)
}

func TestLambdaComplexity(t *testing.T) {
	src := `
void apply() {
	auto f = [](int x) {
		return x + 1;
	};
}
`
	res := analyze(t, srcFile{"apply.cpp", src})
	apply := res.Root.FindChild("apply", ast.Function)
	require.NotNil(t, apply)
	assert.Equal(t, 2, apply.Complexity)
}

func TestCSharpInline(t *testing.T) {
	src := `
namespace Acme.Widgets {
public interface IShape {
	double Area();
}
public class Circle : IShape {
	private double radius;
	public double Area() {
		return 3.14 * radius * radius;
	}
}
}
`
	res := analyze(t, srcFile{"circle.cs", src})
	require.Empty(t, res.Degradations)

	ns := res.Root.FindChild("Acme.Widgets", ast.Namespace)
	require.NotNil(t, ns)
	circle := ns.FindChild("Circle", ast.Class)
	require.NotNil(t, circle)
	assert.Equal(t, []string{"IShape"}, circle.Bases)
	assert.Equal(t, "Acme.Widgets", circle.Package)

	require.Len(t, circle.Decls, 1)
	assert.Equal(t, ast.Private, circle.Decls[0].Access)
}

func TestAccessTracking(t *testing.T) {
	src := `
class Box {
	int hidden_;
public:
	int open_;
	int also_open_;
private:
	int closed_;
};
struct Bag {
	int contents_;
};
`
	res := analyze(t, srcFile{"box.h", src})
	box := res.Root.FindChild("Box", ast.Class)
	require.NotNil(t, box)
	require.Len(t, box.Decls, 4)
	assert.Equal(t, ast.Private, box.Decls[0].Access)
	assert.Equal(t, ast.Public, box.Decls[1].Access)
	assert.Equal(t, ast.Public, box.Decls[2].Access)
	assert.Equal(t, ast.Private, box.Decls[3].Access)

	bag := res.Root.FindChild("Bag", ast.Struct)
	require.NotNil(t, bag)
	require.Len(t, bag.Decls, 1)
	assert.Equal(t, ast.Public, bag.Decls[0].Access)
}

func TestUnterminatedLiteralDegrades(t *testing.T) {
	src := "class A {\nvoid f() {\nconst char* s = \"oops;\n"
	res := analyze(t, srcFile{"bad.cpp", src})

	// everything built before the bad literal survives
	a := res.Root.FindChild("A", ast.Class)
	require.NotNil(t, a)
	f := a.FindChild("f", ast.Function)
	require.NotNil(t, f)

	require.NotEmpty(t, res.Degradations)
	var sawLiteral bool
	for _, d := range res.Degradations {
		if strings.Contains(d.Msg, "unterminated") {
			sawLiteral = true
		}
	}
	assert.True(t, sawLiteral, "degradations: %v", res.Degradations)

	// scopes left open end where the bad literal began
	assert.Equal(t, 3, f.EndLine)
	assert.Equal(t, 3, a.EndLine)
}

func TestDegradedScopesEndAtBadLiteral(t *testing.T) {
	src := "class A {\nvoid f() {\nint x;\nconst char* s = \"oops;\nint unreached;\nreturn;\n}\n}"
	res := analyze(t, srcFile{"bad.cpp", src})

	a := res.Root.FindChild("A", ast.Class)
	require.NotNil(t, a)
	f := a.FindChild("f", ast.Function)
	require.NotNil(t, f)

	// the literal consumed lines 4-8; no end line may pass line 4
	assert.LessOrEqual(t, f.EndLine, 4)
	assert.LessOrEqual(t, a.EndLine, 4)

	require.NotEmpty(t, res.Degradations)
	var litLine int
	for _, d := range res.Degradations {
		if strings.Contains(d.Msg, "unterminated") {
			litLine = d.Line
		}
	}
	assert.Equal(t, 4, litLine)

	// the physical line count still covers the whole file
	assert.Equal(t, 8, res.SLOC["bad.cpp"])
}

func TestUnmatchedCloseDegrades(t *testing.T) {
	res := analyze(t, srcFile{"extra.cpp", "}\n"})
	require.Len(t, res.Degradations, 1)
	assert.Contains(t, res.Degradations[0].Msg, "unmatched")
}

func TestReopenedNamespaceMerges(t *testing.T) {
	res := analyze(t,
		srcFile{"a.h", "namespace util {\nclass A {\n};\n}\n"},
		srcFile{"b.h", "namespace util {\nclass B {\n};\n}\n"},
	)
	ns := res.Root.FindChild("util", ast.Namespace)
	require.NotNil(t, ns)
	assert.NotNil(t, ns.FindChild("A", ast.Class))
	assert.NotNil(t, ns.FindChild("B", ast.Class))
	count := 0
	for _, c := range res.Root.Children {
		if c.Kind == ast.Namespace && c.Name == "util" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestSLOC(t *testing.T) {
	res := analyze(t, srcFile{"three.h", "class T {\n};\n"})
	assert.Equal(t, map[string]int{"three.h": 3}, res.SLOC)
}

func TestRunOrdersHeadersFirst(t *testing.T) {
	open := func(_ context.Context, path string) (io.ReadCloser, error) {
		switch path {
		case "shape.h":
			return io.NopCloser(strings.NewReader(shapeHeader)), nil
		case "shape.cpp":
			return io.NopCloser(strings.NewReader(shapeImpl)), nil
		}
		panic("unexpected path " + path)
	}
	var log bytes.Buffer
	res, err := analysis.Run(context.Background(), &analysis.Config{Log: &log},
		[]string{"shape.cpp", "shape.h"}, open, nil)
	require.NoError(t, err)
	require.Empty(t, res.Degradations)

	shape := res.Root.FindChild("Shape", ast.Class)
	require.NotNil(t, shape)
	assert.NotNil(t, shape.FindChild("area", ast.Function))
	assert.Less(t,
		strings.Index(log.String(), "shape.h"),
		strings.Index(log.String(), "shape.cpp"))
}

func TestOrderFiles(t *testing.T) {
	got := analysis.OrderFiles([]string{"x.cs", "b.cpp", "a.h", "c.cc", "d.hpp"})
	assert.Equal(t, []string{"a.h", "d.hpp", "b.cpp", "c.cc", "x.cs"}, got)
}

func TestRunSkipsUnopenableFile(t *testing.T) {
	open := func(_ context.Context, path string) (io.ReadCloser, error) {
		return nil, io.ErrUnexpectedEOF
	}
	var log bytes.Buffer
	res, err := analysis.Run(context.Background(), &analysis.Config{Log: &log},
		[]string{"gone.h"}, open, nil)
	require.NoError(t, err)
	require.Len(t, res.Degradations, 1)
	assert.Contains(t, log.String(), "skip gone.h")
}
