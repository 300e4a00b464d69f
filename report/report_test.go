// Copyright © 2025 The srcscope authors

package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/srcscope/srcscope/analysis"
	"github.com/srcscope/srcscope/deps"
	"github.com/srcscope/srcscope/report"
)

const carHeader = `
class Engine {
};

class Car : public Engine {
public:
	int doors;
	void drive() {
	}
private:
	Engine* engine_;
};
`

func carResult(t *testing.T) *analysis.Result {
	t.Helper()
	a, err := analysis.NewAnalyzer(nil)
	require.NoError(t, err)
	require.NoError(t, a.AnalyzeFile("car.h", strings.NewReader(carHeader)))
	return a.Result()
}

func TestMetrics(t *testing.T) {
	var buf bytes.Buffer
	report.Metrics(&buf, carResult(t))
	out := buf.String()
	assert.Contains(t, out, "Car")
	assert.Contains(t, out, "drive")
	assert.Contains(t, out, "car.h")
	assert.NotContains(t, out, "Global Scope")
}

func TestPublicData(t *testing.T) {
	var buf bytes.Buffer
	report.PublicData(&buf, carResult(t))
	out := buf.String()
	assert.Contains(t, out, "int doors")
	assert.NotContains(t, out, "engine_")
}

func TestPublicDataNone(t *testing.T) {
	a, err := analysis.NewAnalyzer(nil)
	require.NoError(t, err)
	require.NoError(t, a.AnalyzeFile("e.h", strings.NewReader("class E {\n};\n")))
	var buf bytes.Buffer
	report.PublicData(&buf, a.Result())
	assert.Contains(t, buf.String(), "no public data")
}

func TestTree(t *testing.T) {
	res := carResult(t)
	var buf bytes.Buffer
	report.Tree(&buf, res.Root)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Contains(t, lines[0], "Global Scope")
	var sawDrive bool
	for _, l := range lines {
		if strings.Contains(l, "function drive") {
			sawDrive = true
			assert.True(t, strings.HasPrefix(l, "    "), "drive should be nested: %q", l)
		}
	}
	assert.True(t, sawDrive)
}

func TestSLOC(t *testing.T) {
	var buf bytes.Buffer
	report.SLOC(&buf, carResult(t))
	assert.Contains(t, buf.String(), "car.h")
	assert.Contains(t, buf.String(), "total")
}

func TestSummaryOverLimits(t *testing.T) {
	res := carResult(t)
	var buf bytes.Buffer
	report.Summary(&buf, res, report.Limits{MaxSize: 3, MaxComplexity: 10})
	out := buf.String()
	assert.Contains(t, out, "over limits")
	assert.Contains(t, out, "Car")

	buf.Reset()
	report.Summary(&buf, res, report.DefaultLimits)
	assert.NotContains(t, buf.String(), "over limits")
}

func TestRelations(t *testing.T) {
	res := carResult(t)
	g := deps.Analyze(res.Root)
	var buf bytes.Buffer
	report.Relations(&buf, g)
	out := buf.String()
	assert.Contains(t, out, "Car inherits Engine")
	assert.Contains(t, out, "Car aggregates Engine")
	assert.Contains(t, out, "fingerprint")
}

func TestExportJSON(t *testing.T) {
	res := carResult(t)
	doc := report.NewDocument(res, deps.Analyze(res.Root))
	var buf bytes.Buffer
	require.NoError(t, report.Export(&buf, doc, "json"))

	var decoded report.Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "global", decoded.Root.Kind)
	require.Len(t, decoded.Root.Children, 2)
	assert.Equal(t, "Car", decoded.Root.Children[1].Name)
	assert.NotEmpty(t, decoded.Relations)
	assert.NotEmpty(t, decoded.Fingerprint)
}

func TestExportYAML(t *testing.T) {
	res := carResult(t)
	doc := report.NewDocument(res, nil)
	var buf bytes.Buffer
	require.NoError(t, report.Export(&buf, doc, "yaml"))

	var decoded report.Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "global", decoded.Root.Kind)
	assert.Empty(t, decoded.Relations)
}

func TestExportUnknownFormat(t *testing.T) {
	doc := report.NewDocument(carResult(t), nil)
	assert.Error(t, report.Export(&bytes.Buffer{}, doc, "toml"))
}
