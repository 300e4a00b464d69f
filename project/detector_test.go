// Copyright © 2025 The srcscope authors

package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srcscope/srcscope/project"
)

func write(t *testing.T, root, rel, text string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
}

func TestDetectCMake(t *testing.T) {
	root := t.TempDir()
	write(t, root, "CMakeLists.txt", "cmake_minimum_required(VERSION 3.20)\nproject(Geometry CXX)\n")
	write(t, root, "src/shape.cpp", "")

	p, err := project.New().Detect(filepath.Join(root, "src", "shape.cpp"))
	require.NoError(t, err)
	assert.Equal(t, "cmake", p.Type)
	assert.Equal(t, "Geometry", p.Name)
	assert.Equal(t, root, p.RootPath)
	assert.Equal(t, "src/shape.cpp", p.RelativePath)
}

func TestDetectMSBuild(t *testing.T) {
	root := t.TempDir()
	write(t, root, "Widgets.sln", "")
	write(t, root, "ui.cs", "")

	p, err := project.New().Detect(root)
	require.NoError(t, err)
	assert.Equal(t, "msbuild", p.Type)
	assert.Equal(t, "Widgets", p.Name)
}

func TestDetectGoModule(t *testing.T) {
	root := t.TempDir()
	write(t, root, "go.mod", "module example.com/widgets\n\ngo 1.22\n")

	p, err := project.New().Detect(root)
	require.NoError(t, err)
	assert.Equal(t, "go", p.Type)
	assert.Equal(t, "example.com/widgets", p.Name)
}

func TestNearestMarkerWins(t *testing.T) {
	root := t.TempDir()
	write(t, root, "CMakeLists.txt", "project(Outer)\n")
	write(t, root, "vendor/lib/CMakeLists.txt", "project(Inner)\n")

	p, err := project.New().Detect(filepath.Join(root, "vendor", "lib"))
	require.NoError(t, err)
	assert.Equal(t, "Inner", p.Name)
}

func TestDetectGitOrigin(t *testing.T) {
	root := t.TempDir()
	write(t, root, ".git/config", "[remote \"origin\"]\n\turl = git@example.com:acme/widgets.git\n")

	p, err := project.New().Detect(root)
	require.NoError(t, err)
	assert.Equal(t, "git", p.Type)
	assert.Equal(t, "git@example.com:acme/widgets.git", p.Origin)
}

func TestDetectUnknown(t *testing.T) {
	root := t.TempDir()
	write(t, root, "loose.cpp", "")

	p, err := project.New().Detect(filepath.Join(root, "loose.cpp"))
	require.NoError(t, err)
	assert.Equal(t, "unknown", p.Type)
	assert.Equal(t, filepath.Base(root), p.Name)
}
