// Copyright © 2025 The srcscope authors

// Package project identifies the project containing a set of source files.
// The detector walks up from an analyzed path looking for build-system
// marker files and derives a project name from whichever it finds.
package project

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/viant/afs"
	"golang.org/x/mod/modfile"
)

// Project describes the detected project root.
type Project struct {
	// Name is derived from the build configuration, falling back to the
	// root directory name.
	Name string

	// Type names the build system that marked the root.
	Type string

	// RootPath is the project root directory.
	RootPath string

	// RelativePath locates the analyzed path under the root.
	RelativePath string

	// Origin is the git remote URL when the root is a git checkout.
	Origin string
}

// Detector identifies project root folders.
type Detector struct {
	markers []string
}

// New creates a detector recognizing the common C++, C# and Go build
// system markers.
func New() *Detector {
	return &Detector{
		markers: []string{
			"CMakeLists.txt",        // C++/CMake projects
			"compile_commands.json", // C++ clang tooling
			"Makefile",              // make projects
			"go.mod",                // Go projects
			".git",                  // generic VCS marker
		},
	}
}

// Detect identifies the project root for the given path.  Detection never
// fails outright; an unmarked tree yields a project of type "unknown"
// rooted at the path itself.
func (d *Detector) Detect(path string) (*Project, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	startDir := absPath
	if info, err := os.Stat(absPath); err == nil && !info.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	rootPath, projectType := d.findProjectRoot(startDir)
	p := &Project{
		Type:     "unknown",
		RootPath: startDir,
	}
	if rootPath != "" {
		p.RootPath = rootPath
		p.Type = projectType
	}

	relPath, err := filepath.Rel(p.RootPath, absPath)
	if err != nil {
		relPath = filepath.Base(absPath)
	}
	p.RelativePath = filepath.ToSlash(relPath)

	p.Name = d.extractProjectName(p.RootPath, p.Type)
	if p.Type == "git" || hasGitDir(p.RootPath) {
		p.Origin = extractGitOrigin(p.RootPath)
	}
	return p, nil
}

// findProjectRoot searches up the directory tree for the nearest marker.
// A marker in a directory beats any marker above it, and the marker order
// breaks ties within one directory: a CMake checkout inside a git tree is
// a cmake project.
func (d *Detector) findProjectRoot(startDir string) (string, string) {
	dir := startDir
	for {
		for _, marker := range d.markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, markerType(marker)
			}
		}
		// C# solutions mark the root with *.sln or *.csproj rather than
		// a fixed file name.
		if m, _ := filepath.Glob(filepath.Join(dir, "*.sln")); len(m) > 0 {
			return dir, "msbuild"
		}
		if m, _ := filepath.Glob(filepath.Join(dir, "*.csproj")); len(m) > 0 {
			return dir, "msbuild"
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ""
}

func markerType(marker string) string {
	switch marker {
	case "CMakeLists.txt":
		return "cmake"
	case "compile_commands.json":
		return "clang"
	case "Makefile":
		return "make"
	case "go.mod":
		return "go"
	case ".git":
		return "git"
	}
	return "unknown"
}

func (d *Detector) extractProjectName(rootPath, projectType string) string {
	switch projectType {
	case "cmake":
		if name := extractCMakeProjectName(filepath.Join(rootPath, "CMakeLists.txt")); name != "" {
			return name
		}
	case "msbuild":
		if name := extractSolutionName(rootPath); name != "" {
			return name
		}
	case "go":
		if name := extractGoModuleName(filepath.Join(rootPath, "go.mod")); name != "" {
			return name
		}
	}
	return filepath.Base(rootPath)
}

var cmakeProjectRegex = regexp.MustCompile(`(?i)project\s*\(\s*([A-Za-z0-9_.-]+)`)

func extractCMakeProjectName(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	matches := cmakeProjectRegex.FindSubmatch(data)
	if len(matches) < 2 {
		return ""
	}
	return string(matches[1])
}

// extractSolutionName names an msbuild project after its solution file,
// falling back to the first project file.
func extractSolutionName(rootPath string) string {
	for _, pattern := range []string{"*.sln", "*.csproj"} {
		m, _ := filepath.Glob(filepath.Join(rootPath, pattern))
		if len(m) > 0 {
			base := filepath.Base(m[0])
			return strings.TrimSuffix(base, filepath.Ext(base))
		}
	}
	return ""
}

func extractGoModuleName(goModPath string) string {
	fs := afs.New()
	if content, _ := fs.DownloadWithURL(context.Background(), goModPath); len(content) > 0 {
		if mod, _ := modfile.Parse(goModPath, content, nil); mod != nil {
			return mod.Module.Mod.Path
		}
	}
	return ""
}

func hasGitDir(rootPath string) bool {
	_, err := os.Stat(filepath.Join(rootPath, ".git"))
	return err == nil
}

// extractGitOrigin extracts the origin URL from the git config.
func extractGitOrigin(gitRoot string) string {
	file, err := os.Open(filepath.Join(gitRoot, ".git", "config"))
	if err != nil {
		return ""
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	foundRemote := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.Contains(line, "[remote \"origin\"]") {
			foundRemote = true
			continue
		}
		if foundRemote && strings.HasPrefix(line, "url = ") {
			return strings.TrimPrefix(line, "url = ")
		}
	}
	return ""
}
