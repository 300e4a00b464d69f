// Copyright © 2025 The srcscope authors

// Package docs embeds the srcscope analysis guide for use by the CLI.
package docs

import _ "embed"

//go:embed guide.md
var Guide string
