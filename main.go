// Copyright © 2025 The srcscope authors

package main

import "github.com/srcscope/srcscope/cmd"

func main() {
	cmd.Execute()
}
