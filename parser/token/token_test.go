// Copyright © 2025 The srcscope authors

package token

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeString(t *testing.T) {
	used := make(map[string]bool)
	for tok := Type(0); tok < numTokenTypes; tok++ {
		str := tok.String()
		t.Log(str)
		if str == "" {
			t.Errorf("token type %x has empty string value", tok)
			continue
		}
		if used[str] {
			t.Errorf("token type string used twice: %v", tok)
		}
		used[str] = true
	}
}

func TestLocationString(t *testing.T) {
	loc := &Location{File: "shape.h", Line: 12, Pos: 240}
	assert.Equal(t, "shape.h:12", loc.String())
	loc = &Location{File: "shape.h", Pos: 240}
	assert.Equal(t, "shape.h[240]", loc.String())
	err := &LocationError{Err: fmt.Errorf("unterminated string literal"), Source: loc}
	assert.Equal(t, "shape.h[240]: unterminated string literal", err.Error())
}
