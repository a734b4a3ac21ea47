//go:build !windows

package sscommon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeEnv(t *testing.T) {
	env := EscapeEnv(map[string]string{
		"SIMPLE":  "value",
		"QUOTED":  `say "hi"`,
		"DOLLAR":  "cost: $5",
		"NEWLINE": "line1\nline2",
	})

	assert.Equal(t, "value", env["SIMPLE"])
	assert.Equal(t, `say \"hi\"`, env["QUOTED"])
	assert.Equal(t, `cost: \$5`, env["DOLLAR"])
	assert.Equal(t, `line1\nline2`, env["NEWLINE"])
}
