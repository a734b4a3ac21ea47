package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devshell-sh/cli/internal/locale"
)

func TestParseReferences(t *testing.T) {
	refs := ParseReferences("${tools.sdl2.root}/lib:${tools.rust-toolchain.src}")
	require.Len(t, refs, 2)

	assert.Equal(t, Reference{
		Category:  "tools",
		Name:      "sdl2",
		Attribute: "root",
		Raw:       "${tools.sdl2.root}",
	}, refs[0])
	assert.Equal(t, "rust-toolchain", refs[1].Name)
	assert.Equal(t, "src", refs[1].Attribute)

	assert.Empty(t, ParseReferences("no references here, not even $HOME or ${PLAIN}"))
}

func TestToolExpansion(t *testing.T) {
	expansion := NewToolExpansion(ToolAttributes{
		"cargo": {"bin": "/opt/cargo/bin", "version": "1.78.0"},
	})

	expanded, err := expansion.Apply("${tools.cargo.bin}/cargo --version ${tools.cargo.version}")
	require.NoError(t, err)
	assert.Equal(t, "/opt/cargo/bin/cargo --version 1.78.0", expanded)
}

func TestToolExpansionLeavesLiteralsAlone(t *testing.T) {
	expansion := NewToolExpansion(ToolAttributes{})

	expanded, err := expansion.Apply("plain value")
	require.NoError(t, err)
	assert.Equal(t, "plain value", expanded)
}

func TestToolExpansionUnprovisioned(t *testing.T) {
	expansion := NewToolExpansion(ToolAttributes{})

	_, err := expansion.Apply("${tools.ghost.bin}")
	require.Error(t, err)
	assert.Contains(t, locale.JoinedErrorMessage(err), "ghost")
}

func TestToolExpansionEmptyAttribute(t *testing.T) {
	expansion := NewToolExpansion(ToolAttributes{
		"sdl2": {"root": "/opt/sdl2"},
	})

	_, err := expansion.Apply("${tools.sdl2.src}")
	require.Error(t, err)
}

func TestExpansionNested(t *testing.T) {
	expansion := NewToolExpansion(ToolAttributes{
		"a": {"root": "${tools.b.root}/a"},
		"b": {"root": "/opt/b"},
	})

	expanded, err := expansion.Apply("${tools.a.root}")
	require.NoError(t, err)
	assert.Equal(t, "/opt/b/a", expanded)
}

func TestExpansionRecursionLimit(t *testing.T) {
	expansion := NewToolExpansion(ToolAttributes{
		"loop": {"root": "${tools.loop.root}"},
	})

	_, err := expansion.Apply("${tools.loop.root}")
	require.Error(t, err)
}

func TestExpansionUnknownCategory(t *testing.T) {
	expansion := NewExpansion()

	_, err := expansion.Apply("${pets.cat.bin}")
	require.Error(t, err)
}
