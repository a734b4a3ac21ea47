package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOptionUnregistered(t *testing.T) {
	opt := GetOption("no.such.key")
	assert.False(t, KnownOption(opt))
	assert.Equal(t, "no.such.key", opt.Name)
	assert.Equal(t, String, opt.Type)
}

func TestRegisterOption(t *testing.T) {
	RegisterOption(Option{Name: "test.someopt", Type: Bool, Default: true})

	opt := GetOption("test.someopt")
	require.True(t, KnownOption(opt))
	assert.Equal(t, Bool, opt.Type)
	assert.Equal(t, true, opt.Default)

	v, err := opt.GetEvent("unchanged")
	require.NoError(t, err)
	assert.Equal(t, "unchanged", v)
}
