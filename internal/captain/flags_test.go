package captain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelFlag(t *testing.T) {
	flag := &ChannelFlag{}
	require.NoError(t, flag.Set("nightly"))
	assert.Equal(t, "nightly", flag.Name())
	assert.Equal(t, "", flag.Pin())
	assert.Equal(t, "nightly", flag.String())

	flag = &ChannelFlag{}
	require.NoError(t, flag.Set("nightly@a1b2c3"))
	assert.Equal(t, "nightly", flag.Name())
	assert.Equal(t, "a1b2c3", flag.Pin())
	assert.Equal(t, "nightly@a1b2c3", flag.String())
}

func TestChannelFlagInvalid(t *testing.T) {
	assert.Error(t, (&ChannelFlag{}).Set("a@b@c"))
	assert.Error(t, (&ChannelFlag{}).Set("@pin-without-name"))
}
