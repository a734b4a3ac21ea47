package sscommon

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupRcFile(t *testing.T) {
	rcFile, err := SetupRcFile("bashrc.sh", "", RcData{
		Env: map[string]string{"FOO": "bar"},
		WD:  "/work",
	})
	require.NoError(t, err)
	defer os.Remove(rcFile)

	contents, err := os.ReadFile(rcFile)
	require.NoError(t, err)

	assert.Contains(t, string(contents), `export FOO="bar"`)
	assert.Contains(t, string(contents), `cd "/work"`)
}

func TestSetupRcFileUnknownTemplate(t *testing.T) {
	_, err := SetupRcFile("no-such-shell.sh", "", RcData{})
	require.Error(t, err)
}
