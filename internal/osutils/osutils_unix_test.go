//go:build !windows

package osutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteAndPipeStd(t *testing.T) {
	code, cmd, err := ExecuteAndPipeStd("true", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	require.NotNil(t, cmd.ProcessState)
}

func TestExecuteAndPipeStdFailure(t *testing.T) {
	code, _, err := ExecuteAndPipeStd("false", nil, nil)
	require.Error(t, err)
	assert.Equal(t, 1, code)
}
