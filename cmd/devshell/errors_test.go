package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devshell-sh/cli/internal/errs"
	"github.com/devshell-sh/cli/internal/locale"
)

func TestUnwrapSubshellExit(t *testing.T) {
	// The shape activate returns when the subshell exits non-zero
	inErr := locale.WrapError(errs.WrapExitCode(errs.New("exit status 1"), 1), "err_subshell_exit", "")

	var code int
	var err error
	require.NotPanics(t, func() {
		code, err = unwrapError(inErr)
	})
	assert.Equal(t, 1, code)
	require.Error(t, err)
	assert.True(t, locale.HasError(err))
}

func TestUnwrapExecExit(t *testing.T) {
	// The shape exec returns: the exit code wraps the localized error
	inErr := errs.WrapExitCode(locale.WrapError(errs.New("exit status 2"), "err_exec_failed", "", "false"), 2)

	var code int
	var err error
	require.NotPanics(t, func() {
		code, err = unwrapError(inErr)
	})
	assert.Equal(t, 2, code)
	require.Error(t, err)
	assert.True(t, locale.HasError(err))
}

func TestUnwrapNil(t *testing.T) {
	code, err := unwrapError(nil)
	assert.Equal(t, 0, code)
	assert.NoError(t, err)
}
