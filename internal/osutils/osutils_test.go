package osutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvMapToSlice(t *testing.T) {
	env := EnvMapToSlice(map[string]string{"B": "2", "A": "1"})
	assert.Equal(t, []string{"A=1", "B=2"}, env)
}
