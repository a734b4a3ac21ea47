package osutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBashEscaperQuote(t *testing.T) {
	e := NewBashEscaper()

	assert.Equal(t, "simple", e.Quote("simple"))
	assert.Equal(t, `""`, e.Quote(""))
	assert.Equal(t, `"has space"`, e.Quote("has space"))
	assert.Equal(t, `"say \"hi\""`, e.Quote(`say "hi"`))
	assert.Equal(t, `"cost: \$5"`, e.Quote("cost: $5"))
}

func TestBatchEscaperQuote(t *testing.T) {
	e := NewBatchEscaper()

	assert.Equal(t, "simple", e.Quote("simple"))
	assert.Equal(t, `"say ""hi"""`, e.Quote(`say "hi"`))
}
