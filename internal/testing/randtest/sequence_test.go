package randtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequence(t *testing.T) {
	src := Sequence(0.1, 0.9)

	assert.Equal(t, 0.1, src.Float64())
	assert.Equal(t, 0.9, src.Float64())
	assert.Equal(t, 0.1, src.Float64(), "sequence cycles")
	assert.Equal(t, 3, src.Calls())
}

func TestSequence_Empty(t *testing.T) {
	src := Sequence()
	assert.Equal(t, 0.0, src.Float64())
	assert.Equal(t, 1, src.Calls())
}
