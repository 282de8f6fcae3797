package memzero_test

import (
	"testing"

	"github.com/fzdarsky/srp6a/internal/util/memzero"
	"github.com/stretchr/testify/assert"
)

func TestZero(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	memzero.Zero(b)
	assert.Equal(t, []byte{0, 0, 0, 0}, b)

	memzero.Zero(nil)
}

func TestZeroAll(t *testing.T) {
	a, b := []byte{1}, []byte{2, 3}
	memzero.ZeroAll(a, nil, b)
	assert.Equal(t, []byte{0}, a)
	assert.Equal(t, []byte{0, 0}, b)
}
