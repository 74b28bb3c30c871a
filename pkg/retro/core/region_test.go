package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegionCopyIsDetached(t *testing.T) {
	backing := []byte{1, 2, 3, 4}
	r := RegionOf(backing)

	assert.Equal(t, 4, r.Size())
	assert.Equal(t, backing, r.Bytes())

	snap := r.Copy()
	backing[0] = 99
	assert.EqualValues(t, 1, snap[0])
	assert.EqualValues(t, 99, r.Bytes()[0])
}

func TestRegionEmpty(t *testing.T) {
	var r Region
	assert.Zero(t, r.Size())
	assert.Nil(t, r.Copy())
}
