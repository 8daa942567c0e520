package index

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPos32(t *testing.T) {
	assert.Equal(t, int32(7), pos32(7))
	assert.Equal(t, int32(math.MaxInt32), pos32(math.MaxInt32))
	if math.MaxInt > math.MaxInt32 {
		big := int64(math.MaxInt32) + 1
		assert.Panics(t, func() { pos32(int(big)) })
	}
}
