package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinMaxClamp(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(2, Min(2, 5))
	assert.Equal(int64(-3), Min(int64(4), int64(-3)))
	assert.Equal(5, Max(2, 5))
	assert.Equal(uint8(127), Clamp(uint8(200), 1, 127))
	assert.Equal(1, Clamp(-4, 1, 127))
	assert.Equal(64, Clamp(64, 1, 127))
}

func TestMulDivRound(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(int64(480), MulDivRound(1, 480, 1))
	assert.Equal(int64(160), MulDivRound(1, 480, 3))
	assert.Equal(int64(69), MulDivRound(1, 480, 7))
	assert.Equal(int64(137), MulDivRound(2, 480, 7))
	assert.Equal(int64(-160), MulDivRound(-1, 480, 3))
}

func TestGetSortedKeys(t *testing.T) {
	m := map[string]int{"b": 1, "a": 2, "c": 3}
	assert.Equal(t, []string{"a", "b", "c"}, GetSortedKeys(m))
	assert.Len(t, GetKeys(m), 3)
}
