package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCopySlice(t *testing.T) {
	original := []int{1, 2, 3}
	sliceCopy := CopySlice(original)

	assert.Equal(t, original, sliceCopy)

	sliceCopy[0] = 100
	assert.Equal(t, []int{1, 2, 3}, original)
}

func TestMapSlice(t *testing.T) {
	doubled := MapSlice([]int{1, 2, 3}, func(e int) int {
		return 2 * e
	})
	assert.Equal(t, []int{2, 4, 6}, doubled)

	assert.Equal(t, []string{}, MapSlice(nil, func(e int) string {
		return ""
	}))
}
