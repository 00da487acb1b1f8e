package util

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestContainsString_Valid(t *testing.T) {
	// GIVEN
	list := []string{
		"one",
		"two",
		"three",
	}

	// WHEN
	result := ContainsString(list, "two")

	// THEN
	assert.True(t, result)
}

func TestContainsString_Invalid(t *testing.T) {
	// GIVEN
	list := []string{
		"one",
		"two",
		"three",
	}

	// WHEN
	result := ContainsString(list, "zero")

	// THEN
	assert.False(t, result)
}

func TestIsNonDecreasing(t *testing.T) {
	assert.True(t, IsNonDecreasing([]float64{}))
	assert.True(t, IsNonDecreasing([]float64{0, 10, 10, 20}))
	assert.False(t, IsNonDecreasing([]float64{0, 20, 10}))
	assert.True(t, IsNonDecreasing([]int{1}))
}

func TestFindDuplicate(t *testing.T) {
	// GIVEN
	values := []uint8{1, 2, 3, 2}

	// WHEN
	duplicate, found := FindDuplicate(values)

	// THEN
	assert.True(t, found)
	assert.Equal(t, uint8(2), duplicate)

	_, found = FindDuplicate([]string{"a", "b"})
	assert.False(t, found)
}

func TestSortedKeys(t *testing.T) {
	// GIVEN
	input := map[string]int{
		"c": 3,
		"a": 1,
		"b": 2,
	}

	// WHEN
	result := SortedKeys(input)

	// THEN
	assert.Equal(t, []string{"a", "b", "c"}, result)
}
