package util

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

func ContainsString(s []string, e string) bool {
	return slices.Contains(s, e)
}

// IsNonDecreasing returns true if every element is >= its predecessor
func IsNonDecreasing[T constraints.Ordered](s []T) bool {
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1] {
			return false
		}
	}
	return true
}

// FindDuplicate returns the first element that occurs more than once
func FindDuplicate[T comparable](s []T) (T, bool) {
	seen := make(map[T]struct{}, len(s))
	for _, e := range s {
		if _, ok := seen[e]; ok {
			return e, true
		}
		seen[e] = struct{}{}
	}
	var zero T
	return zero, false
}

func SortedKeys[T constraints.Ordered, K any](input map[T]K) []T {
	result := make([]T, 0, len(input))
	for k := range input {
		result = append(result, k)
	}
	slices.Sort(result)
	return result
}
