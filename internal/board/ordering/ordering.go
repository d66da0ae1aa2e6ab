// Package ordering provides the array-move primitive used to reorder
// cards within a stage.
package ordering

import "fmt"

// Move returns a new slice with the element at from removed and reinserted
// at to, where to indexes the shortened list. Elements between the two
// positions shift by one. The input slice is never modified.
//
// Indices must be within [0, len(list)); anything else is a programming
// error and panics.
func Move[T any](list []T, from, to int) []T {
	if from < 0 || from >= len(list) {
		panic(fmt.Sprintf("ordering: source index %d out of range [0,%d)", from, len(list)))
	}
	if to < 0 || to >= len(list) {
		panic(fmt.Sprintf("ordering: destination index %d out of range [0,%d)", to, len(list)))
	}

	out := make([]T, len(list))
	copy(out, list)
	if from == to {
		return out
	}

	moved := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = moved

	return out
}

// IndexOf returns the index of the first element for which match returns
// true, or -1.
func IndexOf[T any](list []T, match func(T) bool) int {
	for i, v := range list {
		if match(v) {
			return i
		}
	}
	return -1
}
