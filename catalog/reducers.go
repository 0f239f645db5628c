package catalog

// Prepend returns a new list with item first.
func Prepend[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}

// ReplaceByID swaps the element sharing item's id. The list is returned
// unchanged when no element matches.
func ReplaceByID[T any](items []T, item T, id func(T) uint) []T {
	out := make([]T, len(items))
	copy(out, items)
	want := id(item)
	for i := range out {
		if id(out[i]) == want {
			out[i] = item
		}
	}
	return out
}

// RemoveByID drops every element with the given id.
func RemoveByID[T any](items []T, target uint, id func(T) uint) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if id(item) != target {
			out = append(out, item)
		}
	}
	return out
}
