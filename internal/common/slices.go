package common

// IsEmpty returns true if the slice has no elements.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// IsMultiple returns true if the slice has more than one element.
func IsMultiple[S ~[]E, E any](s S) bool {
	return len(s) > 1
}

// Single returns the sole element of the slice. ok is false unless the
// slice holds exactly one element.
func Single[S ~[]E, E any](s S) (e E, ok bool) {
	if len(s) != 1 {
		return e, false
	}

	return s[0], true
}

// Dedupe returns s with duplicate keys removed, keeping first occurrences
// and preserving order. The key function decides identity.
func Dedupe[S ~[]E, E any, K comparable](s S, key func(E) K) S {
	if len(s) < 2 {
		return s
	}

	seen := make(map[K]struct{}, len(s))
	out := make(S, 0, len(s))

	for _, e := range s {
		k := key(e)
		if _, dup := seen[k]; dup {
			continue
		}

		seen[k] = struct{}{}
		out = append(out, e)
	}

	return out
}
