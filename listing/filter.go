package listing

import "strings"

// MatchFold is a case-insensitive exact match ignoring surrounding spaces.
func MatchFold(field, want string) bool {
	return strings.EqualFold(strings.TrimSpace(field), strings.TrimSpace(want))
}

// Filter narrows already fetched items on a single string field.
type Filter[T any] struct {
	Field func(T) string
}

// Apply keeps the items whose field matches want. An empty want keeps everything.
func (f Filter[T]) Apply(items []T, want string) []T {
	if strings.TrimSpace(want) == "" || f.Field == nil {
		return append([]T(nil), items...)
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if MatchFold(f.Field(it), want) {
			out = append(out, it)
		}
	}
	return out
}
