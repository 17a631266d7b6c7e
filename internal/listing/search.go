package listing

import "strings"

// MatchName returns the items whose name contains term, ignoring case, and
// how many there are.
//
// The empty term is a substring of every name, so it matches everything.
// There is no tokenizing and no ranking: matches keep the input order.
func MatchName[T any](term string, items []T, nameOf func(T) string) ([]T, int) {
	needle := strings.ToLower(term)
	matches := make([]T, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(nameOf(item)), needle) {
			matches = append(matches, item)
		}
	}
	return matches, len(matches)
}
