package summary

import (
	"sort"
	"strconv"
	"strings"
)

const urlKeyPrefix = "url:"

// KeyForIDs derives a cache key from a set of comment IDs: stringify, sort
// lexicographically, join with ",". Sorting makes the key independent of
// discovery order, so any permutation of the same ID set maps to the same
// entry. Lexicographic rather than numeric sort is deliberate: ordering only
// needs to be stable, not meaningful.
func KeyForIDs(ids []int) string {
	ss := make([]string, len(ids))
	for i, id := range ids {
		ss[i] = strconv.Itoa(id)
	}
	sort.Strings(ss)
	return strings.Join(ss, ",")
}

// KeyForURL derives a cache key for page-content summaries. The URL is used
// literally with no normalization: two URLs differing only in a trailing slash
// or query order produce different keys. Known limitation.
func KeyForURL(url string) string {
	return urlKeyPrefix + url
}
