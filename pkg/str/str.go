// Package str contains string slice utilities.
package str

// Uniq returns a new slice containing only unique strings,
// in the order each was first seen.
func Uniq(strs ...string) []string {
	out := make([]string, 0, len(strs))
	seen := make(map[string]struct{}, len(strs))
	for _, s := range strs {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Chunk splits strs into consecutive slices of at most size strings.
// The returned slices share memory with strs.
func Chunk(strs []string, size int) [][]string {
	if size <= 0 {
		panic("str: chunk size must be positive")
	}
	out := make([][]string, 0, (len(strs)+size-1)/size)
	for len(strs) > size {
		out = append(out, strs[:size:size])
		strs = strs[size:]
	}
	if len(strs) > 0 {
		out = append(out, strs)
	}
	return out
}
