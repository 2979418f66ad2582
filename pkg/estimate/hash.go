package estimate

import "unicode/utf16"

// SimpleHash is a 32-bit rolling hash (h = h*31 + c over UTF-16 code units,
// wrapped to int32) returned as its absolute value. It is stable across runs
// and platforms, so heuristic buckets derived from it are reproducible.
func SimpleHash(s string) int64 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(c)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v
}

// bucket returns SimpleHash(s) mod n, or 0 when n is not positive.
func bucket(s string, n int) int64 {
	if n <= 0 {
		return 0
	}
	return SimpleHash(s) % int64(n)
}
