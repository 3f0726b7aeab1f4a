package test

import "math/rand/v2"

const lowerAlnum = "abcdefghijklmnopqrstuvwxyz0123456789"

// RandomLowerString returns a pseudo-random lowercase alphanumeric string within the provided
// bounds. When maxLen equals minLen the resulting string always has that exact length.
func RandomLowerString(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	length := minLen
	if maxLen > minLen {
		length += rand.IntN(maxLen - minLen + 1)
	}
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = lowerAlnum[rand.IntN(len(lowerAlnum))]
	}
	return string(buf)
}

// RandomEmail returns a unique-looking address under example.com.
func RandomEmail() string {
	return RandomLowerString(6, 12) + "@example.com"
}
