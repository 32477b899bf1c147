package corpus

import "math/rand"

// Shuffle permutes s in place with a Fisher-Yates pass driven by rng.
func Shuffle[T any](rng *rand.Rand, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
