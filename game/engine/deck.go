package engine

import "math/rand"

// GenerateDeck produces a shuffled, paired deck for the given level.
// The first pairCount symbols of the theme are duplicated and shuffled
// with a Fisher-Yates permutation. Symbol coverage is validated when
// configurations are loaded, not here; the caller guarantees
// len(symbols) >= level.PairCount().
//
// Each call yields a fresh independent shuffle.
func GenerateDeck(level *LevelConfig, symbols []string, rng *rand.Rand) []string {
	pairs := level.PairCount()

	deck := make([]string, 0, pairs*2)
	for _, symbol := range symbols[:pairs] {
		deck = append(deck, symbol, symbol)
	}

	for i := len(deck) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}

	return deck
}
