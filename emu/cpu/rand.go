package cpu

import (
	cryptorand "crypto/rand"
	"math"
	"math/big"
	"math/rand"
	"time"
)

// RandomSource produces the random bytes consumed by the Cxkk
// instruction. It is injected at construction so tests can substitute
// a deterministic sequence; the engine never reseeds it.
type RandomSource interface {
	NextByte() byte
}

type entropySource struct {
	rng *rand.Rand
}

// newEntropySource seeds a math/rand generator from crypto/rand,
// falling back to the wall clock if the crypto source fails.
func newEntropySource() *entropySource {
	var seed int64
	if n, err := cryptorand.Int(cryptorand.Reader, big.NewInt(math.MaxInt64)); err == nil {
		seed = n.Int64()
	} else {
		seed = time.Now().UnixNano()
	}
	return &entropySource{rng: rand.New(rand.NewSource(seed))}
}

func (s *entropySource) NextByte() byte {
	return byte(s.rng.Intn(256))
}
