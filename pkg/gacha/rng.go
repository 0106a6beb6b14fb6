package gacha

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource supplies the randomness for pool draws. Implementations must
// produce uniformly distributed values.
type RandomSource interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// IntN returns a uniform value in [0, n). n must be positive.
	IntN(n int) int
}

// cryptoSource reads from crypto/rand with a math/rand/v2 fallback. Rolls do
// not need cryptographic fairness proofs, but the production source should not
// be predictable from casual inspection.
type cryptoSource struct{}

func (cryptoSource) Float64() float64 {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		return rand.Float64()
	}
	u := binary.BigEndian.Uint64(buf[:]) >> 11 // 53 bits
	return float64(u) / (1 << 53)
}

func (c cryptoSource) IntN(n int) int {
	return int(c.Float64() * float64(n))
}

// DefaultSource returns the production randomness source.
func DefaultSource() RandomSource { return cryptoSource{} }

// seededSource is deterministic and reproducible, for tests and simulations.
type seededSource struct {
	r *rand.Rand
}

// NewSeededSource returns a reproducible source for a fixed seed.
func NewSeededSource(seed uint64) RandomSource {
	return &seededSource{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededSource) Float64() float64 { return s.r.Float64() }

func (s *seededSource) IntN(n int) int { return s.r.IntN(n) }
