package sensor

import "math/rand"

// RandomSource supplies the bounded randomness used by the synthetic
// models, injected so tests can substitute a deterministic source.
type RandomSource interface {
	Float64() float64
	IntN(n int) int
}

type defaultRandom struct {
	r *rand.Rand
}

// NewRandom returns a math/rand backed RandomSource.
func NewRandom(seed int64) RandomSource {
	return &defaultRandom{r: rand.New(rand.NewSource(seed))}
}

func (d *defaultRandom) Float64() float64 { return d.r.Float64() }
func (d *defaultRandom) IntN(n int) int   { return d.r.Intn(n) }

// Jitter returns a value uniformly distributed in [-amplitude, amplitude].
func Jitter(r RandomSource, amplitude float64) float64 {
	return (r.Float64()*2 - 1) * amplitude
}
