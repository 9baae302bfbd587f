package writing

import "math/rand/v2"

// Option configures a Sentence.
type Option func(*Sentence)

// WithRand sets the random source used for every layout choice.
func WithRand(r *rand.Rand) Option {
	return func(s *Sentence) {
		s.env.rng = r
	}
}

// WithSeed makes the layout reproducible.
func WithSeed(seed uint64) Option {
	return WithRand(NewRand(seed))
}

// WithCanvasSize sets the canvas new glyphs are placed on.
func WithCanvasSize(width, height int) Option {
	return func(s *Sentence) {
		s.env.width, s.env.height = width, height
	}
}

// NewRand returns the generator WithSeed uses.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
