package runtime

import "math/rand"

// RandomState reproduces MBASIC's RND(x) contract: x<0 reseeds from x and
// returns the first draw from the new seed, x=0 repeats the last draw,
// x>0 (or omitted, which the parser rewrites to RND(1)) advances and
// returns the next uniform value in [0,1) (§4.G).
type RandomState struct {
	src  *rand.Rand
	last float64
}

func NewRandomState() *RandomState {
	return &RandomState{src: rand.New(rand.NewSource(1)), last: 0}
}

func (r *RandomState) Next(x float64) float64 {
	switch {
	case x < 0:
		r.src = rand.New(rand.NewSource(int64(x)))
		r.last = r.src.Float64()
	case x == 0:
		// repeats last value, no advance
	default:
		r.last = r.src.Float64()
	}
	return r.last
}

// Seed reseeds as RANDOMIZE does.
func (r *RandomState) Seed(seed int64) {
	r.src = rand.New(rand.NewSource(seed))
}
