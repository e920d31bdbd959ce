package tree

import (
	"math/rand/v2"

	"github.com/matzehuels/prettymarkup/pkg/errors"
)

// ColorSource hands out one hue in degrees [0, 360) per call.
type ColorSource interface {
	Next() (float64, error)
}

type randomHues struct {
	rng *rand.Rand
}

// RandomHues returns an endless source of pseudo-random hues. The same seed
// yields the same sequence.
func RandomHues(seed uint64) ColorSource {
	return &randomHues{rng: rand.New(rand.NewPCG(seed, seed^0xdeadbeef))}
}

func (r *randomHues) Next() (float64, error) {
	return r.rng.Float64() * 360, nil
}

// Palette is a fixed set of evenly spaced hues, shuffled once and drained
// monotonically. It is sized in advance to the number of entities a render
// will color; popping past the end means the sizing and the traversal
// disagree, which is reported as [errors.ErrCodePaletteExhausted].
//
// A Palette belongs to a single render call and is not safe for concurrent use.
type Palette struct {
	hues   []float64
	cursor int
}

// NewPalette builds a palette of n hues spread evenly around the color wheel
// and shuffles it with the given seed, so that neighbouring entities in the
// document do not get neighbouring colors.
func NewPalette(n int, seed uint64) *Palette {
	n = max(n, 0)
	hues := make([]float64, n)
	for i := range hues {
		hues[i] = float64(i) * 360 / float64(n)
	}
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	rng.Shuffle(len(hues), func(i, j int) { hues[i], hues[j] = hues[j], hues[i] })
	return &Palette{hues: hues}
}

// Next pops the next hue.
func (p *Palette) Next() (float64, error) {
	if p.cursor >= len(p.hues) {
		return 0, errors.New(errors.ErrCodePaletteExhausted,
			"palette of %d colors exhausted", len(p.hues))
	}
	h := p.hues[p.cursor]
	p.cursor++
	return h, nil
}

// Remaining returns the number of hues not yet handed out.
func (p *Palette) Remaining() int { return len(p.hues) - p.cursor }

// Len returns the palette size.
func (p *Palette) Len() int { return len(p.hues) }

type fixedHues struct {
	hues []float64
	i    int
}

// FixedHues cycles through the given hues forever. With no hues it always
// returns 0.
func FixedHues(hues ...float64) ColorSource {
	return &fixedHues{hues: hues}
}

func (f *fixedHues) Next() (float64, error) {
	if len(f.hues) == 0 {
		return 0, nil
	}
	h := f.hues[f.i%len(f.hues)]
	f.i++
	return h, nil
}
