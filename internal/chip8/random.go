package chip8

import "math/rand/v2"

// RandomSource provides the bytes used by the RND instruction.
type RandomSource interface {
	Byte() byte
}

// NewRandomSource returns a pseudo random byte source. Sources created with
// the same seed produce the same sequence.
func NewRandomSource(seed uint64) RandomSource {
	return &pcgSource{
		rnd: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
	}
}

type pcgSource struct {
	rnd *rand.Rand
}

func (s *pcgSource) Byte() byte {
	return byte(s.rnd.UintN(256))
}

// SequenceSource replays a fixed byte sequence, wrapping around at the end.
// An empty sequence always returns 0.
type SequenceSource struct {
	Bytes []byte
	pos   int
}

// Byte returns the next byte of the sequence.
func (s *SequenceSource) Byte() byte {
	if len(s.Bytes) == 0 {
		return 0
	}
	b := s.Bytes[s.pos%len(s.Bytes)]
	s.pos++
	return b
}
