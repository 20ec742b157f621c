package game

import "math/bits"

// Mask is a bitboard over the 9x9 quilt grid. Bit row*Columns+col is set
// when the tile is covered. Bits 81..127 are always zero.
type Mask struct {
	Lo uint64
	Hi uint64
}

func (m Mask) Test(index int) bool {
	if index < 64 {
		return m.Lo&(1<<uint(index)) != 0
	}
	return m.Hi&(1<<uint(index-64)) != 0
}

func (m Mask) Set(index int) Mask {
	if index < 64 {
		m.Lo |= 1 << uint(index)
	} else {
		m.Hi |= 1 << uint(index-64)
	}
	return m
}

// Overlaps reports whether any tile is covered by both masks.
func (m Mask) Overlaps(other Mask) bool {
	return m.Lo&other.Lo != 0 || m.Hi&other.Hi != 0
}

func (m Mask) Union(other Mask) Mask {
	return Mask{Lo: m.Lo | other.Lo, Hi: m.Hi | other.Hi}
}

// Count returns the number of covered tiles.
func (m Mask) Count() int {
	return bits.OnesCount64(m.Lo) + bits.OnesCount64(m.Hi)
}
