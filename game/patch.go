package game

import "fmt"

// Patch is one of the cloth pieces circling the time board. Shapes are the
// physical tiles of the board game, row-major with 1 marking a covered cell.
type Patch struct {
	ID           uint8
	ButtonCost   int
	TimeCost     int
	ButtonIncome int
	Shape        [][]uint8
}

// Placement is one way to lay a patch onto the quilt board: a concrete
// orientation translated to a concrete position.
type Placement struct {
	Mask Mask
	Row  int
	Col  int
}

// StartingPatchID is the 1x2 patch the neutral token starts behind; it is
// always the last patch in a fresh market.
const StartingPatchID uint8 = 0

// NumPatches counts the starting patch plus the 32 normal patches. Special
// leather patches are single tiles and are not part of the market.
const NumPatches = 33

var patches = [NumPatches]Patch{
	{ID: 0, ButtonCost: 2, TimeCost: 1, ButtonIncome: 0, Shape: [][]uint8{
		{1, 1},
	}},
	{ID: 1, ButtonCost: 10, TimeCost: 4, ButtonIncome: 3, Shape: [][]uint8{
		{1, 0, 0},
		{1, 1, 0},
		{0, 1, 1},
	}},
	{ID: 2, ButtonCost: 5, TimeCost: 3, ButtonIncome: 1, Shape: [][]uint8{
		{0, 1, 1, 1, 0},
		{1, 1, 1, 1, 1},
		{0, 1, 1, 1, 0},
	}},
	{ID: 3, ButtonCost: 8, TimeCost: 6, ButtonIncome: 3, Shape: [][]uint8{
		{0, 1, 1},
		{0, 1, 1},
		{1, 1, 0},
	}},
	{ID: 4, ButtonCost: 7, TimeCost: 6, ButtonIncome: 3, Shape: [][]uint8{
		{0, 1, 1},
		{1, 1, 0},
	}},
	{ID: 5, ButtonCost: 4, TimeCost: 2, ButtonIncome: 0, Shape: [][]uint8{
		{1, 0},
		{1, 1},
		{1, 1},
		{0, 1},
	}},
	{ID: 6, ButtonCost: 2, TimeCost: 1, ButtonIncome: 0, Shape: [][]uint8{
		{0, 1, 0},
		{0, 1, 1},
		{1, 1, 0},
		{0, 1, 0},
	}},
	{ID: 7, ButtonCost: 2, TimeCost: 3, ButtonIncome: 0, Shape: [][]uint8{
		{1, 0, 1},
		{1, 1, 1},
		{1, 0, 1},
	}},
	{ID: 8, ButtonCost: 2, TimeCost: 2, ButtonIncome: 0, Shape: [][]uint8{
		{1, 0},
		{1, 1},
		{1, 1},
	}},
	{ID: 9, ButtonCost: 6, TimeCost: 5, ButtonIncome: 2, Shape: [][]uint8{
		{1, 1},
		{1, 1},
	}},
	{ID: 10, ButtonCost: 2, TimeCost: 3, ButtonIncome: 1, Shape: [][]uint8{
		{0, 1},
		{0, 1},
		{1, 1},
		{1, 0},
	}},
	{ID: 11, ButtonCost: 1, TimeCost: 2, ButtonIncome: 0, Shape: [][]uint8{
		{0, 0, 0, 1},
		{1, 1, 1, 1},
		{1, 0, 0, 0},
	}},
	{ID: 12, ButtonCost: 10, TimeCost: 5, ButtonIncome: 3, Shape: [][]uint8{
		{1, 1},
		{1, 1},
		{0, 1},
		{0, 1},
	}},
	{ID: 13, ButtonCost: 7, TimeCost: 2, ButtonIncome: 2, Shape: [][]uint8{
		{0, 1, 0},
		{0, 1, 0},
		{0, 1, 0},
		{1, 1, 1},
	}},
	{ID: 14, ButtonCost: 4, TimeCost: 6, ButtonIncome: 2, Shape: [][]uint8{
		{0, 1},
		{0, 1},
		{1, 1},
	}},
	{ID: 15, ButtonCost: 7, TimeCost: 4, ButtonIncome: 2, Shape: [][]uint8{
		{0, 1, 1, 0},
		{1, 1, 1, 1},
	}},
	{ID: 16, ButtonCost: 1, TimeCost: 5, ButtonIncome: 1, Shape: [][]uint8{
		{1, 1},
		{0, 1},
		{0, 1},
		{1, 1},
	}},
	{ID: 17, ButtonCost: 5, TimeCost: 4, ButtonIncome: 2, Shape: [][]uint8{
		{0, 1, 0},
		{1, 1, 1},
		{0, 1, 0},
	}},
	{ID: 18, ButtonCost: 10, TimeCost: 3, ButtonIncome: 2, Shape: [][]uint8{
		{1, 0, 0, 0},
		{1, 1, 1, 1},
	}},
	{ID: 19, ButtonCost: 4, TimeCost: 2, ButtonIncome: 1, Shape: [][]uint8{
		{0, 0, 1},
		{1, 1, 1},
	}},
	{ID: 20, ButtonCost: 1, TimeCost: 4, ButtonIncome: 1, Shape: [][]uint8{
		{0, 0, 1, 0, 0},
		{1, 1, 1, 1, 1},
		{0, 0, 1, 0, 0},
	}},
	{ID: 21, ButtonCost: 1, TimeCost: 3, ButtonIncome: 0, Shape: [][]uint8{
		{0, 1},
		{1, 1},
	}},
	{ID: 22, ButtonCost: 1, TimeCost: 2, ButtonIncome: 0, Shape: [][]uint8{
		{1, 0, 1},
		{1, 1, 1},
	}},
	{ID: 23, ButtonCost: 3, TimeCost: 1, ButtonIncome: 0, Shape: [][]uint8{
		{0, 1},
		{1, 1},
	}},
	{ID: 24, ButtonCost: 2, TimeCost: 2, ButtonIncome: 0, Shape: [][]uint8{
		{0, 1},
		{1, 1},
		{0, 1},
	}},
	{ID: 25, ButtonCost: 2, TimeCost: 2, ButtonIncome: 0, Shape: [][]uint8{
		{1, 1, 1},
	}},
	{ID: 26, ButtonCost: 3, TimeCost: 2, ButtonIncome: 1, Shape: [][]uint8{
		{0, 1},
		{1, 1},
		{1, 0},
	}},
	{ID: 27, ButtonCost: 7, TimeCost: 1, ButtonIncome: 1, Shape: [][]uint8{
		{1, 1, 1, 1, 1},
	}},
	{ID: 28, ButtonCost: 3, TimeCost: 3, ButtonIncome: 1, Shape: [][]uint8{
		{1, 1, 1, 1},
	}},
	{ID: 29, ButtonCost: 5, TimeCost: 5, ButtonIncome: 2, Shape: [][]uint8{
		{0, 1, 0},
		{0, 1, 0},
		{1, 1, 1},
	}},
	{ID: 30, ButtonCost: 3, TimeCost: 6, ButtonIncome: 2, Shape: [][]uint8{
		{0, 1, 0},
		{1, 1, 1},
		{1, 0, 1},
	}},
	{ID: 31, ButtonCost: 3, TimeCost: 4, ButtonIncome: 1, Shape: [][]uint8{
		{0, 0, 1, 0},
		{1, 1, 1, 1},
	}},
	{ID: 32, ButtonCost: 0, TimeCost: 3, ButtonIncome: 1, Shape: [][]uint8{
		{0, 1, 0, 0},
		{1, 1, 1, 1},
		{0, 1, 0, 0},
	}},
}

// placements[id] holds every legal (orientation, position) pair for the
// patch, precomputed once at startup.
var placements [NumPatches][]Placement

func init() {
	for i := range patches {
		placements[i] = computePlacements(patches[i].Shape)
	}
}

// PatchByID returns the static patch definition.
func PatchByID(id uint8) *Patch {
	if int(id) >= NumPatches {
		panic(fmt.Sprintf("game: no patch with id %d", id))
	}
	return &patches[id]
}

// PlacementsOf returns all placements of the patch on an empty board.
func PlacementsOf(id uint8) []Placement {
	if int(id) >= NumPatches {
		panic(fmt.Sprintf("game: no patch with id %d", id))
	}
	return placements[id]
}

// Size returns the number of tiles the patch covers.
func (p *Patch) Size() int {
	n := 0
	for _, row := range p.Shape {
		for _, cell := range row {
			n += int(cell)
		}
	}
	return n
}

func computePlacements(shape [][]uint8) []Placement {
	var result []Placement
	for _, orientation := range orientationsOf(shape) {
		h := len(orientation)
		w := len(orientation[0])
		for row := 0; row <= Rows-h; row++ {
			for col := 0; col <= Columns-w; col++ {
				var mask Mask
				for r := 0; r < h; r++ {
					for c := 0; c < w; c++ {
						if orientation[r][c] != 0 {
							mask = mask.Set((row+r)*Columns + col + c)
						}
					}
				}
				result = append(result, Placement{Mask: mask, Row: row, Col: col})
			}
		}
	}
	return result
}

// orientationsOf returns the distinct shapes reachable by rotation and
// mirroring. Symmetric patches collapse to fewer than 8.
func orientationsOf(shape [][]uint8) [][][]uint8 {
	seen := make(map[string]bool)
	var result [][][]uint8

	current := shape
	for flip := 0; flip < 2; flip++ {
		for rotation := 0; rotation < 4; rotation++ {
			if key := shapeKey(current); !seen[key] {
				seen[key] = true
				result = append(result, current)
			}
			current = rotate(current)
		}
		current = mirror(current)
	}
	return result
}

func rotate(shape [][]uint8) [][]uint8 {
	h := len(shape)
	w := len(shape[0])
	rotated := make([][]uint8, w)
	for r := range rotated {
		rotated[r] = make([]uint8, h)
		for c := 0; c < h; c++ {
			rotated[r][c] = shape[h-1-c][r]
		}
	}
	return rotated
}

func mirror(shape [][]uint8) [][]uint8 {
	h := len(shape)
	w := len(shape[0])
	mirrored := make([][]uint8, h)
	for r := range mirrored {
		mirrored[r] = make([]uint8, w)
		for c := 0; c < w; c++ {
			mirrored[r][c] = shape[r][w-1-c]
		}
	}
	return mirrored
}

func shapeKey(shape [][]uint8) string {
	key := make([]byte, 0, 32)
	for _, row := range shape {
		for _, cell := range row {
			key = append(key, '0'+cell)
		}
		key = append(key, '/')
	}
	return string(key)
}
