package game

import "fmt"

type ActionKind uint8

const (
	// ActionAdvance moves the time token one space past the opponent,
	// collecting one button per space moved.
	ActionAdvance ActionKind = iota
	// ActionPlacePatch buys one of the first three market patches and
	// places it on the mover's quilt board.
	ActionPlacePatch
	// ActionPlaceSpecial places a leather patch on a single empty tile.
	// Only legal while a leather-patch placement is pending.
	ActionPlaceSpecial
)

// Action identifies one legal move. Actions are small comparable values so
// they can key statistics maps; the state they apply to supplies the rest
// of the context.
type Action struct {
	Kind ActionKind
	// PatchID and MarketIndex identify the bought patch and its position
	// among the three purchasable market patches (ActionPlacePatch).
	PatchID     uint8
	MarketIndex uint8
	// Placement indexes PlacementsOf(PatchID) (ActionPlacePatch).
	Placement uint16
	// Row and Col locate a leather patch (ActionPlaceSpecial).
	Row uint8
	Col uint8
}

// Advance is the always-available walking action.
func Advance() Action {
	return Action{Kind: ActionAdvance}
}

func (a Action) String() string {
	switch a.Kind {
	case ActionAdvance:
		return "advance"
	case ActionPlacePatch:
		p := PlacementsOf(a.PatchID)[a.Placement]
		return fmt.Sprintf("place patch %d at %d,%d", a.PatchID, p.Row, p.Col)
	case ActionPlaceSpecial:
		return fmt.Sprintf("place leather patch at %d,%d", a.Row, a.Col)
	default:
		return fmt.Sprintf("unknown action kind %d", a.Kind)
	}
}
