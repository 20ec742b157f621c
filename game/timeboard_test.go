package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestButtonIncomeTriggers(t *testing.T) {
	require.Equal(t, 9, buttonIncomeTriggersIn(0, MaxPosition), "The board has nine income spaces")
	require.Equal(t, 1, buttonIncomeTriggersIn(1, 5))
	require.Equal(t, 0, buttonIncomeTriggersIn(6, 10))
	require.Equal(t, 2, buttonIncomeTriggersIn(5, 11), "Long walks can cross several income spaces")
}

func TestIncomeTriggersAhead(t *testing.T) {
	require.Equal(t, 9, IncomeTriggersAhead(0))
	require.Equal(t, 8, IncomeTriggersAhead(5), "A token on an income space has already collected it")
	require.Equal(t, 1, IncomeTriggersAhead(47))
	require.Equal(t, 0, IncomeTriggersAhead(MaxPosition))
}

func TestSpecialPatchIn(t *testing.T) {
	remaining := initialSpecialPatches()

	require.Equal(t, 26, specialPatchIn(remaining, 20, 30))
	require.Equal(t, -1, specialPatchIn(remaining, 0, 25))
	require.Equal(t, 26, specialPatchIn(remaining, 26, 26))

	taken := remaining &^ (1 << 26)
	require.Equal(t, -1, specialPatchIn(taken, 20, 30), "A collected patch is gone for both players")
	require.Equal(t, 32, specialPatchIn(taken, 20, 40))
}
