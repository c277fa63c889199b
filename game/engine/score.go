package engine

// ComputeScore calculates the final score for a completed game.
//
// The score is the level's base score plus a time bonus (5 points per
// second left on the level's time limit) and an efficiency bonus
// (target flips over actual moves, scaled by 200). moves must be
// positive; a completed game always has at least one move per pair,
// which also bounds the efficiency bonus without an explicit cap.
func ComputeScore(timeSpent, moves int, level *LevelConfig) int {
	base := level.BaseScore

	remaining := level.TimeLimit - timeSpent
	if remaining < 0 {
		remaining = 0
	}
	timeBonus := remaining * 5

	efficiencyBonus := level.TargetFlips * 200 / moves

	total := base + timeBonus + efficiencyBonus
	if total < 0 {
		return 0
	}
	return total
}
