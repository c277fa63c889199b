package engine

import "fmt"

// ValidateLevelConfig validates a single difficulty level for
// correctness and playability.
func ValidateLevelConfig(level *LevelConfig) error {
	if level == nil {
		return fmt.Errorf("level validation: level is nil")
	}
	if level.ID < MinLevelID {
		return fmt.Errorf("level validation: id must be >= %d, got %d", MinLevelID, level.ID)
	}
	if level.Name == "" {
		return fmt.Errorf("level validation: name is required")
	}
	if level.Rows < MinGridEdge || level.Rows > MaxGridEdge {
		return fmt.Errorf("level validation: rows must be between %d and %d, got %d", MinGridEdge, MaxGridEdge, level.Rows)
	}
	if level.Cols < MinGridEdge || level.Cols > MaxGridEdge {
		return fmt.Errorf("level validation: cols must be between %d and %d, got %d", MinGridEdge, MaxGridEdge, level.Cols)
	}
	if level.Rows*level.Cols%2 != 0 {
		return fmt.Errorf("level validation: grid %dx%d holds an odd number of cards", level.Rows, level.Cols)
	}
	if level.TimeLimit < MinTimeLimit {
		return fmt.Errorf("level validation: time_limit must be >= %d seconds, got %d", MinTimeLimit, level.TimeLimit)
	}
	if level.TargetFlips <= 0 {
		return fmt.Errorf("level validation: target_flips must be positive, got %d", level.TargetFlips)
	}
	if level.BaseScore <= 0 {
		return fmt.Errorf("level validation: base_score must be positive, got %d", level.BaseScore)
	}
	return nil
}

// ValidateThemeCoverage checks that a theme has enough symbols for a
// level's grid. This runs at configuration time so deck generation can
// assume a valid pairing and skip the check at deal time.
func ValidateThemeCoverage(level *LevelConfig, themeName string, symbols []string) error {
	if pairs := level.PairCount(); len(symbols) < pairs {
		return fmt.Errorf("theme validation: theme %q has %d symbols but level %d (%s) needs %d pairs",
			themeName, len(symbols), level.ID, level.Name, pairs)
	}
	return nil
}
