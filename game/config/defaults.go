package config

import "memorymatch/game/engine"

// defaultLevels returns the built-in difficulty table used when no
// levels.json is present.
func defaultLevels() map[int]*engine.LevelConfig {
	return map[int]*engine.LevelConfig{
		1: {ID: 1, Name: "Easy", Rows: 3, Cols: 4, TimeLimit: 120, TargetFlips: 12, BaseScore: 500},
		2: {ID: 2, Name: "Medium", Rows: 4, Cols: 4, TimeLimit: 180, TargetFlips: 24, BaseScore: 1000},
		3: {ID: 3, Name: "Hard", Rows: 4, Cols: 6, TimeLimit: 240, TargetFlips: 36, BaseScore: 1500},
	}
}

// defaultThemes returns the built-in symbol sets. Each set carries 16
// symbols, enough for the largest built-in level (4x6, 12 pairs).
func defaultThemes() map[string][]string {
	return map[string][]string{
		"animals": {
			"🐶", "🐱", "🐭", "🐹", "🐰", "🦊", "🐻", "🐼",
			"🐨", "🐯", "🦁", "🐮", "🐷", "🐸", "🐵", "🐔",
		},
		"fruits": {
			"🍎", "🍌", "🍇", "🍓", "🍒", "🍑", "🍍", "🥝",
			"🍉", "🍈", "🍋", "🍊", "🥭", "🍐", "🫐", "🍅",
		},
		"objects": {
			"⚽", "🏀", "🎸", "🎹", "🎲", "🎯", "🎁", "🎈",
			"🚗", "✈️", "🚀", "⛵", "🎻", "🥁", "📷", "⏰",
		},
		"nature": {
			"🌸", "🌻", "🌹", "🌵", "🌴", "🍀", "🍁", "🌳",
			"⭐", "🌙", "☀️", "⛅", "🌈", "❄️", "🌊", "🔥",
		},
	}
}
