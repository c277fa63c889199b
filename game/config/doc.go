// Package config provides level and theme configuration for the memory
// matching game.
//
// The config package handles:
//   - Loading the difficulty table (levels.json) and card themes
//     (themes.json) from a config directory
//   - Validation of every level and of theme coverage at load time
//   - Built-in defaults when no config files are present
//
// Configuration Format:
//
// levels.json holds an array of level objects. Each level defines the
// board dimensions, the advisory time limit, the flip target the
// efficiency bonus is scaled against, and the base score:
//
//	[
//	  {"id": 1, "name": "Easy", "rows": 3, "cols": 4,
//	   "time_limit": 120, "target_flips": 12, "base_score": 500}
//	]
//
// themes.json maps theme names to symbol sets. A theme must carry at
// least as many symbols as the largest level has pairs.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	level, err := manager.Level(2)
//	symbols, err := manager.Theme("animals")
//
// Defaults:
//
// Without config files the manager serves three built-in levels (Easy
// 3x4, Medium 4x4, Hard 4x6) and four emoji themes (animals, fruits,
// objects, nature) of 16 symbols each.
package config
