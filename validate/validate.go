// Command validate provides a small CLI that validates the level and
// theme JSON files in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Grid bounds and even card counts per level
//   - Unique level IDs and sensible time limits and score settings
//   - Unique symbols within each theme
//   - Coverage: every theme holds enough symbols for every level
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"memorymatch/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateLevels loads and validates the level definitions file.
func validateLevels(filePath string) ([]*engine.LevelConfig, ValidationResult) {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return nil, result
	}

	var levels []*engine.LevelConfig
	if err := json.Unmarshal(data, &levels); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return nil, result
	}

	if len(levels) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "No levels defined")
		return nil, result
	}

	seen := make(map[int]bool)
	for _, level := range levels {
		if err := engine.ValidateLevelConfig(level); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		if seen[level.ID] {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Duplicate level ID %d", level.ID))
		}
		seen[level.ID] = true
	}

	if result.Valid {
		sort.Slice(levels, func(i, j int) bool { return levels[i].ID < levels[j].ID })
		for _, level := range levels {
			result.Errors = append(result.Errors,
				fmt.Sprintf("✓ Level %d %q: %dx%d grid (%d pairs), %ds limit, target %d flips",
					level.ID, level.Name, level.Rows, level.Cols,
					level.PairCount(), level.TimeLimit, level.TargetFlips))
		}
	}

	return levels, result
}

// validateThemes loads the theme file and cross-checks every theme
// against every level's pair count.
func validateThemes(filePath string, levels []*engine.LevelConfig) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var themes map[string][]string
	if err := json.Unmarshal(data, &themes); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if len(themes) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "No themes defined")
		return result
	}

	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		symbols := themes[name]

		// Duplicate symbols would deal boards with more than one twin
		// per value
		unique := make(map[string]bool, len(symbols))
		for _, sym := range symbols {
			if unique[sym] {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Theme %q repeats symbol %q", name, sym))
			}
			unique[sym] = true
		}

		for _, level := range levels {
			if err := engine.ValidateThemeCoverage(level, name, symbols); err != nil {
				result.Valid = false
				result.Errors = append(result.Errors, err.Error())
			}
		}
	}

	if result.Valid {
		for _, name := range names {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Theme %q: %d symbols", name, len(themes[name])))
		}
	}

	return result
}

func printResult(result ValidationResult) bool {
	fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

	if result.Valid {
		fmt.Println("✅ VALID")
		for _, info := range result.Errors {
			fmt.Println("  " + info)
		}
		return true
	}

	fmt.Println("❌ INVALID")
	for _, err := range result.Errors {
		if !strings.HasPrefix(err, "✓") {
			fmt.Println("  ❌ " + err)
		}
	}
	return false
}

// main validates ../configs/levels.json and ../configs/themes.json,
// printing a concise report and exiting with non-zero status if either
// is invalid.
func main() {
	configDir := "../configs"

	levels, levelResult := validateLevels(filepath.Join(configDir, "levels.json"))
	allValid := printResult(levelResult)

	themeResult := validateThemes(filepath.Join(configDir, "themes.json"), levels)
	if !printResult(themeResult) {
		allValid = false
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
