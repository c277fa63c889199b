package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"memorymatch/game/engine"
)

func writeTemp(t *testing.T, pattern, content string) string {
	t.Helper()

	tmpfile, err := os.CreateTemp(t.TempDir(), pattern)
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	tmpfile.Close()
	return tmpfile.Name()
}

func TestValidateLevels_Valid(t *testing.T) {
	validLevels := `[
		{"id": 1, "name": "Easy", "rows": 3, "cols": 4, "time_limit": 120, "target_flips": 12, "base_score": 500},
		{"id": 2, "name": "Medium", "rows": 4, "cols": 4, "time_limit": 180, "target_flips": 24, "base_score": 1000}
	]`

	path := writeTemp(t, "levels_*.json", validLevels)

	levels, result := validateLevels(path)
	if !result.Valid {
		t.Errorf("Expected valid levels, but got errors: %v", result.Errors)
	}

	if len(levels) != 2 {
		t.Fatalf("Expected 2 levels, got %d", len(levels))
	}

	if result.File != filepath.Base(path) {
		t.Errorf("Expected file name %s, got %s", filepath.Base(path), result.File)
	}
}

func TestValidateLevels_InvalidJSON(t *testing.T) {
	path := writeTemp(t, "levels_*.json", `[{"id": 1, invalid json}]`)

	_, result := validateLevels(path)
	if result.Valid {
		t.Error("Expected invalid result for malformed JSON")
	}

	found := false
	for _, e := range result.Errors {
		if strings.Contains(e, "Invalid JSON") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected 'Invalid JSON' error, got: %v", result.Errors)
	}
}

func TestValidateLevels_MissingFile(t *testing.T) {
	_, result := validateLevels(filepath.Join(t.TempDir(), "nope.json"))
	if result.Valid {
		t.Error("Expected invalid result for missing file")
	}
}

func TestValidateLevels_OddCardCount(t *testing.T) {
	oddLevels := `[
		{"id": 1, "name": "Broken", "rows": 3, "cols": 3, "time_limit": 120, "target_flips": 12, "base_score": 500}
	]`

	path := writeTemp(t, "levels_*.json", oddLevels)

	_, result := validateLevels(path)
	if result.Valid {
		t.Error("Expected invalid result for odd card count")
	}
}

func TestValidateLevels_DuplicateID(t *testing.T) {
	dupLevels := `[
		{"id": 1, "name": "Easy", "rows": 3, "cols": 4, "time_limit": 120, "target_flips": 12, "base_score": 500},
		{"id": 1, "name": "Also Easy", "rows": 4, "cols": 4, "time_limit": 120, "target_flips": 12, "base_score": 500}
	]`

	path := writeTemp(t, "levels_*.json", dupLevels)

	_, result := validateLevels(path)
	if result.Valid {
		t.Error("Expected invalid result for duplicate level IDs")
	}

	found := false
	for _, e := range result.Errors {
		if strings.Contains(e, "Duplicate level ID 1") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected duplicate ID error, got: %v", result.Errors)
	}
}

func TestValidateLevels_Empty(t *testing.T) {
	path := writeTemp(t, "levels_*.json", `[]`)

	_, result := validateLevels(path)
	if result.Valid {
		t.Error("Expected invalid result for empty level list")
	}
}

func testLevels() []*engine.LevelConfig {
	return []*engine.LevelConfig{
		{ID: 1, Name: "Easy", Rows: 3, Cols: 4, TimeLimit: 120, TargetFlips: 12, BaseScore: 500},
		{ID: 2, Name: "Medium", Rows: 4, Cols: 4, TimeLimit: 180, TargetFlips: 24, BaseScore: 1000},
	}
}

func TestValidateThemes_Valid(t *testing.T) {
	validThemes := `{
		"letters": ["A", "B", "C", "D", "E", "F", "G", "H"],
		"numbers": ["1", "2", "3", "4", "5", "6", "7", "8", "9", "10"]
	}`

	path := writeTemp(t, "themes_*.json", validThemes)

	result := validateThemes(path, testLevels())
	if !result.Valid {
		t.Errorf("Expected valid themes, but got errors: %v", result.Errors)
	}
}

func TestValidateThemes_TooFewSymbols(t *testing.T) {
	// 6 symbols covers the 3x4 level but not the 4x4 one
	shortThemes := `{
		"letters": ["A", "B", "C", "D", "E", "F"]
	}`

	path := writeTemp(t, "themes_*.json", shortThemes)

	result := validateThemes(path, testLevels())
	if result.Valid {
		t.Error("Expected invalid result when a theme cannot cover every level")
	}
}

func TestValidateThemes_DuplicateSymbol(t *testing.T) {
	dupThemes := `{
		"letters": ["A", "B", "C", "D", "E", "F", "G", "A"]
	}`

	path := writeTemp(t, "themes_*.json", dupThemes)

	result := validateThemes(path, testLevels())
	if result.Valid {
		t.Error("Expected invalid result for repeated symbol")
	}

	found := false
	for _, e := range result.Errors {
		if strings.Contains(e, `repeats symbol "A"`) {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected repeated symbol error, got: %v", result.Errors)
	}
}

func TestValidateThemes_InvalidJSON(t *testing.T) {
	path := writeTemp(t, "themes_*.json", `{"letters": not json}`)

	result := validateThemes(path, testLevels())
	if result.Valid {
		t.Error("Expected invalid result for malformed JSON")
	}
}

func TestValidateThemes_Empty(t *testing.T) {
	path := writeTemp(t, "themes_*.json", `{}`)

	result := validateThemes(path, testLevels())
	if result.Valid {
		t.Error("Expected invalid result for empty theme map")
	}
}

func TestPrintResult(t *testing.T) {
	valid := ValidationResult{File: "levels.json", Valid: true, Errors: []string{"✓ Level 1"}}
	if !printResult(valid) {
		t.Error("Expected printResult to return true for a valid result")
	}

	invalid := ValidationResult{File: "themes.json", Valid: false, Errors: []string{"bad"}}
	if printResult(invalid) {
		t.Error("Expected printResult to return false for an invalid result")
	}
}
