package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficultyPreset validates a preset name. Empty means normal.
func ParseDifficultyPreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	case "":
		return DifficultyNormal, nil
	}
	return DifficultyNormal, fmt.Errorf("unknown difficulty %q (easy, normal, hard)", s)
}

// ApplyMazeChasePreset adjusts lives and adversary speed for a preset.
// Speeds are chosen from divisors of the default cell size.
func ApplyMazeChasePreset(cfg *MazeChaseConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Physics.AdversarySpeed = 2
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Physics.AdversarySpeed = 5
	}
}
