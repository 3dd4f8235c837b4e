// Package config provides YAML-based game configuration loading and
// difficulty presets for Maze Chase.
package config

import "fmt"

// MazeChaseConfig contains all configuration for Maze Chase.
type MazeChaseConfig struct {
	Physics  MazeChasePhysics  `yaml:"physics"`
	Gameplay MazeChaseGameplay `yaml:"gameplay"`
	Render   MazeChaseRender   `yaml:"render"`
}

// MazeChasePhysics defines movement parameters in pixels per tick.
type MazeChasePhysics struct {
	CellSize       int `yaml:"cell_size"`
	PlayerSpeed    int `yaml:"player_speed"`
	AdversarySpeed int `yaml:"adversary_speed"`
}

// MazeChaseGameplay defines scoring and rules.
type MazeChaseGameplay struct {
	Lives             int    `yaml:"lives"`
	CollectiblePoints int    `yaml:"collectible_points"`
	DeadEnd           string `yaml:"dead_end"` // "reverse" or "wait"
}

// MazeChaseRender defines terminal rendering parameters.
type MazeChaseRender struct {
	CellWidth int `yaml:"cell_width"` // Terminal columns per maze cell
}

// Validate checks that the configuration can drive a round. Speeds must
// divide the cell size so agents can line up with corridors.
func (c MazeChaseConfig) Validate() error {
	p := c.Physics
	switch {
	case p.CellSize <= 0:
		return fmt.Errorf("physics.cell_size must be positive, got %d", p.CellSize)
	case p.PlayerSpeed <= 0 || p.PlayerSpeed > p.CellSize:
		return fmt.Errorf("physics.player_speed must be in [1,%d], got %d", p.CellSize, p.PlayerSpeed)
	case p.AdversarySpeed <= 0 || p.AdversarySpeed > p.CellSize:
		return fmt.Errorf("physics.adversary_speed must be in [1,%d], got %d", p.CellSize, p.AdversarySpeed)
	case p.CellSize%p.PlayerSpeed != 0:
		return fmt.Errorf("physics.player_speed %d does not divide cell_size %d", p.PlayerSpeed, p.CellSize)
	case p.CellSize%p.AdversarySpeed != 0:
		return fmt.Errorf("physics.adversary_speed %d does not divide cell_size %d", p.AdversarySpeed, p.CellSize)
	}

	g := c.Gameplay
	switch {
	case g.Lives <= 0:
		return fmt.Errorf("gameplay.lives must be positive, got %d", g.Lives)
	case g.CollectiblePoints <= 0:
		return fmt.Errorf("gameplay.collectible_points must be positive, got %d", g.CollectiblePoints)
	case g.DeadEnd != "" && g.DeadEnd != "reverse" && g.DeadEnd != "wait":
		return fmt.Errorf("gameplay.dead_end must be reverse or wait, got %q", g.DeadEnd)
	}

	if c.Render.CellWidth < 1 || c.Render.CellWidth > 3 {
		return fmt.Errorf("render.cell_width must be in [1,3], got %d", c.Render.CellWidth)
	}
	return nil
}
