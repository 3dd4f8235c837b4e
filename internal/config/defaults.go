package config

import (
	_ "embed"
)

//go:embed defaults/mazechase.yaml
var defaultMazeChaseYAML []byte

// DefaultMazeChaseConfig returns the default Maze Chase configuration.
func DefaultMazeChaseConfig() MazeChaseConfig {
	return MazeChaseConfig{
		Physics: MazeChasePhysics{
			CellSize:       40,
			PlayerSpeed:    5,
			AdversarySpeed: 4,
		},
		Gameplay: MazeChaseGameplay{
			Lives:             3,
			CollectiblePoints: 10,
			DeadEnd:           "reverse",
		},
		Render: MazeChaseRender{
			CellWidth: 2,
		},
	}
}
