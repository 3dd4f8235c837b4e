// Package formats provides maze file format parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLMaze represents the YAML structure for a maze file.
type YAMLMaze struct {
	ID          string          `yaml:"id"`
	Name        string          `yaml:"name"`
	Rows        []string        `yaml:"rows"`
	TunnelRows  []int           `yaml:"tunnel_rows,omitempty"`
	Player      YAMLSpawn       `yaml:"player"`
	Adversaries []YAMLAdversary `yaml:"adversaries,omitempty"`
}

// YAMLSpawn is a cell coordinate.
type YAMLSpawn struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// YAMLAdversary is an adversary spawn entry.
type YAMLAdversary struct {
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
	Heading string `yaml:"heading"`
	Name    string `yaml:"name"`
}

// Maze represents a parsed maze with rows decoded into layout codes.
type Maze struct {
	ID          string
	Name        string
	Codes       [][]int
	TunnelRows  []int
	Player      YAMLSpawn
	Adversaries []YAMLAdversary
}

// ParseYAML parses a YAML maze file. Each row is a string of 0 (floor),
// 1 (wall) and 2 (collectible) digits.
func ParseYAML(data []byte) (Maze, error) {
	var ym YAMLMaze
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return Maze{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if ym.ID == "" {
		return Maze{}, fmt.Errorf("missing id")
	}

	codes, err := DecodeRows(ym.Rows)
	if err != nil {
		return Maze{}, err
	}

	name := ym.Name
	if name == "" {
		name = ym.ID
	}

	return Maze{
		ID:          ym.ID,
		Name:        name,
		Codes:       codes,
		TunnelRows:  ym.TunnelRows,
		Player:      ym.Player,
		Adversaries: ym.Adversaries,
	}, nil
}

// DecodeRows converts digit strings into layout codes.
func DecodeRows(rows []string) ([][]int, error) {
	codes := make([][]int, len(rows))
	for y, row := range rows {
		codes[y] = make([]int, len(row))
		for x, r := range row {
			if r < '0' || r > '2' {
				return nil, fmt.Errorf("row %d: invalid cell %q at column %d", y, r, x)
			}
			codes[y][x] = int(r - '0')
		}
	}
	return codes, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
