// Package levels loads maze definitions from YAML files and from the mazes
// built into the binary. This package depends on engine but engine does not
// depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/mazechase/internal/games/mazechase/engine"
	"github.com/vovakirdan/mazechase/internal/games/mazechase/levels/formats"
)

//go:embed mazes/*.yaml
var builtinFS embed.FS

// DefaultID is the maze used when none is selected.
const DefaultID = "classic"

// ErrNotFound is returned when no maze has the requested ID.
var ErrNotFound = errors.New("maze not found")

// Level represents a complete, validated maze definition.
type Level struct {
	ID          string
	Name        string
	Codes       [][]int
	TunnelRows  []int
	Player      engine.Point
	Adversaries []engine.AdversarySpawn
	FilePath    string // Empty for built-in mazes
}

// Width returns the number of columns.
func (l Level) Width() int {
	if len(l.Codes) == 0 {
		return 0
	}
	return len(l.Codes[0])
}

// Height returns the number of rows.
func (l Level) Height() int {
	return len(l.Codes)
}

// Layout converts the level into an engine layout.
func (l Level) Layout() engine.Layout {
	return engine.Layout{
		Codes:       l.Codes,
		TunnelRows:  l.TunnelRows,
		Player:      l.Player,
		Adversaries: l.Adversaries,
	}
}

// Validate checks that the maze forms a grid and that every spawn sits on
// a non-wall cell inside it.
func (l Level) Validate() error {
	grid, err := engine.NewGrid(l.Codes, l.TunnelRows)
	if err != nil {
		return fmt.Errorf("maze %s: %w", l.ID, err)
	}

	check := func(who string, p engine.Point) error {
		if p.X < 0 || p.X >= grid.Width() || p.Y < 0 || p.Y >= grid.Height() {
			return fmt.Errorf("maze %s: %s spawn (%d, %d) outside %dx%d grid", l.ID, who, p.X, p.Y, grid.Width(), grid.Height())
		}
		if cell, _ := grid.CellAt(p.X, p.Y); cell == engine.Wall {
			return fmt.Errorf("maze %s: %s spawn (%d, %d) is a wall", l.ID, who, p.X, p.Y)
		}
		return nil
	}

	if err := check("player", l.Player); err != nil {
		return err
	}
	for _, a := range l.Adversaries {
		if err := check(a.Name, a.Cell); err != nil {
			return err
		}
	}
	return nil
}

// Builtin returns the mazes compiled into the binary, sorted with the
// default maze first and the rest by ID.
func Builtin() ([]Level, error) {
	entries, err := fs.ReadDir(builtinFS, "mazes")
	if err != nil {
		return nil, fmt.Errorf("reading built-in mazes: %w", err)
	}

	var levels []Level
	for _, e := range entries {
		data, err := builtinFS.ReadFile("mazes/" + e.Name())
		if err != nil {
			return nil, err
		}
		lvl, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("built-in maze %s: %w", e.Name(), err)
		}
		levels = append(levels, lvl)
	}

	sortLevels(levels)
	return levels, nil
}

// BuiltinByID returns a single built-in maze.
func BuiltinByID(id string) (Level, error) {
	levels, err := Builtin()
	if err != nil {
		return Level{}, err
	}
	return findByID(levels, id)
}

// Parse decodes and validates a YAML maze.
func Parse(data []byte) (Level, error) {
	parsed, err := formats.ParseYAML(data)
	if err != nil {
		return Level{}, err
	}

	lvl := Level{
		ID:         parsed.ID,
		Name:       parsed.Name,
		Codes:      parsed.Codes,
		TunnelRows: parsed.TunnelRows,
		Player:     engine.Point{X: parsed.Player.X, Y: parsed.Player.Y},
	}

	for i, a := range parsed.Adversaries {
		h, err := engine.ParseHeading(a.Heading)
		if err != nil {
			return Level{}, fmt.Errorf("maze %s: adversary %d: %w", parsed.ID, i, err)
		}
		name := a.Name
		if name == "" {
			name = fmt.Sprintf("adversary-%d", i+1)
		}
		lvl.Adversaries = append(lvl.Adversaries, engine.AdversarySpawn{
			Cell:    engine.Point{X: a.X, Y: a.Y},
			Heading: h,
			Name:    name,
		})
	}

	if err := lvl.Validate(); err != nil {
		return Level{}, err
	}
	return lvl, nil
}

// Loader handles loading mazes from a directory or a single file.
type Loader struct {
	Root string
}

// NewLoader creates a new maze loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll loads every maze under Root. A Root naming a single file loads
// just that file. Invalid files are skipped. Returns mazes sorted by ID.
func (l *Loader) LoadAll() ([]Level, error) {
	info, err := os.Stat(l.Root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", l.Root, err)
	}
	if !info.IsDir() {
		lvl, err := l.LoadFile(l.Root)
		if err != nil {
			return nil, err
		}
		return []Level{lvl}, nil
	}

	var levels []Level
	err = filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		lvl, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}
		levels = append(levels, lvl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sortLevels(levels)
	return levels, nil
}

// LoadFile loads a single maze file.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	lvl, err := Parse(data)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	lvl.FilePath = path
	return lvl, nil
}

// LoadByID loads a specific maze by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	return findByID(levels, id)
}

func findByID(levels []Level, id string) (Level, error) {
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func sortLevels(levels []Level) {
	sort.Slice(levels, func(i, j int) bool {
		if (levels[i].ID == DefaultID) != (levels[j].ID == DefaultID) {
			return levels[i].ID == DefaultID
		}
		return levels[i].ID < levels[j].ID
	})
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
