package world

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-nav/pkg/formats"
	"github.com/Faultbox/midgard-nav/pkg/math"
)

// Scenario validation errors.
var (
	ErrNoGrid                = errors.New("scenario has no grid")
	ErrGridConflict          = errors.New("scenario sets both grid and grid_file")
	ErrUnnamedInteractable   = errors.New("interactable has no name")
	ErrDuplicateInteractable = errors.New("duplicate interactable name")
	ErrUnknownInteractable   = errors.New("click targets unknown interactable")
	ErrInvalidClick          = errors.New("click needs exactly one of ground or interactable")
	ErrInvalidReaction       = errors.New("reaction needs exactly one of animate or say")
	ErrNegativeClickTime     = errors.New("click time is negative")
	ErrInvalidClipDuration   = errors.New("animation reaction duration must be positive")
)

// Point is a world position written as [x, y, z].
type Point [3]float32

// Vec3 converts to a vector.
func (p Point) Vec3() math.Vec3 {
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

// ReactionSpec describes one reaction of an interactable.
type ReactionSpec struct {
	Animate  string        `yaml:"animate,omitempty"`  // Clip name triggered on the character
	Duration time.Duration `yaml:"duration,omitempty"` // Clip length
	Tag      string        `yaml:"tag,omitempty"`      // Clip state tag, "Interaction" when empty
	Say      string        `yaml:"say,omitempty"`      // Logged line
}

// InteractableSpec describes a clickable object.
type InteractableSpec struct {
	Name      string         `yaml:"name"`
	Position  Point          `yaml:"position"`
	Size      Point          `yaml:"size"`
	Anchor    Point          `yaml:"anchor"`
	AnchorYaw float32        `yaml:"anchor_yaw"` // Radians
	Reactions []ReactionSpec `yaml:"reactions"`
}

// ClickSpec is a scripted click at a point in simulated time.
type ClickSpec struct {
	At           time.Duration `yaml:"at"`
	Ground       *Point        `yaml:"ground,omitempty"`
	Interactable string        `yaml:"interactable,omitempty"`
}

// Scenario is a scripted level: a walkability grid, a spawn point,
// interactables and the clicks to replay.
type Scenario struct {
	Name          string             `yaml:"name"`
	Grid          []string           `yaml:"grid,omitempty"`
	GridFile      string             `yaml:"grid_file,omitempty"` // Text grid or .gat table, relative to the scenario
	Spawn         Point              `yaml:"spawn"`
	SpawnYaw      float32            `yaml:"spawn_yaw"`
	Interactables []InteractableSpec `yaml:"interactables"`
	Clicks        []ClickSpec        `yaml:"clicks"`

	navGrid *formats.NavGrid
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	sc, err := parseScenario(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}

// ParseScenario decodes and validates scenario YAML. Clicks are ordered by
// time. A grid_file is resolved against the working directory.
func ParseScenario(data []byte) (*Scenario, error) {
	return parseScenario(data, "")
}

func parseScenario(data []byte, baseDir string) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("decoding scenario: %w", err)
	}
	if err := sc.loadGrid(baseDir); err != nil {
		return nil, err
	}
	if err := sc.validate(); err != nil {
		return nil, err
	}
	slices.SortStableFunc(sc.Clicks, func(a, b ClickSpec) int {
		return cmp.Compare(a.At, b.At)
	})
	return &sc, nil
}

func (sc *Scenario) loadGrid(baseDir string) error {
	switch {
	case len(sc.Grid) > 0 && sc.GridFile != "":
		return ErrGridConflict
	case len(sc.Grid) > 0:
		grid, err := formats.ParseNavGrid(sc.Grid)
		if err != nil {
			return fmt.Errorf("grid: %w", err)
		}
		sc.navGrid = grid
		return nil
	case sc.GridFile != "":
		path := sc.GridFile
		if !filepath.IsAbs(path) && baseDir != "" {
			path = filepath.Join(baseDir, path)
		}
		load := formats.LoadNavGrid
		if strings.EqualFold(filepath.Ext(path), ".gat") {
			load = formats.LoadGAT
		}
		grid, err := load(path)
		if err != nil {
			return fmt.Errorf("grid_file: %w", err)
		}
		sc.navGrid = grid
		return nil
	default:
		return ErrNoGrid
	}
}

// NavGrid returns the parsed walkability grid.
func (sc *Scenario) NavGrid() *formats.NavGrid {
	return sc.navGrid
}

func (sc *Scenario) validate() error {
	names := make(map[string]bool, len(sc.Interactables))
	for i, spec := range sc.Interactables {
		if spec.Name == "" {
			return fmt.Errorf("interactable %d: %w", i, ErrUnnamedInteractable)
		}
		if names[spec.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateInteractable, spec.Name)
		}
		names[spec.Name] = true

		for j, r := range spec.Reactions {
			if (r.Animate == "") == (r.Say == "") {
				return fmt.Errorf("%s reaction %d: %w", spec.Name, j, ErrInvalidReaction)
			}
			if r.Animate != "" && r.Duration <= 0 {
				return fmt.Errorf("%s reaction %d: %w", spec.Name, j, ErrInvalidClipDuration)
			}
		}
	}

	for i, c := range sc.Clicks {
		if c.At < 0 {
			return fmt.Errorf("click %d: %w", i, ErrNegativeClickTime)
		}
		if (c.Ground == nil) == (c.Interactable == "") {
			return fmt.Errorf("click %d: %w", i, ErrInvalidClick)
		}
		if c.Interactable != "" && !names[c.Interactable] {
			return fmt.Errorf("click %d: %w: %s", i, ErrUnknownInteractable, c.Interactable)
		}
	}
	return nil
}
