package maze

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/zyedidia/generic/mapset"
)

// Algorithm selects the spanning-tree generator.
type Algorithm string

const (
	AlgorithmDFS         Algorithm = "dfs" // Randomized depth-first backtracker.
	AlgorithmHuntAndKill Algorithm = "hak" // Hunt-and-Kill.
)

// ParseAlgorithm maps a configuration value to an Algorithm. The empty string selects DFS.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dfs", "backtracker":
		return AlgorithmDFS, nil
	case "hak", "hunt-and-kill", "huntandkill":
		return AlgorithmHuntAndKill, nil
	default:
		return "", fmt.Errorf("%w: unknown algorithm %q", ErrConfiguration, s)
	}
}

// Config describes a single generation run.
type Config struct {
	Width     int
	Height    int
	Entry     Point
	Exit      Point
	Seed      *int64 // nil picks a time-based seed; the one used is reported in Result.
	Perfect   bool
	Algorithm Algorithm

	// LoopProbability is the chance a dead end is opened when Perfect is false.
	// Zero means DefaultLoopProbability; use a negative value for "never".
	LoopProbability float64
}

// Result is a generated maze together with everything needed to reproduce or render it.
type Result struct {
	Maze      *Maze
	Blocked   mapset.Set[CellPosition]
	Entry     Point
	Exit      Point
	Seed      int64
	Algorithm Algorithm
	Perfect   bool
}

// Validate checks cfg against the grid it describes and returns its blocked set.
// It never touches a grid, so a failing configuration has no side effects.
func (cfg Config) Validate() (mapset.Set[CellPosition], error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return mapset.Set[CellPosition]{}, fmt.Errorf("%w: width and height must be positive, got %dx%d", ErrConfiguration, cfg.Width, cfg.Height)
	}

	if _, err := ParseAlgorithm(string(cfg.Algorithm)); err != nil {
		return mapset.Set[CellPosition]{}, err
	}

	// Perfect mazes never run the loop pass, so their probability is ignored.
	if p := cfg.loopProbability(); !cfg.Perfect && (p < 0 || p > 1) {
		return mapset.Set[CellPosition]{}, fmt.Errorf("%w: loop probability %v outside [0,1]", ErrConfiguration, cfg.LoopProbability)
	}

	inBound := func(p Point) bool {
		return p.X >= 0 && p.X < cfg.Width && p.Y >= 0 && p.Y < cfg.Height
	}
	if !inBound(cfg.Entry) {
		return mapset.Set[CellPosition]{}, fmt.Errorf("%w: entry point %v is outside the %dx%d maze", ErrConfiguration, cfg.Entry, cfg.Width, cfg.Height)
	}
	if !inBound(cfg.Exit) {
		return mapset.Set[CellPosition]{}, fmt.Errorf("%w: exit point %v is outside the %dx%d maze", ErrConfiguration, cfg.Exit, cfg.Width, cfg.Height)
	}

	blocked, err := ComputeMask(cfg.Width, cfg.Height)
	if err != nil {
		return blocked, err
	}
	if blocked.Has(cfg.Entry.Position()) {
		return blocked, fmt.Errorf("%w: entry point %v is inside the 42 (blocked) mask", ErrConfiguration, cfg.Entry)
	}
	if blocked.Has(cfg.Exit.Position()) {
		return blocked, fmt.Errorf("%w: exit point %v is inside the 42 (blocked) mask", ErrConfiguration, cfg.Exit)
	}

	return blocked, nil
}

func (cfg Config) loopProbability() float64 {
	switch {
	case cfg.LoopProbability == 0:
		return DefaultLoopProbability
	case cfg.LoopProbability < 0:
		return 0
	default:
		return cfg.LoopProbability
	}
}

// Generate builds a maze from cfg. It either fails before any wall is opened or
// returns a fully carved maze; the same cfg and seed always yield the same walls.
func Generate(cfg Config) (*Result, error) {
	blocked, err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	algorithm, _ := ParseAlgorithm(string(cfg.Algorithm))

	seed := time.Now().UnixNano()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	m, err := New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}

	entry := cfg.Entry.Position()
	switch algorithm {
	case AlgorithmHuntAndKill:
		err = huntAndKill(m, entry, blocked, rng)
	default:
		err = dfs(m, entry, blocked, rng)
	}
	if err != nil {
		return nil, err
	}

	if !cfg.Perfect {
		if err := MakeImperfect(m, blocked, cfg.loopProbability(), rng); err != nil {
			return nil, err
		}
	}
	m.resetVisited()

	return &Result{
		Maze:      m,
		Blocked:   blocked,
		Entry:     cfg.Entry,
		Exit:      cfg.Exit,
		Seed:      seed,
		Algorithm: algorithm,
		Perfect:   cfg.Perfect,
	}, nil
}
