package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/amazeing/domain"
	"github.com/beka-birhanu/amazeing/encoder"
	"github.com/beka-birhanu/amazeing/maze"
	"github.com/beka-birhanu/amazeing/service/i"
	"github.com/google/uuid"
)

const (
	defaultPrefix       = "amazeing"
	defaultMaxDimension = 200
	defaultListLimit    = 50
	mazeKeyFmt          = "%s:maze:%dx%d:%s:%s:%d:%t:%s:%g"
)

var (
	ErrDimensionTooLarge = errors.New("maze dimension too large")
	ErrArchiveDisabled   = errors.New("maze archive is not configured")
)

var _ i.MazeService = &MazeService{}

// Options tunes a MazeService.
type Options struct {
	Prefix       string // Prefix of cache keys
	MaxDimension int    // Largest accepted width or height
}

// MazeService generates solved mazes, caching seeded ones and archiving on request.
// Cache and repo are optional.
type MazeService struct {
	cache   i.MazeCache
	repo    i.MazeRepo
	encoder i.Encoder
	logger  i.Logger
	opts    *Options
}

// NewMazeService creates a MazeService. A nil cache disables caching and a nil
// repo disables archiving.
func NewMazeService(cache i.MazeCache, repo i.MazeRepo, enc i.Encoder, logger i.Logger, opts *Options) (*MazeService, error) {
	if enc == nil {
		return nil, errors.New("maze service needs an encoder")
	}
	if logger == nil {
		return nil, errors.New("maze service needs a logger")
	}

	if opts == nil {
		opts = &Options{
			Prefix:       defaultPrefix,
			MaxDimension: defaultMaxDimension,
		}
	}

	if opts.Prefix == "" {
		opts.Prefix = defaultPrefix
	}

	if opts.MaxDimension <= 0 {
		opts.MaxDimension = defaultMaxDimension
	}

	return &MazeService{
		cache:   cache,
		repo:    repo,
		encoder: enc,
		logger:  logger,
		opts:    opts,
	}, nil
}

// Generate implements i.MazeGenerator. Seeded requests are served from the
// cache when possible, since the same seed always yields the same maze.
func (s *MazeService) Generate(ctx context.Context, cfg maze.Config) (*dmn.Maze, error) {
	if cfg.Width > s.opts.MaxDimension || cfg.Height > s.opts.MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d", ErrDimensionTooLarge, cfg.Width, cfg.Height, s.opts.MaxDimension)
	}
	if _, err := cfg.Validate(); err != nil {
		return nil, err
	}

	if s.cache == nil || cfg.Seed == nil {
		return s.generate(cfg)
	}

	key := s.cacheKey(cfg)
	if m, ok := s.fromCache(ctx, key, cfg); ok {
		return m, nil
	}

	unlock, err := s.cache.Lock(ctx, key)
	if err != nil {
		s.logger.Warning(fmt.Sprintf("Locking %s: %v", key, err))
	} else {
		defer func() {
			if err := unlock(); err != nil {
				s.logger.Warning(fmt.Sprintf("Unlocking %s: %v", key, err))
			}
		}()

		// Another instance may have filled the key while we waited.
		if m, ok := s.fromCache(ctx, key, cfg); ok {
			return m, nil
		}
	}

	m, err := s.generate(cfg)
	if err != nil {
		return nil, err
	}

	data, err := s.encoder.Marshal(m.Record)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Encoding maze %s: %v", m.ID, err))
		return m, nil
	}
	if err := s.cache.Set(ctx, key, data); err != nil {
		s.logger.Warning(fmt.Sprintf("Caching %s: %v", key, err))
	}

	return m, nil
}

// Archive implements i.MazeService.
func (s *MazeService) Archive(ctx context.Context, m *dmn.Maze, owner string) (uuid.UUID, error) {
	if s.repo == nil {
		return uuid.Nil, ErrArchiveDisabled
	}

	archived := *m
	if archived.ID == uuid.Nil {
		archived.ID = uuid.New()
	}
	archived.Owner = owner
	if archived.CreatedAt.IsZero() {
		archived.CreatedAt = time.Now().UTC()
	}

	if err := s.repo.Save(ctx, &archived); err != nil {
		s.logger.Error(fmt.Sprintf("Archiving maze %s: %v", archived.ID, err))
		return uuid.Nil, err
	}

	s.logger.Info(fmt.Sprintf("Archived maze %s for %s", archived.ID, owner))
	return archived.ID, nil
}

// Fetch implements i.MazeService.
func (s *MazeService) Fetch(ctx context.Context, id uuid.UUID) (*dmn.Maze, error) {
	if s.repo == nil {
		return nil, ErrArchiveDisabled
	}
	return s.repo.ByID(ctx, id)
}

// List implements i.MazeService.
func (s *MazeService) List(ctx context.Context, owner string) ([]dmn.Maze, error) {
	if s.repo == nil {
		return nil, ErrArchiveDisabled
	}
	return s.repo.ByOwner(ctx, owner, defaultListLimit)
}

func (s *MazeService) generate(cfg maze.Config) (*dmn.Maze, error) {
	start := time.Now()
	res, err := maze.Generate(cfg)
	if err != nil {
		return nil, err
	}

	from, to := res.Entry.Position(), res.Exit.Position()
	path, ok := maze.Solve(res.Maze, from, to)
	if !ok {
		s.logger.Warning(fmt.Sprintf("No path from %v to %v in %dx%d maze (seed %d)", res.Entry, res.Exit, cfg.Width, cfg.Height, res.Seed))
	}

	m := &dmn.Maze{
		ID:        uuid.New(),
		Seed:      res.Seed,
		Algorithm: res.Algorithm,
		Perfect:   res.Perfect,
		Record:    encoder.FromResult(res, path),
		Stats:     maze.Analyze(res.Maze, from, res.Blocked),
		CreatedAt: time.Now().UTC(),
	}

	s.logger.Info(fmt.Sprintf("Generated %dx%d %s maze (seed %d, %d loops) in %v",
		cfg.Width, cfg.Height, res.Algorithm, res.Seed, m.Stats.Loops, time.Since(start)))
	return m, nil
}

// fromCache rebuilds a maze from its cached record.
func (s *MazeService) fromCache(ctx context.Context, key string, cfg maze.Config) (*dmn.Maze, bool) {
	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warning(fmt.Sprintf("Reading cache %s: %v", key, err))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	rec, err := s.encoder.Unmarshal(data)
	if err != nil {
		s.logger.Warning(fmt.Sprintf("Discarding cached %s: %v", key, err))
		return nil, false
	}
	grid, err := rec.Maze()
	if err != nil {
		s.logger.Warning(fmt.Sprintf("Discarding cached %s: %v", key, err))
		return nil, false
	}
	blocked, err := maze.ComputeMask(rec.Width, rec.Height)
	if err != nil {
		return nil, false
	}

	algorithm, _ := maze.ParseAlgorithm(string(cfg.Algorithm))
	s.logger.Info(fmt.Sprintf("Cache hit %s", key))
	return &dmn.Maze{
		ID:        uuid.New(),
		Seed:      *cfg.Seed,
		Algorithm: algorithm,
		Perfect:   cfg.Perfect,
		Record:    rec,
		Stats:     maze.Analyze(grid, rec.Entry.Position(), blocked),
		CreatedAt: time.Now().UTC(),
	}, true
}

func (s *MazeService) cacheKey(cfg maze.Config) string {
	algorithm, _ := maze.ParseAlgorithm(string(cfg.Algorithm))
	probability := cfg.LoopProbability
	if cfg.Perfect {
		probability = 0
	}
	return fmt.Sprintf(mazeKeyFmt, s.opts.Prefix, cfg.Width, cfg.Height, cfg.Entry, cfg.Exit, *cfg.Seed, cfg.Perfect, algorithm, probability)
}
