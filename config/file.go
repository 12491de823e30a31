package config

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/beka-birhanu/amazeing/encoder"
	"github.com/beka-birhanu/amazeing/maze"
	"github.com/joho/godotenv"
)

var (
	// ErrParse is returned when a maze configuration file is incomplete or malformed.
	ErrParse = errors.New("invalid configuration file")
)

// Keys of the maze configuration file.
const (
	KeyWidth           = "WIDTH"
	KeyHeight          = "HEIGHT"
	KeyEntry           = "ENTRY"
	KeyExit            = "EXIT"
	KeyOutputFile      = "OUTPUT_FILE"
	KeyPerfect         = "PERFECT"
	KeySeed            = "SEED"
	KeyAlgorithm       = "ALGORITHM"
	KeyLoopProbability = "LOOP_PROBABILITY"
)

var mandatoryKeys = []string{KeyWidth, KeyHeight, KeyEntry, KeyExit, KeyOutputFile, KeyPerfect}

// MazeFile is the content of a KEY=VALUE maze configuration file.
type MazeFile struct {
	Width           int
	Height          int
	Entry           maze.Point
	Exit            maze.Point
	OutputFile      string
	Perfect         bool
	Seed            *int64
	Algorithm       maze.Algorithm
	LoopProbability float64
}

// ParseFile reads a maze configuration file such as:
//
//	WIDTH=20
//	HEIGHT=15
//	ENTRY=0,0
//	EXIT=19,14
//	OUTPUT_FILE=maze.txt
//	PERFECT=True
func ParseFile(path string) (*MazeFile, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, err
	}
	return parseValues(values)
}

// Parse reads a maze configuration from r.
func Parse(r io.Reader) (*MazeFile, error) {
	values, err := godotenv.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return parseValues(values)
}

func parseValues(raw map[string]string) (*MazeFile, error) {
	values := make(map[string]string, len(raw))
	for k, v := range raw {
		values[strings.ToUpper(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}

	var missing []string
	for _, key := range mandatoryKeys {
		if _, ok := values[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: missing mandatory keys %s", ErrParse, strings.Join(missing, ", "))
	}

	var (
		mf  MazeFile
		err error
	)
	if mf.Width, err = parseInt(values, KeyWidth); err != nil {
		return nil, err
	}
	if mf.Height, err = parseInt(values, KeyHeight); err != nil {
		return nil, err
	}
	if mf.Entry, err = encoder.ParsePoint(values[KeyEntry]); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, KeyEntry, err)
	}
	if mf.Exit, err = encoder.ParsePoint(values[KeyExit]); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, KeyExit, err)
	}
	if mf.Perfect, err = strconv.ParseBool(values[KeyPerfect]); err != nil {
		return nil, fmt.Errorf("%w: %s must be True or False, got %q", ErrParse, KeyPerfect, values[KeyPerfect])
	}

	mf.OutputFile = values[KeyOutputFile]
	if mf.OutputFile == "" {
		return nil, fmt.Errorf("%w: %s is empty", ErrParse, KeyOutputFile)
	}

	if s, ok := values[KeySeed]; ok && s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be an integer, got %q", ErrParse, KeySeed, s)
		}
		mf.Seed = &seed
	}

	if mf.Algorithm, err = maze.ParseAlgorithm(values[KeyAlgorithm]); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, KeyAlgorithm, err)
	}

	if s, ok := values[KeyLoopProbability]; ok && s != "" {
		if mf.LoopProbability, err = strconv.ParseFloat(s, 64); err != nil {
			return nil, fmt.Errorf("%w: %s must be a number, got %q", ErrParse, KeyLoopProbability, s)
		}
	}

	return &mf, nil
}

func parseInt(values map[string]string, key string) (int, error) {
	v, err := strconv.Atoi(values[key])
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", ErrParse, key, values[key])
	}
	return v, nil
}

// MazeConfig converts the file into a generation request.
func (mf *MazeFile) MazeConfig() maze.Config {
	return maze.Config{
		Width:           mf.Width,
		Height:          mf.Height,
		Entry:           mf.Entry,
		Exit:            mf.Exit,
		Seed:            mf.Seed,
		Perfect:         mf.Perfect,
		Algorithm:       mf.Algorithm,
		LoopProbability: mf.LoopProbability,
	}
}
