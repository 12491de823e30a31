// Command amazeing reads a maze configuration file, writes the generated maze
// to its OUTPUT_FILE in hexadecimal form and shows it in the terminal.
//
// Usage:
//
//	amazeing [-no-render] [-log file] config.txt
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"

	"github.com/beka-birhanu/amazeing/config"
	dmn "github.com/beka-birhanu/amazeing/domain"
	"github.com/beka-birhanu/amazeing/encoder"
	"github.com/beka-birhanu/amazeing/logger"
	"github.com/beka-birhanu/amazeing/render"
	"github.com/beka-birhanu/amazeing/service"
	"github.com/gdamore/tcell/v2"
)

func main() {
	noRender := flag.Bool("no-render", false, "write the output file without opening the visualizer")
	logPath := flag.String("log", "", "append logs to this file (stderr when not rendering)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-no-render] [-log file] config.txt\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0), !*noRender, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, interactive bool, logPath string) error {
	logOut, closeLog, err := openLog(logPath, interactive)
	if err != nil {
		return err
	}
	defer closeLog()

	appLogger, err := logger.New("AMAZEING", config.ColorGreen, logOut)
	if err != nil {
		return err
	}

	mf, err := config.ParseFile(configPath)
	if err != nil {
		return err
	}

	hex := encoder.NewHex()
	svc, err := service.NewMazeService(nil, nil, hex, appLogger, &service.Options{MaxDimension: math.MaxInt32})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := mf.MazeConfig()
	m, err := svc.Generate(ctx, cfg)
	if err != nil {
		return err
	}
	if err := writeMaze(hex, mf.OutputFile, m); err != nil {
		return err
	}
	appLogger.Info(fmt.Sprintf("Wrote %s (seed %d)", mf.OutputFile, m.Seed))

	if !interactive {
		return nil
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}

	v, err := render.NewVisualizer(screen, svc, cfg, m)
	if err != nil {
		screen.Fini()
		return err
	}
	err = v.Run(ctx)
	screen.Fini()
	if err != nil && ctx.Err() == nil {
		return err
	}

	// Keep the file in step with the last maze shown.
	if last := v.Current(); last != m {
		if err := writeMaze(hex, mf.OutputFile, last); err != nil {
			return err
		}
		appLogger.Info(fmt.Sprintf("Wrote %s (seed %d)", mf.OutputFile, last.Seed))
	}
	return nil
}

func writeMaze(hex *encoder.Hex, path string, m *dmn.Maze) error {
	data, err := hex.Marshal(m.Record)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// openLog picks the log destination. The visualizer owns the terminal, so
// interactive runs without a log file discard their logs.
func openLog(path string, interactive bool) (io.Writer, func(), error) {
	if path == "" {
		if interactive {
			return io.Discard, func() {}, nil
		}
		return os.Stderr, func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}
