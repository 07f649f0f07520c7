// Command mdview views markdown files in the terminal.
//
// Usage:
//
//	mdview [flags] <file|dir|glob>...
//
// Flags:
//
//	-config string   Path to the YAML config file (default: ~/.config/mdview/config.yaml)
//	-state string    Path to the viewer state file (default: ~/.cache/mdview/state.json)
//	-print           Render to stdout instead of starting the viewer
//	-w int           Render width for -print (default: terminal width or 80)
//	-no-hyperlinks   Do not emit OSC 8 hyperlinks
//
// Directories are searched for *.md and *.markdown files. Set MDVIEW_DEBUG to
// a file path to write a debug log.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/fwojciec/mdview"
	bt "github.com/fwojciec/mdview/bubbletea"
	"github.com/fwojciec/mdview/chroma"
	mdfs "github.com/fwojciec/mdview/fs"
	mdjson "github.com/fwojciec/mdview/json"
	"github.com/fwojciec/mdview/markdown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "mdview: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath   = flag.String("config", "", "Path to the YAML config file")
		statePath    = flag.String("state", "", "Path to the viewer state file")
		printMode    = flag.Bool("print", false, "Render to stdout instead of starting the viewer")
		width        = flag.Int("w", 0, "Render width for -print")
		noHyperlinks = flag.Bool("no-hyperlinks", false, "Do not emit OSC 8 hyperlinks")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		return errors.New("no input files")
	}

	settings, err := loadSettings(*configPath)
	if err != nil {
		return err
	}

	paths, err := mdfs.Expand(flag.Args())
	if err != nil {
		return err
	}
	docs := make([]bt.Document, 0, len(paths))
	for _, p := range paths {
		text, err := mdfs.ReadFile(p)
		if err != nil {
			return err
		}
		docs = append(docs, bt.Document{Name: p, Text: text})
	}

	if *printMode {
		w := printWidth(*width, os.Stdout.Fd())
		for i, d := range docs {
			if i > 0 {
				fmt.Fprintln(os.Stdout)
			}
			out := markdown.Render(d.Text, w, settings.Theme, mdview.WithOptions(settings.Options))
			if _, err := fmt.Fprintln(os.Stdout, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}
		return nil
	}

	// Handle OS signals for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, closeLog, err := debugLogger(os.Getenv("MDVIEW_DEBUG"))
	if err != nil {
		return err
	}
	defer closeLog()

	if *statePath == "" {
		*statePath = defaultStatePath()
	}
	state, err := loadState(*statePath)
	if err != nil {
		return err
	}

	tuiModel := bt.New(docs, settings.Theme,
		bt.WithViewerOptions(mdview.WithOptions(settings.Options)),
		bt.WithHighlighter(chroma.NewHighlighter()),
		bt.WithHyperlinks(settings.Hyperlinks && !*noHyperlinks),
		bt.WithOpenURL(openURL),
		bt.WithSave(func(d bt.Document) error {
			return mdfs.WriteFile(d.Name, d.Text)
		}),
		bt.WithLogger(logger),
		bt.WithState(state.Current, state.Offsets),
	)

	final, err := bt.Run(ctx, tuiModel)
	if err != nil {
		return fmt.Errorf("TUI: %w", err)
	}

	// Save state on exit.
	state = mdview.State{
		Current:   final.Current().Name,
		Offsets:   mergeOffsets(state.Offsets, final.Offsets()),
		UpdatedAt: time.Now(),
	}
	if err := mdjson.Save(*statePath, state); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// printWidth returns the explicit width, the terminal width of fd, or 80.
func printWidth(flagWidth int, fd uintptr) int {
	if flagWidth > 0 {
		return flagWidth
	}
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		return w
	}
	return 80
}

// debugLogger returns a logger writing to path, or a discarding logger when
// path is empty.
func debugLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := tea.LogToFile(path, "mdview")
	if err != nil {
		return nil, nil, fmt.Errorf("open debug log: %w", err)
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h), func() { f.Close() }, nil
}
