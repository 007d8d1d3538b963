// Copyright © 2025 FileGrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/filegrid/main.go
// Summary: FileGrid entry point: wiring of config, state and the UI.
// Usage: Run `filegrid [dir]` to browse starting at dir (default: home).

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/filegrid/filegrid/config"
	"github.com/filegrid/filegrid/grid"
	"github.com/filegrid/filegrid/history"
	"github.com/filegrid/filegrid/navigator"
	"github.com/filegrid/filegrid/session"
	"github.com/filegrid/filegrid/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("filegrid", flag.ContinueOnError)

	fromScratch := fs.Bool("from-scratch", false, "Ignore the saved session and start fresh")
	showHidden := fs.Bool("hidden", false, "Show hidden files on startup")
	sessionPath := fs.String("session", "", "Path to the session file (default: config dir)")
	logPath := fs.String("log", "", "Path to the debug log (default: config dir)")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if err := setupLogging(*logPath); err != nil {
		return err
	}

	if err := config.Err(); err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	system := config.System()

	home := startDir(fs.Arg(0))

	if *sessionPath == "" {
		path, err := config.SessionPath()
		if err != nil {
			return fmt.Errorf("resolve session path: %w", err)
		}
		*sessionPath = path
	}

	dispatcher := grid.NewEventDispatcher()
	groups := grid.NewGroupController(home, dispatcher)
	groups.ActiveWorkspace().ActivePane().SetHistoryLimit(
		system.GetInt("panes", "history_limit", grid.DefaultHistoryLimit))

	store := session.NewStore(*sessionPath)
	if !*fromScratch {
		restoreSession(groups, store)
	}

	navPath, err := config.NavigatorPath()
	if err != nil {
		return fmt.Errorf("resolve navigator path: %w", err)
	}
	nav := navigator.Load(navPath)

	visits, err := openVisitLog()
	if err != nil {
		log.Printf("Main: Visit log unavailable: %v", err)
		visits = nil
	}
	if visits != nil {
		defer func() {
			if err := visits.Close(); err != nil {
				log.Printf("Main: Visit log close: %v", err)
			}
		}()
	}

	app, err := ui.NewApp(groups, nav, visits, store, ui.Options{
		HomePath:     home,
		ShowHidden:   *showHidden || system.GetBool("general", "show_hidden", false),
		PreviewStyle: system.GetString("preview", "style", "monokai"),
		PreviewMax:   system.GetInt("preview", "max_bytes", 0),
	})
	if err != nil {
		return fmt.Errorf("start UI: %w", err)
	}
	dispatcher.Subscribe(app)
	defer dispatcher.Unsubscribe(app)

	return app.Run()
}

// restoreSession loads the saved session if one exists. A missing file
// is a normal first run; anything else falls back to the fresh state.
func restoreSession(groups *grid.GroupController, store *session.Store) {
	state, err := store.Load()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("Main: Discarding saved session: %v", err)
		}
		return
	}
	if err := groups.ImportState(state); err != nil {
		log.Printf("Main: Saved session rejected: %v", err)
	}
}

func openVisitLog() (history.VisitLog, error) {
	dbPath, err := config.HistoryPath()
	if err != nil {
		return nil, err
	}
	visits, err := history.New(dbPath)
	if err != nil {
		return nil, err
	}
	if err := visits.Prune(history.DefaultConfig(dbPath).MaxRows); err != nil {
		log.Printf("Main: Prune visit log: %v", err)
	}
	return visits, nil
}

// startDir picks the initial directory: the argument when it is a
// directory, otherwise the user's home, otherwise the root.
func startDir(arg string) string {
	if arg != "" {
		abs, err := filepath.Abs(arg)
		if err == nil {
			if info, statErr := os.Stat(abs); statErr == nil && info.IsDir() {
				return abs
			}
		}
		log.Printf("Main: %q is not a directory, using home", arg)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "/"
	}
	return home
}

func setupLogging(path string) error {
	if path == "" {
		resolved, err := config.LogPath()
		if err != nil {
			return fmt.Errorf("resolve log path: %w", err)
		}
		path = resolved
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return nil
}
