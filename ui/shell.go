// Copyright © 2025 FileGrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/shell.go
// Summary: Drops the user into an interactive shell in the active directory.

package ui

import (
	"io"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/term"

	"github.com/filegrid/filegrid/grid"
)

// openShellHere suspends the screen and runs $SHELL with the pane's
// active directory as working directory. The screen resumes when the
// shell exits.
func (a *App) openShellHere(pane *grid.PaneController) {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	dir := pane.ActiveTab().Path()

	if err := a.screen.Suspend(); err != nil {
		log.Printf("Shell: suspend failed: %v", err)
		return
	}
	defer func() {
		if err := a.screen.Resume(); err != nil {
			log.Printf("Shell: resume failed: %v", err)
		}
		a.refreshPane(pane)
		a.needsDraw = true
	}()

	if err := runShell(shell, dir); err != nil {
		a.notice = "shell: " + err.Error()
		log.Printf("Shell: %s in %s: %v", shell, dir, err)
	}
}

func runShell(shell, dir string) error {
	cmd := exec.Command(shell)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return err
	}
	defer ptmx.Close()

	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	defer signal.Stop(winch)
	go func() {
		for range winch {
			if err := pty.InheritSize(os.Stdin, ptmx); err != nil {
				log.Printf("Shell: resize failed: %v", err)
			}
		}
	}()
	winch <- syscall.SIGWINCH

	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err == nil {
		defer term.Restore(int(os.Stdin.Fd()), oldState)
	}

	go func() { _, _ = io.Copy(ptmx, os.Stdin) }()
	_, _ = io.Copy(os.Stdout, ptmx)

	return cmd.Wait()
}
