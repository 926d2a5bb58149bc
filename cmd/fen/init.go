package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"fen/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new fen project",
	Long: `Initialize a new fen project by creating a project manifest (fen.toml)
and a hello-world module (Main.fen). If [path|name] is omitted, initializes
the current directory. If a non-existing name is provided, a directory will
be created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		arg := args[0]
		if filepath.IsAbs(arg) {
			target = arg
		} else {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		}
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if !project.IsValidPackageName(name) {
		name = "fen-project"
	}

	if _, err := project.WriteScaffold(target, name); err != nil {
		return err
	}

	mainPath := filepath.Join(target, "Main.fen")
	createdMain := false
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(defaultMainFen()), 0o644); err != nil {
			return fmt.Errorf("failed to write Main.fen: %w", err)
		}
		createdMain = true
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized fen project in %s\n", rel)
	fmt.Fprintln(os.Stdout, "  - fen.toml")
	if createdMain {
		fmt.Fprintln(os.Stdout, "  - Main.fen")
	} else {
		fmt.Fprintln(os.Stdout, "  - Main.fen (existing)")
	}
	return nil
}

func defaultMainFen() string {
	return `module Main exposing (Greeting(..), greeting)

type Greeting = Hello | Goodbye

greeting = Hello
`
}
