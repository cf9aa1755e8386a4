package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
)

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

var errMismatch = errors.New("renderings differ")

var diffWatchFlag bool

var diffCmd = &cobra.Command{
	Use:   "diff <expected.yaml> <actual.yaml>",
	Short: "Compare the renderings of two fixture requests",
	Long: `Render the requests of two fixtures and show how they differ, line by
line. Two requests match only when their renderings are byte-identical, so
header order and case count.

Exits with status 1 when the renderings differ.

Examples:
  expectspec diff expected.yaml actual.yaml
  expectspec diff expected.yaml actual.yaml --watch`,
	Args: cobra.ExactArgs(2),
	RunE: diffCommand,
}

func init() {
	diffCmd.Flags().BoolVarP(&diffWatchFlag, "watch", "w", false, "Watch both fixtures and diff again on change")
}

func diffCommand(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	vars, err := fixtureVars(settings)
	if err != nil {
		return err
	}

	run := func() error {
		return diffFixtures(cmd.OutOrStdout(), args[0], args[1], vars)
	}

	err = run()
	if !diffWatchFlag {
		return err
	}
	if err != nil && !errors.Is(err, errMismatch) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool)
	for _, file := range args {
		dir := filepath.Dir(file)
		if !watched[dir] {
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			watched[dir] = true
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")

	var debounceTimer *time.Timer
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !isWatched(event.Name, args) {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(WatchDebounceDelay, func() {
				fmt.Fprintf(cmd.OutOrStdout(), "\n\nFile changed: %s\n\n", event.Name)
				if err := run(); err != nil && !errors.Is(err, errMismatch) {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watcher error: %v\n", err)
		}
	}
}

func isWatched(name string, files []string) bool {
	for _, f := range files {
		if filepath.Clean(name) == filepath.Clean(f) {
			return true
		}
	}
	return false
}

// diffFixtures writes a colored line diff of both renderings to w.
func diffFixtures(w io.Writer, expectedPath, actualPath string, vars map[string]any) error {
	expected, err := renderFixture(expectedPath, vars)
	if err != nil {
		return err
	}
	actual, err := renderFixture(actualPath, vars)
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	if expected == actual {
		fmt.Fprintf(w, "%s %s and %s render identically\n", green("✓"), expectedPath, actualPath)
		return nil
	}

	fmt.Fprintf(w, "%s\n", bold("Renderings differ"))
	fmt.Fprintf(w, "  %s %s\n", red("- expected:"), expectedPath)
	fmt.Fprintf(w, "  %s %s\n\n", green("+ actual:  "), actualPath)

	a := difflib.SplitLines(expected)
	b := difflib.SplitLines(actual)
	for _, op := range difflib.NewMatcher(a, b).GetOpCodes() {
		switch op.Tag {
		case 'e':
			for _, line := range a[op.I1:op.I2] {
				fmt.Fprintf(w, "  %s\n", visible(line))
			}
		case 'd':
			for _, line := range a[op.I1:op.I2] {
				fmt.Fprintf(w, "%s\n", red("- "+visible(line)))
			}
		case 'i':
			for _, line := range b[op.J1:op.J2] {
				fmt.Fprintf(w, "%s\n", green("+ "+visible(line)))
			}
		case 'r':
			for _, line := range a[op.I1:op.I2] {
				fmt.Fprintf(w, "%s\n", red("- "+visible(line)))
			}
			for _, line := range b[op.J1:op.J2] {
				fmt.Fprintf(w, "%s\n", green("+ "+visible(line)))
			}
		}
	}
	fmt.Fprintf(w, "\n%s\n", cyan("Header order and case are significant."))

	return &exitError{code: ExitMismatch, err: errMismatch}
}

// visible strips the line break and marks a blank line.
func visible(line string) string {
	line = strings.TrimSuffix(line, "\n")
	if line == "" {
		return "⏎"
	}
	return line
}
