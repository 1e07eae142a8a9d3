package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	flag "github.com/spf13/pflag"
)

// watchDebounce coalesces the burst of events editors emit on save.
const watchDebounce = 150 * time.Millisecond

// runWatch converts a file, then converts it again each time it is saved,
// until the context is canceled.
func runWatch(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags("watch", args, printWatchUsage, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}

	inputPath, err := resolveInputPath(positional)
	if err != nil {
		return err
	}
	inputPath, err = filepath.Abs(inputPath)
	if err != nil {
		return err
	}
	if err := validateMarkdownExtension(inputPath); err != nil {
		return err
	}

	s, err := loadSettings(flags, env)
	if err != nil {
		return err
	}

	output := flags.output
	if output == "" {
		output = s.cfg.OutputDir
	}
	files, err := discoverFiles(inputPath, output, flags.preview)
	if err != nil {
		return err
	}
	file := files[0]

	conv, err := buildConverter(s)
	if err != nil {
		return err
	}
	params := paramsFor(s.cfg, s.references)

	render := func() {
		r := convertFile(ctx, conv, file, params)
		if ctx.Err() != nil {
			return
		}
		printResults([]ConversionResult{r}, flags.common.quiet, flags.common.verbose,
			func(err error) string { return hintFor(err, s.cfg) }, env)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often save by renaming a temp file over the original, which
	// drops a watch on the file itself; watching the directory survives that.
	if err := watcher.Add(filepath.Dir(inputPath)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(inputPath), err)
	}

	render()
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Watching %s (Ctrl+C to stop)\n", inputPath)
	}

	relevant := watchedNames(inputPath, s.cfg.AllowCSSOverrides)
	timer := time.NewTimer(watchDebounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if relevant[filepath.Clean(event.Name)] && event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				timer.Reset(watchDebounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(env.Stderr, "watcher error: %v\n", err)
		case <-timer.C:
			if flags.common.verbose {
				fmt.Fprintf(env.Stdout, "[%s] %s changed\n", env.Now().Format(time.TimeOnly), filepath.Base(inputPath))
			}
			render()
		}
	}
}

// watchedNames returns the files whose changes trigger a conversion.
func watchedNames(inputPath string, overrides bool) map[string]bool {
	names := map[string]bool{filepath.Clean(inputPath): true}
	if overrides {
		css := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".css"
		names[filepath.Clean(css)] = true
	}
	return names
}
