package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdpreview/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput      = errors.New("no input specified")
	ErrTooManyInput = errors.New("only one input allowed")
)

// batchError reports failed conversions. It unwraps to the first failure so
// the exit code reflects its cause.
type batchError struct {
	failed int
	total  int
	first  error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d of %d conversion(s) failed", e.failed, e.total)
}

func (e *batchError) Unwrap() error {
	return e.first
}

// runConvert converts one file or every Markdown file under a directory.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags("convert", args, printConvertUsage, env.Stderr)
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
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, inputPath)
	}

	conv, err := buildConverter(s)
	if err != nil {
		return err
	}

	workers := resolveWorkers(s.workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Backend: %s, workers: %d\n", conv.Backend(), workers)
	}

	results := convertBatch(ctx, conv, workers, files, paramsFor(s.cfg, s.references))

	// A single file reports its error once, through the caller
	if len(results) == 1 && results[0].Err != nil {
		return fmt.Errorf("%s: %w%s", results[0].InputPath, results[0].Err, hintFor(results[0].Err, s.cfg))
	}

	hint := func(err error) string { return hintFor(err, s.cfg) }
	summary := countResults(results)
	printResults(results, flags.common.quiet, flags.common.verbose, hint, env)
	if summary.Failed > 0 {
		return &batchError{failed: summary.Failed, total: len(results), first: firstError(results)}
	}
	return nil
}

// resolveInputPath returns the single positional argument.
func resolveInputPath(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", ErrNoInput
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("%w: got %d", ErrTooManyInput, len(args))
	}
}

func paramsFor(cfg *config.Config, references []string) *conversionParams {
	return &conversionParams{
		basePath:    cfg.BasePath,
		destination: cfg.Destination,
		references:  references,
	}
}

func firstError(results []ConversionResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
