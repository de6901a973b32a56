package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/IvanShishkin/pathhound/internal/config"
	"github.com/IvanShishkin/pathhound/internal/report"
	"github.com/IvanShishkin/pathhound/pkg/glob"
)

// ANSI colors
const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
	colorRed   = "\033[31m"
	colorCyan  = "\033[36m"
	colorGray  = "\033[38;5;245m"
)

var (
	version = "0.1.0"
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pathhound",
		Short: "Pathhound - Fast File Globbing Engine",
		Long: `High-performance file finder supporting globs, brace expansion, extended
globs and explicit regexes, with metadata filters and streaming output.`,
		Version: version,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	// Global verbose flag
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(findCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// findCmd creates the find command
func findCmd() *cobra.Command {
	var (
		roots           []string
		caseInsensitive bool
		followSymlinks  bool
		maxDepth        int
		workers         int
		allowTraversal  bool
		stream          bool
		minSize         string
		maxSize         string
		fileType        string
		newerThan       string
		olderThan       string
		format          string
		outputFile      string
		showMetrics     bool
	)

	cmd := &cobra.Command{
		Use:   "find [pattern]...",
		Short: "Find files matching the given patterns",
		Long: `Walk the root directories and print every path matching any of the
patterns. Patterns support globs (*, ?, **), brace expansion ({a,b},
{1..9}), extended globs (@( ), !( ), ...) and explicit regexes (re:).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := buildLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			// Flags explicitly set on the command line win over the
			// environment-backed config.
			flagOverrides(cmd, cfg, map[string]func(){
				"case-insensitive": func() { cfg.CaseInsensitive = caseInsensitive },
				"follow-symlinks":  func() { cfg.FollowSymlinks = followSymlinks },
				"max-depth":        func() { cfg.MaxDepth = maxDepth },
				"workers":          func() { cfg.Workers = workers },
				"allow-traversal":  func() { cfg.AllowTraversal = allowTraversal },
				"stream":           func() { cfg.Stream = stream },
				"min-size":         func() { cfg.MinSize = minSize },
				"max-size":         func() { cfg.MaxSize = maxSize },
				"type":             func() { cfg.FileType = fileType },
				"newer-than":       func() { cfg.NewerThan = newerThan },
				"older-than":       func() { cfg.OlderThan = olderThan },
				"format":           func() { cfg.ReportFormat = format },
				"output":           func() { cfg.OutputFile = outputFile },
				"metrics":          func() { cfg.ShowMetrics = showMetrics },
			})

			opts, err := cfg.GlobOptions()
			if err != nil {
				fmt.Fprintf(os.Stderr, "\n  %s✗ Invalid parameter:%s %v\n\n", colorRed, colorReset, err)
				return err
			}
			opts.Logger = logger

			if cfg.Stream {
				return runStream(args, roots, opts, logger)
			}
			return runBatch(args, roots, opts, cfg, logger)
		},
	}

	cmd.Flags().StringSliceVarP(&roots, "root", "r", []string{"."}, "Root directories to search")
	cmd.Flags().BoolVarP(&caseInsensitive, "case-insensitive", "i", false, "Fold case while matching")
	cmd.Flags().BoolVarP(&followSymlinks, "follow-symlinks", "L", false, "Follow symlinks to directories")
	cmd.Flags().IntVarP(&maxDepth, "max-depth", "d", -1, "Maximum depth below each root (-1 = unlimited)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent directory reads in stream mode (defaults to the CPU count; must be at least 1)")
	cmd.Flags().BoolVar(&allowTraversal, "allow-traversal", false, "Accept patterns with '..' segments")
	cmd.Flags().BoolVarP(&stream, "stream", "s", false, "Print results as they are found")
	cmd.Flags().StringVar(&minSize, "min-size", "", "Minimum file size (e.g. 10K)")
	cmd.Flags().StringVar(&maxSize, "max-size", "", "Maximum file size (e.g. 2M)")
	cmd.Flags().StringVarP(&fileType, "type", "t", "any", "Entry type: file, dir, symlink, any")
	cmd.Flags().StringVar(&newerThan, "newer-than", "", "Only entries modified within this duration (e.g. 24h)")
	cmd.Flags().StringVar(&olderThan, "older-than", "", "Only entries modified before this duration ago")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Report format: text, json")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "Include cache metrics in the report")

	return cmd
}

// flagOverrides applies each override whose flag was set explicitly.
func flagOverrides(cmd *cobra.Command, cfg *config.Config, overrides map[string]func()) {
	for name, apply := range overrides {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
}

func buildLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	return cfg.Build()
}

// runBatch runs the synchronous engine and renders a report.
func runBatch(patterns, roots []string, opts glob.Options, cfg *config.Config, logger *zap.Logger) error {
	results := &report.Results{
		Patterns:  patterns,
		Roots:     roots,
		StartTime: time.Now(),
	}
	opts.OnSkip = func(err error) {
		results.Skipped = append(results.Skipped, err.Error())
	}

	matches, err := glob.Find(patterns, roots, opts)
	if err != nil {
		return err
	}
	results.Matches = matches
	results.Duration = time.Since(results.StartTime)
	if cfg.ShowMetrics {
		m := glob.Metrics()
		results.Metrics = &m
	}

	gen, err := report.NewGenerator(cfg, logger)
	if err != nil {
		return err
	}
	return gen.Generate(results)
}

// runStream runs the streaming engine, printing matches as they arrive.
func runStream(patterns, roots []string, opts glob.Options, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s, err := glob.FindStream(ctx, patterns, roots, opts)
	if err != nil {
		return err
	}
	defer s.Cancel()

	var failed bool
	for r := range s.Results() {
		if r.Err != nil {
			failed = true
			fmt.Fprintf(os.Stderr, "%s! %v%s\n", colorGray, r.Err, colorReset)
			continue
		}
		fmt.Println(r.Path)
	}
	if failed {
		return fmt.Errorf("finished with errors")
	}
	return nil
}
