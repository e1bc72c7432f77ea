package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/symscope/symscope/internal/analyzer"
	"github.com/symscope/symscope/internal/cache"
	"github.com/symscope/symscope/internal/config"
	"github.com/symscope/symscope/internal/graph"
)

var (
	quietFlag   bool
	graphFlag   bool
	noCacheFlag bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [dir]",
	Short: "Analyze a codebase and emit ranked symbol data",
	Long: `Analyze parses every Python, PHP, and Java source file under the given
directory (default: current directory), scores the extracted symbols,
and trims each file's symbol list to its size-tier budget.

Results are written as JSON to .symscope/analysis.json. Files that fail
to parse are reported as warnings and carry their error message in the
output; they never abort the run.

Examples:
  # Analyze the current directory
  symscope analyze

  # Analyze a specific directory and build the symbol graph
  symscope analyze /path/to/project --graph

  # Force a full re-parse, ignoring the cache
  symscope analyze --no-cache
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
	analyzeCmd.Flags().BoolVar(&graphFlag, "graph", false, "Also build and write the project symbol graph")
	analyzeCmd.Flags().BoolVar(&noCacheFlag, "no-cache", false, "Ignore the parse-result cache for this run")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted! Cancelling analysis...")
		cancel()
	}()

	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	if len(args) == 1 {
		rootDir, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid directory %q: %w", args[0], err)
		}
	}

	cfg, err := config.NewLoader(rootDir).Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	outputDir := filepath.Join(rootDir, ".symscope")
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	progress := NewCLIProgressReporter(quietFlag)

	progress.OnDiscoveryStart()
	discovery, err := analyzer.NewFileDiscovery(rootDir, cfg.Paths.Include, cfg.Paths.Ignore)
	if err != nil {
		return fmt.Errorf("failed to compile path patterns: %w", err)
	}
	files, err := discovery.DiscoverFiles()
	if err != nil {
		return fmt.Errorf("file discovery failed: %w", err)
	}
	progress.OnDiscoveryComplete(len(files))

	var resultCache analyzer.ResultCache
	if cfg.Cache.Enabled && !noCacheFlag {
		location := cfg.Cache.Location
		if location == "" {
			location = filepath.Join(outputDir, "cache.db")
		}
		c, err := cache.Open(location)
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		defer c.Close()
		resultCache = c
	}

	results, _, err := analyzer.New(cfg, resultCache, progress).AnalyzeFiles(ctx, files)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("analysis cancelled")
		}
		return fmt.Errorf("analysis failed: %w", err)
	}

	analysisPath := filepath.Join(outputDir, "analysis.json")
	if err := writeJSON(analysisPath, results); err != nil {
		return err
	}

	if graphFlag {
		graphPath := filepath.Join(outputDir, "graph.json")
		if err := writeJSON(graphPath, graph.Build(results)); err != nil {
			return err
		}
	}

	if !quietFlag {
		fmt.Printf("Results written to %s\n", analysisPath)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
