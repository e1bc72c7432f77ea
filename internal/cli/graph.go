package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/symscope/symscope/internal/graph"
)

var graphDepth int

// graphCmd groups symbol-graph query subcommands. Queries read the
// graph.json written by `symscope analyze --graph`.
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Query the project symbol graph",
}

var graphCallersCmd = &cobra.Command{
	Use:   "callers <symbol>",
	Short: "List symbols that call the given symbol",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGraphQuery(args[0], func(s graph.Searcher, target string) ([]string, error) {
			return s.Callers(target, graphDepth)
		})
	},
}

var graphCalleesCmd = &cobra.Command{
	Use:   "callees <symbol>",
	Short: "List symbols the given symbol calls",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGraphQuery(args[0], func(s graph.Searcher, target string) ([]string, error) {
			return s.Callees(target, graphDepth)
		})
	},
}

var graphSubtypesCmd = &cobra.Command{
	Use:   "subtypes <symbol>",
	Short: "List symbols that inherit from the given symbol",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGraphQuery(args[0], func(s graph.Searcher, target string) ([]string, error) {
			return s.Subtypes(target)
		})
	},
}

func init() {
	graphCmd.PersistentFlags().IntVar(&graphDepth, "depth", graph.DefaultDepth, "Traversal depth")
	graphCmd.AddCommand(graphCallersCmd)
	graphCmd.AddCommand(graphCalleesCmd)
	graphCmd.AddCommand(graphSubtypesCmd)
	rootCmd.AddCommand(graphCmd)
}

func runGraphQuery(target string, query func(graph.Searcher, string) ([]string, error)) error {
	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	graphPath := filepath.Join(rootDir, ".symscope", "graph.json")
	data, err := os.ReadFile(graphPath)
	if err != nil {
		return fmt.Errorf("failed to read %s (run `symscope analyze --graph` first): %w", graphPath, err)
	}

	var graphData graph.GraphData
	if err := json.Unmarshal(data, &graphData); err != nil {
		return fmt.Errorf("failed to decode graph data: %w", err)
	}

	searcher, err := graph.NewSearcher(&graphData)
	if err != nil {
		return fmt.Errorf("failed to build graph: %w", err)
	}

	results, err := query(searcher, target)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println("No results")
		return nil
	}
	for _, id := range results {
		fmt.Println(id)
	}
	return nil
}
