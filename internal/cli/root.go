package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "symscope",
	Short: "Symscope - source code intelligence for Python, PHP, and Java",
	Long: `Symscope parses source files into a unified symbol model, ranks every
symbol by estimated importance, and trims the result to a budget that
scales with file size. The output feeds documentation generators,
code-review tooling, and project knowledge graphs.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
