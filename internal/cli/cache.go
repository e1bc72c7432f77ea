package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/symscope/symscope/internal/cache"
	"github.com/symscope/symscope/internal/config"
)

// cacheCmd groups cache maintenance subcommands.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the parse-result cache",
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove all cached parse results",
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}

		cfg, err := config.NewLoader(rootDir).Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		location := cfg.Cache.Location
		if location == "" {
			location = filepath.Join(rootDir, ".symscope", "cache.db")
		}
		if _, err := os.Stat(location); os.IsNotExist(err) {
			fmt.Println("Cache is empty")
			return nil
		}

		c, err := cache.Open(location)
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		defer c.Close()

		if err := c.Purge(); err != nil {
			return err
		}
		fmt.Println("Cache purged")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cachePurgeCmd)
	rootCmd.AddCommand(cacheCmd)
}
