package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/TraderofBozz/Anubis-Bot/internal/config"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	envFile string
}

var rootCmd = &cobra.Command{
	Use:   "anubis",
	Short: "Solana developer-wallet scanner and scorer",
	Long: "Anubis walks launchpad program history, groups token launches by the\n" +
		"wallet that created them and scores each wallet's track record.",
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.envFile, "env-file", "", "Load settings from this file instead of .env")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(walletCmd)
	rootCmd.Version = version
}

func newLogger() *log.Logger {
	return log.New(os.Stderr, "[anubis] ", log.LstdFlags|log.Lshortfile)
}

func loadConfig(logger *log.Logger) *config.Config {
	if rootFlags.envFile != "" {
		return config.LoadFromEnv(logger, rootFlags.envFile)
	}
	return config.LoadFromEnv(logger)
}
