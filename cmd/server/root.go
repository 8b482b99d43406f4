package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/config"
)

var (
	cfgFile string
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "landing-agent",
	Short: "Conversational landing page generator",
	Long: `Landing Assistant Agent interviews a business owner, writes landing copy,
resolves images and assembles an editable block-based landing page.

It serves a REST API, an A2A JSON-RPC endpoint and Prometheus metrics.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml or json)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the environment is read")

	rootCmd.AddCommand(serveCmd, extractCmd)
}

// loadConfig reads the dotenv file, when present, and then the config.
func loadConfig() (*config.Config, error) {
	if envFile != "" {
		// a missing .env is normal outside development
		_ = godotenv.Load(envFile)
	}
	return config.LoadConfig(cfgFile)
}
