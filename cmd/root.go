package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/config"
	"github.com/sells-group/prospect-cli/internal/research"
	"github.com/sells-group/prospect-cli/internal/scrape"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "prospect-cli",
	Short: "B2B prospect research and qualification engine",
	Long:  "Discovers company websites, extracts business signals and contacts, scores prospect fit, and produces ranked outreach recommendations.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// newResearcher wires the shared scrape client into a Researcher.
func newResearcher() *research.Researcher {
	client := scrape.NewClient(cfg.Research.UserAgent)
	client.Throttle(cfg.Research.MaxRequestsPerSec)
	return research.New(cfg, client)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
