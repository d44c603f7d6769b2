// Command circlecare runs the CircleCare debt ledger server and talks to it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/circlecare/internal/config"
	"github.com/mmynk/circlecare/pkg/logging"
)

var (
	configPath string

	rootCmd = &cobra.Command{
		Use:   "circlecare",
		Short: "Shared expense ledger for circles of Stacks principals",
		Long: `circlecare records shared expenses inside circles of members,
tracks who owes whom, and settles debts in microSTX.`,
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("CIRCLECARE_CONFIG"), "path to the YAML config file")

	rootCmd.AddCommand(serveCmd, tokenCmd, hashKeyCmd)
	rootCmd.AddCommand(infoCmd, statsCmd, balanceCmd, suggestCmd, settleCmd)
}

// loadConfig loads the config and installs the logger it selects.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.LogLevel)
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
