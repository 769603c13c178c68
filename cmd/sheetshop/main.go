package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/talkincode/sheetshop/config"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "sheetshop",
	Short: "Storefront for a product catalog kept in a spreadsheet",
	Long: `sheetshop serves a product catalog read from a published spreadsheet
and turns orders into WhatsApp messages for the shop owner.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default sheetshop.yml or /etc/sheetshop.yml)")
	rootCmd.AddCommand(serveCmd, fetchCmd, linkCmd)
}

func loadConfig() (*config.AppConfig, error) {
	return config.LoadConfig(configFile)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
