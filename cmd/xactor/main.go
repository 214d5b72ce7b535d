package main

import (
	"fmt"
	"os"

	"github.com/xiaoshicae/xactor/xserver"

	"github.com/spf13/cobra"
)

var rootFlags struct {
	configLocation string
	profilesActive string
}

var rootCmd = &cobra.Command{
	Use:   "xactor",
	Short: "Actor pipelines for recipe analysis",
	Long: "XActor routes recipes through ordered pipelines of analysis actors\n" +
		"and merges their results with processedBy provenance.",
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	// xconfig 直接从 os.Args 读取，这里声明只为让 cobra 接受这两个参数
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.configLocation, "server.config.location", "", "Path to application.yml (default: $SERVER_CONFIG_LOCATION or ./application.yml)")
	pf.StringVar(&rootFlags.profilesActive, "server.profiles.active", "", "Active profile, overlays application-<profile>.yml")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(pipelinesCmd)
	rootCmd.Version = xserver.VERSION
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
