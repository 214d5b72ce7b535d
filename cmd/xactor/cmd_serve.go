package main

import (
	"github.com/xiaoshicae/xactor/internal/api"
	"github.com/xiaoshicae/xactor/xgin/options"

	"github.com/spf13/cobra"
)

var serveFlags struct {
	noLog     bool
	skipPaths []string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Start the HTTP API and block until SIGINT/SIGTERM.

Listen address, TLS and swagger are read from the XGin section of application.yml.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return api.Serve(
			options.EnableLogMiddleware(!serveFlags.noLog),
			options.LogSkipPaths(serveFlags.skipPaths...),
		)
	},
}

func init() {
	f := serveCmd.Flags()
	f.BoolVar(&serveFlags.noLog, "no-request-log", false, "Disable per-request logging")
	f.StringSliceVar(&serveFlags.skipPaths, "log-skip", nil, "Extra routes excluded from request logging")
}
