package cmd

import (
	"lsmc/internal/logger"

	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the http api",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := loadDependencies(cmd)
		if err != nil {
			return err
		}

		port := deps.Config.Server.Port
		if cmd.Flags().Changed("port") {
			port = servePort
		}
		logger.FromContext(cmd.Context()).Infow("starting api", "port", port)
		return deps.ApiHandler.StartApi(port)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
