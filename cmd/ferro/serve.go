package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ifro-labs/ferro/pkg/server"
	"github.com/ifro-labs/ferro/pkg/version"
)

// NewServeCommand .
func NewServeCommand() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Run the web page and API server in the foreground",
		GroupID: gAdvanced,
		Long: `Run the web page and API server in the foreground.

Every experiment is fitted at startup; a dataset that cannot be fitted stops the server from starting. Send SIGHUP to reload the config file and re-fit all experiments.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			logrus.WithFields(logrus.Fields{
				"version": version.Version,
				"commit":  version.GitCommit,
			}).Info("ferro server starting")
			return server.Run(configPath, listen)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "address to listen on (overrides the config file)")

	return cmd
}
