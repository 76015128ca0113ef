package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MalithGihan/annotation-extractor/internal/relay"
)

var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Only run the WebSocket relay to the companion tool",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return newRelay(newExtractor()).Run(ctx)
	},
}

func newRelay(ex relay.Extractor) *relay.Client {
	return relay.New(relay.Options{
		URL:               cfg.Relay.URL,
		PingInterval:      cfg.Relay.PingInterval,
		ReconnectInterval: cfg.Relay.ReconnectInterval,
		Logger:            logger,
	}, ex)
}
