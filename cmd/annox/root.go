package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/MalithGihan/annotation-extractor/internal/codesign"
	"github.com/MalithGihan/annotation-extractor/internal/config"
	"github.com/MalithGihan/annotation-extractor/internal/extract"
)

var (
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
)

var rootCmd = &cobra.Command{
	Use:   "annox",
	Short: "annox - design annotation extractor",
	Long: `annox pulls layer annotations (geometry, CSS, fills, borders) out of
Codesign screens and rebuilds them as a nested layer tree.

Run 'annox extract' to copy one layer tree to the clipboard,
'annox screens' to list a design's screens, or 'annox serve' to run the
local HTTP API together with the WebSocket relay.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		c, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		level, err := log.ParseLevel(c.Log.Level)
		if err != nil {
			level = log.InfoLevel
		}
		if verbose {
			level = log.DebugLevel
		}
		logger.SetLevel(level)
		cfg = c
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(screensCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(relayCmd)
	rootCmd.AddCommand(sliceCmd)
}

func newClient() *codesign.Client {
	return codesign.New(cfg.Codesign.BaseURL, cfg.Codesign.Cookie, cfg.Codesign.Timeout)
}

func newExtractor() *extract.Extractor {
	return extract.New(newClient(), logger)
}
