package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("annox failed", "error", err)
		os.Exit(1)
	}
}
