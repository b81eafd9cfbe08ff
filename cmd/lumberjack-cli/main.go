// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lumberjack-cli",
	Short: "Offline codec for the lumberjack game program",
	Long:  `A CLI for decoding lumberjack accounts and building lumberjack instructions without touching the network.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(0)
}

func init() {
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format (text, json or yaml)")
	rootCmd.PersistentFlags().String("program-id", "", "Override the default program id")
	rootCmd.PersistentFlags().String("encoding", "hex", "Encoding of data arguments (hex, base64 or base58)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to a rotated file instead of stderr")
}

func main() {
	Execute()
}
