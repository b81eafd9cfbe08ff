// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/villefarm/lumberjack/lumberjack"
)

var addressCmd = &cobra.Command{
	Use:   "address [authority]",
	Short: "Derive the player and plot accounts of a wallet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		programID, err := getProgramID(cmd)
		if err != nil {
			return err
		}
		authority, err := parseKey("authority", args[0])
		if err != nil {
			return err
		}
		if authority.IsZero() {
			return fmt.Errorf("%w: authority", errMissingArgument)
		}

		player, playerBump, err := lumberjack.PlayerAddress(programID, authority)
		if err != nil {
			return err
		}
		plot, plotBump, err := lumberjack.PlotAddress(programID, authority)
		if err != nil {
			return err
		}
		return printValue(cmd, addressResponse{
			Authority:  authority,
			Player:     player,
			PlayerBump: playerBump,
			Plot:       plot,
			PlotBump:   plotBump,
		})
	},
}

type addressResponse struct {
	Authority  solana.PublicKey `json:"authority"`
	Player     solana.PublicKey `json:"player"`
	PlayerBump uint8            `json:"playerBump"`
	Plot       solana.PublicKey `json:"plot"`
	PlotBump   uint8            `json:"plotBump"`
}

func (r addressResponse) String() string {
	return fmt.Sprintf("player: %s (bump %d)\nplot:   %s (bump %d)", r.Player, r.PlayerBump, r.Plot, r.PlotBump)
}

func init() {
	rootCmd.AddCommand(addressCmd)
}
