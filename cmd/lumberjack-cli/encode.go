// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/villefarm/lumberjack/chain"
	"github.com/villefarm/lumberjack/lumberjack"
)

var encodeCmd = &cobra.Command{
	Use:   "encode [initPlayer|plant|harvest|update]",
	Short: "Build an unsigned instruction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := getLogger(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		programID, err := getProgramID(cmd)
		if err != nil {
			return err
		}
		accounts, err := gatherAccounts(cmd, programID)
		if err != nil {
			return err
		}
		humanType, err := cmd.Flags().GetString("human-type")
		if err != nil {
			return fmt.Errorf("failed to get human type: %w", err)
		}

		var ix *chain.Instruction
		switch args[0] {
		case lumberjack.InitPlayerCall.Name:
			ix, err = lumberjack.InitPlayer(lumberjack.InitPlayerAccounts{
				Player:        accounts.player,
				Plot:          accounts.plot,
				Signer:        accounts.signer,
				SystemProgram: solana.SystemProgramID,
			}, programID)
		case lumberjack.PlantCall.Name:
			if humanType == "" {
				return fmt.Errorf("%w: --human-type", errMissingArgument)
			}
			ix, err = lumberjack.Plant(lumberjack.PlantAccounts{
				SessionToken: accounts.sessionToken,
				Player:       accounts.player,
				Plot:         accounts.plot,
				Signer:       accounts.signer,
			}, humanType, programID)
		case lumberjack.HarvestCall.Name:
			ix, err = lumberjack.Harvest(lumberjack.HarvestAccounts{
				SessionToken: accounts.sessionToken,
				Player:       accounts.player,
				Plot:         accounts.plot,
				Signer:       accounts.signer,
			}, programID)
		case lumberjack.UpdateCall.Name:
			ix, err = lumberjack.Update(lumberjack.UpdateAccounts{
				SessionToken: accounts.sessionToken,
				Player:       accounts.player,
				Signer:       accounts.signer,
			}, programID)
		default:
			return fmt.Errorf("unknown instruction %q", args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", args[0], err)
		}
		log.Debug("encoded instruction",
			zap.String("instruction", args[0]),
			zap.Int("dataLen", len(ix.Payload)),
			zap.Int("accounts", len(ix.Keys)),
		)
		return printValue(cmd, instructionResponse{ix})
	},
}

type encodeAccounts struct {
	sessionToken solana.PublicKey
	player       solana.PublicKey
	plot         solana.PublicKey
	signer       solana.PublicKey
}

// gatherAccounts derives the player and plot addresses from --authority
// unless they are given explicitly. The signer defaults to the authority.
func gatherAccounts(cmd *cobra.Command, programID solana.PublicKey) (encodeAccounts, error) {
	var (
		accounts encodeAccounts
		values   = make(map[string]solana.PublicKey)
	)
	for _, name := range []string{"authority", "signer", "session-token", "player", "plot"} {
		value, err := cmd.Flags().GetString(name)
		if err != nil {
			return accounts, fmt.Errorf("failed to get %s: %w", name, err)
		}
		key, err := parseKey(name, value)
		if err != nil {
			return accounts, err
		}
		values[name] = key
	}

	authority := values["authority"]
	accounts.sessionToken = values["session-token"]
	accounts.player = values["player"]
	accounts.plot = values["plot"]
	accounts.signer = values["signer"]
	if accounts.signer.IsZero() {
		accounts.signer = authority
	}
	if authority.IsZero() {
		return accounts, nil
	}
	if accounts.player.IsZero() {
		player, _, err := lumberjack.PlayerAddress(programID, authority)
		if err != nil {
			return accounts, err
		}
		accounts.player = player
	}
	if accounts.plot.IsZero() {
		plot, _, err := lumberjack.PlotAddress(programID, authority)
		if err != nil {
			return accounts, err
		}
		accounts.plot = plot
	}
	return accounts, nil
}

type instructionResponse struct {
	*chain.Instruction
}

func (r instructionResponse) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "program: %s\n", r.Program)
	fmt.Fprintf(&sb, "data:    %s\n", r.Payload)
	sb.WriteString("accounts:")
	for i, meta := range r.Keys {
		fmt.Fprintf(&sb, "\n  %d %s %s", i, metaFlags(meta), meta.PublicKey)
	}
	return sb.String()
}

func metaFlags(meta *solana.AccountMeta) string {
	flags := []byte("--")
	if meta.IsWritable {
		flags[0] = 'w'
	}
	if meta.IsSigner {
		flags[1] = 's'
	}
	return string(flags)
}

func init() {
	encodeCmd.Flags().String("authority", "", "Wallet that owns the player accounts (base58)")
	encodeCmd.Flags().String("signer", "", "Signer of the instruction, defaults to the authority (base58)")
	encodeCmd.Flags().String("session-token", "", "Session token account (base58)")
	encodeCmd.Flags().String("player", "", "PlayerData account, derived from the authority when omitted (base58)")
	encodeCmd.Flags().String("plot", "", "Plot account, derived from the authority when omitted (base58)")
	encodeCmd.Flags().String("human-type", "", "Human to plant")
	rootCmd.AddCommand(encodeCmd)
}
