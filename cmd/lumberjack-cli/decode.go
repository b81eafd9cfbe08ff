// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/villefarm/lumberjack/lumberjack"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [data or file]",
	Short: "Decode raw account data",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := getLogger(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		data, err := decodeFileOrEncoded(cmd, args[0])
		if err != nil {
			return err
		}
		log.Debug("decoding account",
			zap.Int("size", len(data)),
		)

		accountType, err := cmd.Flags().GetString("type")
		if err != nil {
			return fmt.Errorf("failed to get type: %w", err)
		}

		var account any
		switch strings.ToLower(accountType) {
		case "auto":
			account, err = lumberjack.DecodeAccount(data)
		case "player":
			account, err = decodeExpected(data, lumberjack.DecodePlayerData)
		case "plot":
			account, err = decodeExpected(data, lumberjack.DecodePlot)
		default:
			return fmt.Errorf("unknown account type %q", accountType)
		}
		if err != nil {
			return fmt.Errorf("failed to decode account: %w", err)
		}
		return printValue(cmd, newAccountResponse(account))
	},
}

func decodeExpected[T any](data []byte, decode func([]byte) (*T, bool, error)) (any, error) {
	v, ok, err := decode(data)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, lumberjack.ErrUnknownAccount
	}
	return v, nil
}

type accountResponse struct {
	Type    string `json:"type"`
	Account any    `json:"account"`
}

func newAccountResponse(account any) accountResponse {
	switch account.(type) {
	case *lumberjack.PlayerData:
		return accountResponse{Type: lumberjack.PlayerDataSchema.Name, Account: account}
	default:
		return accountResponse{Type: lumberjack.PlotSchema.Name, Account: account}
	}
}

func (r accountResponse) String() string {
	var sb strings.Builder
	sb.WriteString(r.Type)
	switch a := r.Account.(type) {
	case *lumberjack.PlayerData:
		fmt.Fprintf(&sb, "\n  authority: %s", a.Authority)
		fmt.Fprintf(&sb, "\n  name:      %q", a.Name)
		fmt.Fprintf(&sb, "\n  level:     %d", a.Level)
		fmt.Fprintf(&sb, "\n  xp:        %d", a.Xp)
		fmt.Fprintf(&sb, "\n  energy:    %d", a.Energy)
		fmt.Fprintf(&sb, "\n  gold:      %d", a.Gold)
		fmt.Fprintf(&sb, "\n  lastLogin: %d", a.LastLogin)
	case *lumberjack.Plot:
		fmt.Fprintf(&sb, "\n  humanType: %q", a.HumanType)
		fmt.Fprintf(&sb, "\n  plantedAt: %d", a.PlantedAt)
	}
	return sb.String()
}

func init() {
	decodeCmd.Flags().String("type", "auto", "Account type (auto, player or plot)")
	rootCmd.AddCommand(decodeCmd)
}
