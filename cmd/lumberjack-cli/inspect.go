// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"

	"github.com/villefarm/lumberjack/lumberjack"
	"github.com/villefarm/lumberjack/schema"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [data or file]",
	Short: "Decode an instruction payload",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := decodeFileOrEncoded(cmd, args[0])
		if err != nil {
			return err
		}
		call, record, err := lumberjack.Calls.Decode(data)
		if err != nil {
			return fmt.Errorf("failed to decode instruction: %w", err)
		}
		return printValue(cmd, callResponse{
			Instruction:   call.Name,
			Discriminator: call.Discriminator,
			Args:          record,
		})
	},
}

type callResponse struct {
	Instruction   string        `json:"instruction"`
	Discriminator uint64        `json:"discriminator"`
	Args          schema.Record `json:"args"`
}

func (r callResponse) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%d)", r.Instruction, r.Discriminator)
	names := maps.Keys(r.Args)
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "\n  %s: %v", name, r.Args[name])
	}
	return sb.String()
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
