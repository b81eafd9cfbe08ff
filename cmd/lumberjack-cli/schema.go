// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/villefarm/lumberjack/chain"
	"github.com/villefarm/lumberjack/lumberjack"
	"github.com/villefarm/lumberjack/schema"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the account and instruction layouts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printValue(cmd, schemaResponse{
			Accounts:     lumberjack.AccountSchemas,
			Instructions: lumberjack.Calls.Calls(),
		})
	},
}

type schemaResponse struct {
	Accounts     []*schema.Schema `json:"accounts"`
	Instructions []*chain.Call    `json:"instructions"`
}

func (r schemaResponse) String() string {
	var sb strings.Builder
	sb.WriteString("accounts:")
	for _, s := range r.Accounts {
		fmt.Fprintf(&sb, "\n  %s %s", s.Name, s.DiscriminatorBase58())
		writeFields(&sb, s.Fields)
	}
	sb.WriteString("\ninstructions:")
	for _, c := range r.Instructions {
		fmt.Fprintf(&sb, "\n  %s %d", c.Name, c.Discriminator)
		writeFields(&sb, c.Fields)
		for _, slot := range c.Accounts {
			fmt.Fprintf(&sb, "\n    account %s", slot.Name)
			if slot.Writable {
				sb.WriteString(" mut")
			}
			if slot.Signer {
				sb.WriteString(" signer")
			}
			if slot.Optional {
				sb.WriteString(" optional")
			}
		}
	}
	return sb.String()
}

func writeFields(sb *strings.Builder, fields []schema.Field) {
	for _, f := range fields {
		fmt.Fprintf(sb, "\n    %s: %s", f.Name, f.Kind)
	}
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
