// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var programCmd = &cobra.Command{
	Use:   "program",
	Short: "Show the configured program id",
	RunE: func(cmd *cobra.Command, _ []string) error {
		programID, err := getProgramID(cmd)
		if err != nil {
			return err
		}
		return printValue(cmd, programResponse{ProgramID: programID.String()})
	},
}

var programSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Persist a program id override",
	RunE: func(cmd *cobra.Command, _ []string) error {
		value, err := cmd.Flags().GetString("program-id")
		if err != nil {
			return fmt.Errorf("failed to get program-id flag: %w", err)
		}
		if value == "" {
			return fmt.Errorf("%w: --program-id", errMissingArgument)
		}
		programID, err := parseKey("program id", value)
		if err != nil {
			return err
		}
		if err := setConfigValue("program-id", programID.String()); err != nil {
			return fmt.Errorf("failed to update config: %w", err)
		}
		return printValue(cmd, programResponse{ProgramID: programID.String()})
	},
}

type programResponse struct {
	ProgramID string `json:"programId"`
}

func (r programResponse) String() string {
	return "program: " + r.ProgramID
}

func init() {
	programCmd.AddCommand(programSetCmd)
	rootCmd.AddCommand(programCmd)
}
