// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v2"

	rotate "gopkg.in/natefinch/lumberjack.v2"

	"github.com/villefarm/lumberjack/codec"
	"github.com/villefarm/lumberjack/lumberjack"
)

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error getting home directory:", err)
		os.Exit(1)
	}

	configDir := filepath.Join(homeDir, ".lumberjack-cli")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "Error creating config directory:", err)
		os.Exit(1)
	}

	configFile := filepath.Join(configDir, "config.yaml")
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if _, err := os.Create(configFile); err != nil {
			fmt.Fprintln(os.Stderr, "Error creating config file:", err)
			os.Exit(1)
		}
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "Error reading config:", err)
			os.Exit(1)
		}
	}
}

func getOutputFormat(cmd *cobra.Command) (string, error) {
	output, err := getConfigValue(cmd, "output", false)
	if err != nil {
		return "", fmt.Errorf("failed to get output format: %w", err)
	}
	return strings.ToLower(output), nil
}

func printValue(cmd *cobra.Command, v fmt.Stringer) error {
	output, err := getOutputFormat(cmd)
	if err != nil {
		return err
	}

	switch output {
	case "json":
		jsonBytes, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
	case "yaml":
		// Round trip through JSON so keys and addresses use their JSON form.
		jsonBytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		var generic any
		if err := json.Unmarshal(jsonBytes, &generic); err != nil {
			return fmt.Errorf("failed to unmarshal JSON: %w", err)
		}
		yamlBytes, err := yaml.Marshal(generic)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(yamlBytes))
	default:
		fmt.Fprintln(cmd.OutOrStdout(), v.String())
	}
	return nil
}

// getConfigValue prefers an explicitly set flag, then the config file, then
// the flag default.
func getConfigValue(cmd *cobra.Command, key string, required bool) (string, error) {
	flag := cmd.Flags().Lookup(key)
	if flag != nil && flag.Changed {
		return flag.Value.String(), nil
	}

	if value := viper.GetString(key); value != "" {
		return value, nil
	}

	if flag != nil && flag.Value.String() != "" {
		return flag.Value.String(), nil
	}

	if required {
		return "", fmt.Errorf("required value for %s not found", key)
	}

	return "", nil
}

func setConfigValue(key, value string) error {
	viper.Set(key, value)
	return viper.WriteConfig()
}

func getProgramID(cmd *cobra.Command) (solana.PublicKey, error) {
	value, err := getConfigValue(cmd, "program-id", false)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if value == "" {
		return lumberjack.ProgramID, nil
	}
	programID, err := solana.PublicKeyFromBase58(value)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid program id %q: %w", value, err)
	}
	return programID, nil
}

func getLogger(cmd *cobra.Command) (*zap.Logger, error) {
	value, err := getConfigValue(cmd, "log-level", false)
	if err != nil {
		return nil, err
	}
	level, err := zap.ParseAtomicLevel(value)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", value, err)
	}
	logFile, err := getConfigValue(cmd, "log-file", false)
	if err != nil {
		return nil, err
	}
	if logFile == "" {
		config := zap.NewDevelopmentConfig()
		config.Level = level
		config.OutputPaths = []string{"stderr"}
		return config.Build()
	}

	writer := &rotate.Logger{
		Filename:   logFile,
		MaxSize:    8, // MB
		MaxBackups: 3,
		Compress:   true,
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(writer),
		level,
	)
	return zap.New(core), nil
}

// decodeFileOrEncoded reads [arg] as encoded data, falling back to the raw
// contents of a file with that name.
func decodeFileOrEncoded(cmd *cobra.Command, arg string) ([]byte, error) {
	encoding, err := getConfigValue(cmd, "encoding", false)
	if err != nil {
		return nil, err
	}
	if decoded, err := codec.LoadEncoded(arg, encoding, -1); err == nil {
		return decoded, nil
	}

	if fileContents, err := os.ReadFile(arg); err == nil {
		return fileContents, nil
	}

	return nil, fmt.Errorf("unable to decode input as %s, or read as file path", encoding)
}

func parseKey(name, value string) (solana.PublicKey, error) {
	if value == "" {
		return solana.PublicKey{}, nil
	}
	key, err := solana.PublicKeyFromBase58(value)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	return key, nil
}

var errMissingArgument = errors.New("missing argument")
