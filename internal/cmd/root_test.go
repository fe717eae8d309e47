// Copyright 2025 Sunfee Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"testing"

	"github.com/dotandev/sunfee/internal/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandsRegistered(t *testing.T) {
	expected := []string{"quote", "validate", "params", "resources", "history", "version", "completion"}

	registered := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}

	for _, name := range expected {
		assert.True(t, registered[name], "command %q not registered", name)
	}
}

func TestGlobalFlagsDefined(t *testing.T) {
	for _, name := range []string{"network", "node-url", "api-key"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "flag %q not defined", name)
	}
}

func TestLoadConfigAppliesNetworkFlag(t *testing.T) {
	old := NetworkFlag
	NetworkFlag = "nile"
	defer func() { NetworkFlag = old }()

	cfg := loadConfig()
	assert.Equal(t, config.NetworkNile, cfg.Network)
}

func TestHistoryPruneIsSubcommand(t *testing.T) {
	prune, _, err := rootCmd.Find([]string{"history", "prune"})
	require.NoError(t, err)
	assert.Equal(t, "prune", prune.Name())
}

func TestValidateRequiresCoreFlags(t *testing.T) {
	for _, name := range []string{"from", "to", "amount"} {
		flag := validateCmd.Flags().Lookup(name)
		require.NotNil(t, flag, "flag %q not defined", name)
		assert.NotEmpty(t, flag.Annotations[cobra.BashCompOneRequiredFlag], "flag %q not required", name)
	}
}
