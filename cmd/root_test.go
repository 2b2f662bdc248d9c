package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"classify", "matrix", "rank"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "country-risk", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	for _, name := range []string{"input", "types", "primary", "delimiter", "sheet", "strict", "workers", "format", "output"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "root should have --%s flag", name)
	}

	flag := rootCmd.PersistentFlags().ShorthandLookup("t")
	require.NotNil(t, flag)
	assert.Equal(t, "types", flag.Name)
}

func TestClassifyCommand_Flags(t *testing.T) {
	for _, name := range []string{"source", "dangerous-max", "moderate-max"} {
		assert.NotNil(t, classifyCmd.Flags().Lookup(name), "classify should have --%s flag", name)
	}
}

func TestRankCommand_Flags(t *testing.T) {
	flag := rankCmd.Flags().Lookup("fraction")
	require.NotNil(t, flag, "rank command should have --fraction flag")
	assert.Equal(t, "0", flag.DefValue)
}
