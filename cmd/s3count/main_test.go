package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baxromumarov/forkjoin/config"
)

func TestApplyFlagsOnlyChanged(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.AddFlagSet(rootCmd.Flags())
	require.NoError(t, flags.Parse([]string{"--bucket", "other", "--limit", "5", "--ascending"}))

	cfg := &config.Config{}
	require.NoError(t, cfg.Validate())
	applyFlags(flags, cfg)

	assert.Equal(t, "other", cfg.S3.Bucket)
	assert.Equal(t, "data.csv", cfg.S3.Key)
	assert.Equal(t, 5, cfg.Query.Limit)
	assert.True(t, cfg.Query.Ascending)
	assert.Equal(t, "Country", cfg.Query.GroupBy)
	assert.Equal(t, config.FormatTable, cfg.Output.Format)
}

func TestFlagsFixInvalidFileValues(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("output:\n  format: xml\n"), 0o600))

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.AddFlagSet(rootCmd.Flags())
	require.NoError(t, flags.Parse([]string{"--format", "csv"}))

	cfg, err := config.Load(file)
	require.NoError(t, err)
	applyFlags(flags, cfg)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, config.FormatCSV, cfg.Output.Format)
}

func TestVersionFlag(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--version"})
	t.Cleanup(func() {
		versionFlag = false
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "dev-\n", out.String())
}
