package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tferdous17/rbkv/utils"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rbkv.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestReadFile_Overlay(t *testing.T) {
	path := writeConfig(t, "shards: 5\nhttp_addr: \":9090\"\n")

	config, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 5, config.Shards)
	assert.Equal(t, ":9090", config.HTTPAddr)
	assert.Equal(t, ":11000", config.GRPCAddr)
	assert.Equal(t, uint32(1024), config.ExpectedKeys)
	assert.Equal(t, 0.01, config.FalsePositiveRate)
}

func TestReadFile_Invalid(t *testing.T) {
	tests := map[string]string{
		"zero shards": "shards: 0\n",
		"bad rate":    "false_positive_rate: 1.5\n",
		"empty http":  "http_addr: \"\"\n",
		"not yaml":    "shards: [\n",
		"zero keys":   "expected_keys: 0\n",
		"wrong type":  "shards: many\n",
		"empty grpc":  "grpc_addr: \"\"\n",
	}
	for name, contents := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadFile(writeConfig(t, contents))
			assert.ErrorIs(t, err, utils.ErrInvalidConfig)
		})
	}
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
