package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCmd_Use(t *testing.T) {
	assert.Equal(t, "config", configCmd.Use)
	assert.Equal(t, "set <key> <value>", configSetCmd.Use)
	assert.Equal(t, "unset <key>", configUnsetCmd.Use)
}

func TestConfigShow_Defaults(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Current Settings")
	assert.Contains(t, out, "http://localhost:1200")
	assert.Contains(t, out, "elasticsearch")
	assert.Contains(t, out, "10s")
	assert.Contains(t, out, "in...ow")
	assert.NotContains(t, out, "infini_rag_flow")
	assert.Contains(t, out, "Config file: :memory:")
}

func TestConfigCmd_DefaultsToShow(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "Current Settings")
}

func TestConfigSet_URL(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "set", "url", "https://search.internal:9200"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Set url to https://search.internal:9200")

	endpoint, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, "https://search.internal:9200", endpoint.URL)
}

func TestConfigSet_PasswordIsMasked(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "set", "password", "correct-horse-battery"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())

	assert.NotContains(t, buf.String(), "correct-horse-battery")
	assert.Contains(t, buf.String(), "Set password to co...ry")
}

func TestConfigSet_RejectsInvalidValue(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad timeout", []string{"config", "set", "timeout", "soon"}, "failed to set timeout"},
		{"bad engine", []string{"config", "set", "engine", "solr"}, "failed to set engine"},
		{"bad url", []string{"config", "set", "url", "ftp://example.com"}, "failed to set url"},
		{"unknown key", []string{"config", "set", "colour", "blue"}, "unknown setting"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestServices()
			defer cleanup()

			buf := new(bytes.Buffer)
			rootCmd.SetOut(buf)
			rootCmd.SetArgs(tt.args)
			defer func() {
				rootCmd.SetArgs(nil)
			}()

			err := rootCmd.Execute()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestConfigSet_RequiresTwoArgs(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"config", "set", "url"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestConfigUnset_RestoresDefault(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	require.NoError(t, settingsService.Set("timeout", "30s"))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "unset", "timeout"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "Unset timeout")

	endpoint, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, "10s", endpoint.EffectiveTimeout().String())
}

func TestConfigPath(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "path"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, ":memory:\n", buf.String())
}

func TestConfigCmd_NoService(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	settingsService = nil

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}

func TestMaskPassword(t *testing.T) {
	assert.Equal(t, "(not set)", maskPassword(""))
	assert.Equal(t, "****", maskPassword("short"))
	assert.Equal(t, "in...ow", maskPassword("infini_rag_flow"))
}
