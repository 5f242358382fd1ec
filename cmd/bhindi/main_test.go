package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("BHINDI_KEYRING_BACKEND", "file")
	t.Setenv("BHINDI_KEYRING_DIR", filepath.Join(dir, "keys"))
	t.Setenv("BHINDI_KEYRING_PASSWORD", "test")
	t.Setenv("BHINDI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExport_ToFile(t *testing.T) {
	dir := isolate(t)
	target := filepath.Join(dir, "backup.json")

	out, err := run(t, "--config", filepath.Join(dir, "none.yaml"), "--db", filepath.Join(dir, "b.db"), "export", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported to "+target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "settings")
	assert.Contains(t, doc, "chats")
}

func TestExport_ToStdout(t *testing.T) {
	dir := isolate(t)

	out, err := run(t, "--config", filepath.Join(dir, "none.yaml"), "--db", filepath.Join(dir, "b.db"), "export", "-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{"))
	assert.Contains(t, out, `"settings"`)
}

func TestAsk_RequiresMessage(t *testing.T) {
	dir := isolate(t)
	_, err := run(t, "--config", filepath.Join(dir, "none.yaml"), "--db", filepath.Join(dir, "b.db"), "ask")
	assert.Error(t, err)
}

func TestRoot_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range newRootCmd().Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["ask"])
	assert.True(t, names["export"])
}
