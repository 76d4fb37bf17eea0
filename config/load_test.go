package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAgentSpec_AppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "writer.yaml", `
name: writer
instructions: "You write prose."
`)

	spec, err := LoadAgentSpec(path)
	require.NoError(t, err)

	assert.Equal(t, "writer", spec.Name)
	assert.Equal(t, "openai", spec.Backend)
	assert.Equal(t, "gpt-4o-mini", spec.LLM.Model)
	assert.Equal(t, "OPENAI_API_KEY", spec.LLM.APIKeyEnv)
	assert.Equal(t, 0.1, spec.LLM.Temperature)
	assert.Equal(t, DefaultMaxTurns, spec.MaxTurns)
}

func TestLoadAgentSpec_RejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.yaml", `
name: bad
instructions: "x"
backnd: openai
`)

	_, err := LoadAgentSpec(path)
	assert.Error(t, err)
}

func TestLoadAgentSpec_JSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "writer.json", `{"name":"writer","instructions":"You write prose."}`)

	spec, err := LoadAgentSpec(path)
	require.NoError(t, err)
	assert.Equal(t, "writer", spec.Name)
}

func TestLoadAgentSpec_UnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "writer.toml", `name = "writer"`)

	_, err := LoadAgentSpec(path)
	assert.ErrorContains(t, err, "unsupported config format")
}

func TestLoadPipelineSpec_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "pipe.yaml", `
name: pipe
agents: [writer, editor]
`)

	spec, err := LoadPipelineSpec(path)
	require.NoError(t, err)
	assert.Equal(t, StrategySequential, spec.Strategy)
	assert.Equal(t, DefaultMaxRounds, spec.MaxRounds)
}

func TestLoadRoster(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "writer.yaml", "name: writer\ninstructions: x\n")
	writeFile(t, dir, "editor.yml", "name: editor\ninstructions: x\n")

	roster, err := LoadRoster(dir, []string{"writer", "editor"})
	require.NoError(t, err)
	assert.Equal(t, 2, roster.Len())
	assert.Equal(t, []string{"editor", "writer"}, roster.Names())
}

func TestLoadRoster_MissingAgent(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadRoster(dir, []string{"ghost"})
	assert.ErrorContains(t, err, "agent config not found")
}

func TestLoadRoster_NameMismatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "writer.yaml", "name: other\ninstructions: x\n")

	_, err := LoadRoster(dir, []string{"writer"})
	assert.ErrorContains(t, err, "declares agent")
}
