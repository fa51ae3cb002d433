package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmd := newRootCommand()

	names := []string{}
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}

	assert.ElementsMatch(t, []string{"serve", "migrate"}, names)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestMigrateCommand_SQLite(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "todos.toml")
	dbPath := filepath.Join(dir, "todos.db")

	err := os.WriteFile(configPath, []byte("[database]\ndriver = \"sqlite\"\npath = \""+filepath.ToSlash(dbPath)+"\"\n"), 0o600)
	assert.NoError(t, err)

	var out bytes.Buffer

	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"migrate", "--config", configPath})

	assert.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "migrations applied (sqlite)")

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestMigrateCommand_BadConfig(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"migrate", "--config", filepath.Join(t.TempDir(), "missing.toml")})

	assert.Error(t, cmd.Execute())
}
