package booknotes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequiresSubcommand(t *testing.T) {
	_, _, err := Parse(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subcommand required")
}

func TestParseUnknownCommand(t *testing.T) {
	_, _, err := Parse([]string{"frobnicate"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestParseRunRequiresSecrets(t *testing.T) {
	t.Setenv("SECRET_KEY", "")
	t.Setenv("SECRET_WORD_DIGEST", "")

	_, _, err := Parse([]string{"run"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SECRET_KEY")

	t.Setenv("SECRET_KEY", "k")
	_, _, err = Parse([]string{"run"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SECRET_WORD_DIGEST")
}

func TestParseRun(t *testing.T) {
	t.Setenv("SECRET_KEY", "k")
	t.Setenv("SECRET_WORD_DIGEST", "d")
	t.Setenv("DETERRENT_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("SQLITE_PATH", "")

	cmd, config, err := Parse([]string{"-port=9999", "-sqlite=test.db", "run"})
	require.NoError(t, err)
	require.IsType(t, &RunCommand{}, cmd)
	assert.Equal(t, "9999", config.ServerPort)
	assert.Equal(t, "test.db", config.SQLitePath)
	assert.Equal(t, defaultDeterrentURL, config.DeterrentURL)
}

func TestParseEnvOverridesFlags(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("SQLITE_PATH", "env.db")

	cmd, config, err := Parse([]string{"-port=9999", "migrate"})
	require.NoError(t, err)
	require.IsType(t, &MigrateCommand{}, cmd)
	assert.Equal(t, "7070", config.ServerPort)
	assert.Equal(t, "env.db", config.SQLitePath)
}

func TestParseCreateAdmin(t *testing.T) {
	cmd, _, err := Parse([]string{"create-admin", "admin", "s3cret"})
	require.NoError(t, err)

	createAdmin, ok := cmd.(*CreateAdminCommand)
	require.True(t, ok)
	assert.Equal(t, "admin", createAdmin.Username)
	assert.Equal(t, "s3cret", createAdmin.Password)

	_, _, err = Parse([]string{"create-admin", "admin"})
	require.Error(t, err)
}
