package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Load()

	require.Equal(t, "ALL (new)", cfg.Workbook.Sheet)
	require.Equal(t, "all_members.csv", cfg.Output.AllMembersCSV)
	require.Equal(t, "public_members.csv", cfg.Output.PublicMembersCSV)
	require.Equal(t, "Prénom", cfg.Schema.FirstName)
	require.Equal(t, "Nom de la famille", cfg.Schema.LastName)
	require.Len(t, cfg.Redaction.SensitiveColumns, 14)
	require.Equal(t, "membre@rsn-placeholder.ca", cfg.Redaction.Placeholders[cfg.Schema.Email])
	require.Equal(t, "public_members.csv", cfg.SiteCheck.CSVFilename)
}

func TestFileOverridesMergeOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bottin.yaml")
	raw := `
workbook:
  sheet: "Membres 2026"
output:
  publicMembersCsv: "docs/public_members.csv"
schema:
  consent: "Consent"
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))
	t.Setenv("BOTTIN_CONFIG", path)

	cfg := Load()

	require.Equal(t, "Membres 2026", cfg.Workbook.Sheet)
	require.Equal(t, "docs/public_members.csv", cfg.Output.PublicMembersCSV)
	require.Equal(t, "all_members.csv", cfg.Output.AllMembersCSV, "untouched default survives")
	require.Equal(t, "Consent", cfg.Schema.Consent)
	require.Equal(t, "Prénom", cfg.Schema.FirstName, "untouched schema field survives")
}

func TestEnvOverridesTelegram(t *testing.T) {
	t.Setenv("BOTTIN_TELEGRAM_TOKEN", "tok-123")
	t.Setenv("BOTTIN_TELEGRAM_CHAT_ID", "chat-9")

	cfg := Load()

	require.Equal(t, "tok-123", cfg.Notifications.Telegram.BotToken)
	require.Equal(t, "chat-9", cfg.Notifications.Telegram.ChatID)
}

func TestUnreadableConfigFallsBackToDefaults(t *testing.T) {
	t.Setenv("BOTTIN_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg := Load()

	require.Equal(t, "ALL (new)", cfg.Workbook.Sheet)
}
