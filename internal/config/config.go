package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "BOTTIN_CONFIG"
	telegramTokenEnv  = "BOTTIN_TELEGRAM_TOKEN"
	telegramChatIDEnv = "BOTTIN_TELEGRAM_CHAT_ID"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Workbook      WorkbookConfig     `yaml:"workbook"`
	Output        OutputConfig       `yaml:"output"`
	Schema        SchemaConfig       `yaml:"schema"`
	Redaction     RedactionConfig    `yaml:"redaction"`
	Notifications NotificationConfig `yaml:"notifications"`
	SiteCheck     SiteCheckConfig    `yaml:"siteCheck"`
}

// LoggingConfig controls slog verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// WorkbookConfig describes how to read the member workbook.
type WorkbookConfig struct {
	Sheet string `yaml:"sheet"`
}

// OutputConfig carries the default destination paths of both transforms.
type OutputConfig struct {
	AllMembersCSV    string `yaml:"allMembersCsv"`
	PublicMembersCSV string `yaml:"publicMembersCsv"`
}

// SchemaConfig names the columns the pipeline addresses directly. The
// defaults match the membership form's French headers; deployments with a
// different form override them in the config file.
type SchemaConfig struct {
	FirstName      string `yaml:"firstName"`
	LastName       string `yaml:"lastName"`
	Email          string `yaml:"email"`
	Institution    string `yaml:"institution"`
	Status         string `yaml:"status"`
	MembershipType string `yaml:"membershipType"`
	Consent        string `yaml:"consent"`
	FirstAxis      string `yaml:"firstAxis"`
}

// RedactionConfig lists the personal columns masked for pending members and
// the placeholder text substituted where a visible hint beats a blank cell.
// Sensitive columns absent from Placeholders are blanked.
type RedactionConfig struct {
	SensitiveColumns []string          `yaml:"sensitiveColumns"`
	Placeholders     map[string]string `yaml:"placeholders"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// SiteCheckConfig describes what the deployed directory page must reference.
type SiteCheckConfig struct {
	CSVFilename string `yaml:"csvFilename"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Workbook.Sheet != "" {
		base.Workbook = override.Workbook
	}

	if override.Output.AllMembersCSV != "" {
		base.Output.AllMembersCSV = override.Output.AllMembersCSV
	}
	if override.Output.PublicMembersCSV != "" {
		base.Output.PublicMembersCSV = override.Output.PublicMembersCSV
	}

	base.Schema = mergeSchema(base.Schema, override.Schema)

	if len(override.Redaction.SensitiveColumns) > 0 {
		base.Redaction.SensitiveColumns = override.Redaction.SensitiveColumns
	}
	if len(override.Redaction.Placeholders) > 0 {
		base.Redaction.Placeholders = override.Redaction.Placeholders
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.SiteCheck.CSVFilename != "" {
		base.SiteCheck = override.SiteCheck
	}

	return base
}

func mergeSchema(base, override SchemaConfig) SchemaConfig {
	if override.FirstName != "" {
		base.FirstName = override.FirstName
	}
	if override.LastName != "" {
		base.LastName = override.LastName
	}
	if override.Email != "" {
		base.Email = override.Email
	}
	if override.Institution != "" {
		base.Institution = override.Institution
	}
	if override.Status != "" {
		base.Status = override.Status
	}
	if override.MembershipType != "" {
		base.MembershipType = override.MembershipType
	}
	if override.Consent != "" {
		base.Consent = override.Consent
	}
	if override.FirstAxis != "" {
		base.FirstAxis = override.FirstAxis
	}
	return base
}

func defaultConfig() Config {
	schema := SchemaConfig{
		FirstName:      "Prénom",
		LastName:       "Nom de la famille",
		Email:          "E-mail / Courriel",
		Institution:    "Institution / organisation 1",
		Status:         "Statut actuel",
		MembershipType: "Type d'adhesion",
		Consent:        "Autorisez-vous le RSN à vous créer un profil de membre public",
		FirstAxis:      "1e Axe d'intérêt",
	}

	return Config{
		Logging:  LoggingConfig{Level: "info"},
		Workbook: WorkbookConfig{Sheet: "ALL (new)"},
		Output: OutputConfig{
			AllMembersCSV:    "all_members.csv",
			PublicMembersCSV: "public_members.csv",
		},
		Schema: schema,
		Redaction: RedactionConfig{
			SensitiveColumns: []string{
				schema.Email,
				"Autre courriel",
				schema.Status,
				schema.Institution,
				"Réseau 1",
				"Expertise",
				"Thèmes d'intérêt",
				"Projet de recherche",
				"Étudiant.e.s",
				"Référée par",
				"Droit de vote",
				"ORCID",
				"CV / LinkedIn",
				"Évaluateur du RSN - nouv. formulaire",
			},
			Placeholders: map[string]string{
				schema.Email:       "membre@rsn-placeholder.ca",
				schema.Institution: "Institution non divulguée",
				schema.Status:      "Non divulgué",
			},
		},
		Notifications: NotificationConfig{
			Telegram: TelegramConfig{BotToken: "", ChatID: ""},
		},
		SiteCheck: SiteCheckConfig{CSVFilename: "public_members.csv"},
	}
}
