// Package config provides configuration loading, defaulting, and validation
// for the bot: startup settings come from config.yaml and BOT_* environment
// variables, validated with go-playground/validator.
package config

import (
	"time"

	"github.com/go-telegram/bot/models"
)

// Config defines the application configuration. Admin-editable portal
// settings live in the separate settings record, not here.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Settings  SettingsConfig  `mapstructure:"settings"`
	Lookup    LookupConfig    `mapstructure:"lookup"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

// LoggerConfig controls log level and output format.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds the bot token and, after startup, the bot's own
// identity as reported by Telegram.
type TelegramConfig struct {
	Token string `mapstructure:"token" validate:"required"`

	// BotInfo is populated at runtime via GetMe, not from the config file.
	BotInfo *models.User `mapstructure:"-"`
}

// DatabaseConfig locates the SQLite click-log database.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// SettingsConfig locates the persisted portal settings record.
type SettingsConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// LookupConfig bounds the remote lookup channels.
type LookupConfig struct {
	Timeout time.Duration `mapstructure:"timeout" validate:"min=1s,max=2m"`
}

// SchedulerConfig configures scheduled background tasks by name.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// TaskConfig enables one scheduled task and sets its cron schedule
// (six-field, with seconds).
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// MessagesConfig holds every user-facing message template. Keeping them in
// configuration lets deployments rebrand or translate without a rebuild.
type MessagesConfig struct {
	Welcome         string `mapstructure:"welcome"`
	NotAuthorized   string `mapstructure:"not_authorized"`
	CommandNotFound string `mapstructure:"command_not_found"`
	GeneralError    string `mapstructure:"general_error"`

	CatalogFetched     string `mapstructure:"catalog_fetched"`
	CatalogFetchFailed string `mapstructure:"catalog_fetch_failed"`

	SearchStarted        string `mapstructure:"search_started"`
	MapsNotFound         string `mapstructure:"maps_not_found"`
	AddressesNotFound    string `mapstructure:"addresses_not_found"`
	AddressesUnavailable string `mapstructure:"addresses_unavailable"`
	CadastreNotFound     string `mapstructure:"cadastre_not_found"`
	CadastreUnavailable  string `mapstructure:"cadastre_unavailable"`

	OpenBrowser string `mapstructure:"open_browser"`
	OpenWebApp  string `mapstructure:"open_webapp"`

	AdminHeader     string `mapstructure:"admin_header"`
	EditName        string `mapstructure:"edit_name"`
	EditURL         string `mapstructure:"edit_url"`
	EditGeocoder    string `mapstructure:"edit_geocoder"`
	EditCadastre    string `mapstructure:"edit_cadastre"`
	SendName        string `mapstructure:"send_name"`
	SendURL         string `mapstructure:"send_url"`
	SendGeocoder    string `mapstructure:"send_geocoder"`
	SendCadastre    string `mapstructure:"send_cadastre"`
	NameSaved       string `mapstructure:"name_saved"`
	URLSaved        string `mapstructure:"url_saved"`
	GeocoderSaved   string `mapstructure:"geocoder_saved"`
	CadastreSaved   string `mapstructure:"cadastre_saved"`
	StatsHeader     string `mapstructure:"stats_header"`
	StatsEmpty      string `mapstructure:"stats_empty"`
	MapsListEmpty   string `mapstructure:"maps_list_empty"`
}
