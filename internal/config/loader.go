package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// LoadConfig loads and validates configuration from, in order of
// precedence: BOT_* environment variables, the YAML file at path, and
// built-in defaults.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine, everything can come from
		// defaults and environment variables. With an explicit file path
		// viper surfaces a plain fs error rather than its not-found type.
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !notFound && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.json", false)

	v.SetDefault("database.path", "storage.db")
	v.SetDefault("settings.path", "settings.json")

	v.SetDefault("lookup.timeout", 15*time.Second)

	v.SetDefault("scheduler.tasks.catalog_refresh.enabled", true)
	v.SetDefault("scheduler.tasks.catalog_refresh.schedule", "0 0 */6 * * *")

	v.SetDefault("messages.welcome", "Hi %s! I can find maps, addresses, and cadastral parcels for you. Just send me some text, or use me inline via @%s.")
	v.SetDefault("messages.not_authorized", "You are not authorized to use this command.")
	v.SetDefault("messages.command_not_found", "Command not found: %s")
	v.SetDefault("messages.general_error", "An error occurred. Please try again later.")

	v.SetDefault("messages.catalog_fetched", "Catalog has been refreshed.")
	v.SetDefault("messages.catalog_fetch_failed", "Could not refresh the catalog; keeping the previous one.")

	v.SetDefault("messages.search_started", "Searching for %q...")
	v.SetDefault("messages.maps_not_found", "No maps found.")
	v.SetDefault("messages.addresses_not_found", "No addresses found.")
	v.SetDefault("messages.addresses_unavailable", "Address search is temporarily unavailable.")
	v.SetDefault("messages.cadastre_not_found", "No cadastral parcels found.")
	v.SetDefault("messages.cadastre_unavailable", "Cadastre search is temporarily unavailable.")

	v.SetDefault("messages.open_browser", "Open in browser")
	v.SetDefault("messages.open_webapp", "Open as web app")

	v.SetDefault("messages.admin_header", "Current settings:")
	v.SetDefault("messages.edit_name", "Edit name")
	v.SetDefault("messages.edit_url", "Edit URL")
	v.SetDefault("messages.edit_geocoder", "Edit geocoder URL")
	v.SetDefault("messages.edit_cadastre", "Edit cadastre URL")
	v.SetDefault("messages.send_name", "Send the new portal name.")
	v.SetDefault("messages.send_url", "Send the new portal URL.")
	v.SetDefault("messages.send_geocoder", "Send the new geocoder service URL.")
	v.SetDefault("messages.send_cadastre", "Send the new cadastre service URL.")
	v.SetDefault("messages.name_saved", "Portal name saved: %s")
	v.SetDefault("messages.url_saved", "Portal URL saved: %s")
	v.SetDefault("messages.geocoder_saved", "Geocoder URL saved: %s")
	v.SetDefault("messages.cadastre_saved", "Cadastre URL saved: %s")
	v.SetDefault("messages.stats_header", "Inline result clicks:")
	v.SetDefault("messages.stats_empty", "No clicks recorded yet.")
	v.SetDefault("messages.maps_list_empty", "The catalog is empty. Try /get_catalog first.")
}
