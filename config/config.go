package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/askh-dev/askh/constants/lipgloss"
)

// Config represents the structure of the configuration file.
type Config struct {
	Version        string `mapstructure:"version"`
	Theme          string `mapstructure:"theme"`
	Provider       string `mapstructure:"provider"`
	BaseURL        string `mapstructure:"base_url"`
	APIKey         string `mapstructure:"api_key"`
	DocsDir        string `mapstructure:"docs_dir"`
	RequestTimeout int    `mapstructure:"request_timeout"`
}

// DefaultConfig values.
var DefaultConfig = Config{
	Version:        "1.0.0",
	Theme:          "dracula",
	Provider:       "askh",
	BaseURL:        "http://localhost:8000",
	APIKey:         "",
	DocsDir:        "",
	RequestTimeout: 30,
}

// cfgFile holds the path to the configuration file (set via CLI).
var cfgFile string

// LoadConfigs initializes the configuration from .env, file, flags, and
// environment variables, and returns the final config.
func LoadConfigs(rootCmd *cobra.Command, cwd string) *Config {
	var config *Config

	// Load a .env file if one is present; its variables are picked up by the
	// env bindings below.
	_ = godotenv.Load()

	// Set default values using Viper
	setDefaults()

	// Automatically read environment variables
	viper.AutomaticEnv()

	// Explicitly bind environment variables to config keys
	bindEnv()

	// Check if the user provided a config file
	if cfgFile != "" {
		// Use the config file from the flag
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error reading config file: %v", err)))
			os.Exit(1)
		}
	} else {
		// Look for configuration files in the current directory
		viper.SetConfigName("askh-config")
		viper.AddConfigPath(cwd)

		// Support both YAML and JSON formats
		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			viper.SetConfigType("json")
			if err := viper.ReadInConfig(); err != nil {
				// Continue with defaults when no config file exists
				fmt.Println(lipgloss.Yellow.Render("No configuration file found, using defaults"))
			}
		}
	}

	// Bind CLI flags to override config values
	bindFlags(rootCmd)

	// Unmarshal the configuration into the Config struct
	if err := viper.Unmarshal(&config); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Unable to decode into struct: %v", err)))
		os.Exit(1)
	}

	if err := config.Validate(); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Invalid configuration: %v", err)))
		os.Exit(1)
	}

	return config
}

// Validate checks the configuration for the selected provider.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Theme, validation.Required),
		validation.Field(&c.Provider, validation.Required, validation.In("askh", "local")),
		validation.Field(&c.BaseURL, validation.Required.When(c.Provider == "askh"), is.URL),
		validation.Field(&c.DocsDir, validation.Required.When(c.Provider == "local")),
		validation.Field(&c.RequestTimeout, validation.Required, validation.Min(1)),
	)
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

// setDefaults sets all default configuration values.
func setDefaults() {
	viper.SetDefault("version", DefaultConfig.Version)
	viper.SetDefault("theme", DefaultConfig.Theme)
	viper.SetDefault("provider", DefaultConfig.Provider)
	viper.SetDefault("base_url", DefaultConfig.BaseURL)
	viper.SetDefault("api_key", DefaultConfig.APIKey)
	viper.SetDefault("docs_dir", DefaultConfig.DocsDir)
	viper.SetDefault("request_timeout", DefaultConfig.RequestTimeout)
}

// bindEnv explicitly binds environment variables to configuration keys.
func bindEnv() {
	_ = viper.BindEnv("theme", "THEME")
	_ = viper.BindEnv("provider", "PROVIDER")
	_ = viper.BindEnv("base_url", "ASKH_BASE_URL")
	_ = viper.BindEnv("api_key", "ASKH_API_KEY")
	_ = viper.BindEnv("docs_dir", "DOCS_DIR")
	_ = viper.BindEnv("request_timeout", "REQUEST_TIMEOUT")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(rootCmd *cobra.Command) {
	_ = viper.BindPFlag("theme", rootCmd.PersistentFlags().Lookup("theme"))
	_ = viper.BindPFlag("provider", rootCmd.PersistentFlags().Lookup("provider"))
	_ = viper.BindPFlag("base_url", rootCmd.PersistentFlags().Lookup("base_url"))
	_ = viper.BindPFlag("api_key", rootCmd.PersistentFlags().Lookup("api_key"))
	_ = viper.BindPFlag("docs_dir", rootCmd.PersistentFlags().Lookup("docs_dir"))
	_ = viper.BindPFlag("request_timeout", rootCmd.PersistentFlags().Lookup("request_timeout"))
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	// Use PersistentFlags so that these flags are available in all subcommands
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Specifies the path to a configuration file (JSON or YAML) that contains all the settings for the application.")

	rootCmd.PersistentFlags().String("theme", DefaultConfig.Theme, "Set customize theme for rendering code blocks. (e.g., 'dracula', 'light', 'dark')")
	rootCmd.PersistentFlags().String("provider", DefaultConfig.Provider, "The content provider to browse with ('askh' for a running ASKH backend, 'local' for a docs directory)")
	rootCmd.PersistentFlags().String("base_url", DefaultConfig.BaseURL, "The base URL of the ASKH backend (e.g., default is 'http://localhost:8000').")
	rootCmd.PersistentFlags().String("api_key", DefaultConfig.APIKey, "The API key used to authenticate with the ASKH backend, if it requires one.")
	rootCmd.PersistentFlags().String("docs_dir", DefaultConfig.DocsDir, "The directory of markdown documents to browse when the provider is 'local'.")
	rootCmd.PersistentFlags().Int("request_timeout", DefaultConfig.RequestTimeout, "Request timeout in seconds for backend calls.")

	// Version flag
	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")
}

// GetConfigFileType returns the type of the configuration file based on its extension.
func GetConfigFileType(filename string) string {
	if strings.HasSuffix(filename, ".json") {
		return "json"
	} else if strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml") {
		return "yaml"
	}
	return ""
}
