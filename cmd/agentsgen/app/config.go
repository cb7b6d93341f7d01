package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	settings "github.com/agentstation/agentsgen/internal/config"
	"github.com/agentstation/agentsgen/pkg/errors"
)

// settingsFile is the CLI settings file looked up in the home and working
// directories. It is unrelated to the per-repository .agentsgen.json.
const settingsFile = ".agentsgen.yaml"

// Config holds the CLI configuration loaded from flags, AGENTSGEN_*
// variables, .env files and the settings file.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	ConfigFile string

	// MaxParallel bounds concurrent file reconciliation; 0 means one
	// worker per file.
	MaxParallel int

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (handled by cobra)
//  2. AGENTSGEN_* environment variables
//  3. .env files
//  4. Settings file (./.agentsgen.yaml, then ~/.agentsgen.yaml)
//  5. Defaults
func LoadConfig() (*Config, error) {
	loadEnvFiles()

	viper.SetEnvPrefix(settings.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	configFile := settings.GetString("config")
	if configFile == "" {
		configFile = findSettingsFile()
	}
	if configFile != "" {
		if err := readSettings(configFile); err != nil {
			return nil, err
		}
	}

	config := &Config{
		Verbose:     settings.GetBool("verbose", false),
		Quiet:       settings.GetBool("quiet", false),
		NoColor:     settings.GetBool("no-color", os.Getenv("NO_COLOR") != ""),
		Format:      settings.GetString("format"),
		ConfigFile:  viper.ConfigFileUsed(),
		MaxParallel: settings.GetInt("max-parallel", 0),

		LogLevel:  os.Getenv("LOG_LEVEL"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}
	return config, nil
}

// UpdateFromFlags applies parsed flag values. Flags always win over the
// environment and the settings file; an empty format or log level keeps
// the loaded value.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// ReadFile loads the settings file at path (the --config flag) and
// applies its values. Values already set from the environment are kept.
func (c *Config) ReadFile(path string) error {
	if err := readSettings(path); err != nil {
		return err
	}
	c.ConfigFile = viper.ConfigFileUsed()
	c.Verbose = c.Verbose || settings.GetBool("verbose", false)
	c.Quiet = c.Quiet || settings.GetBool("quiet", false)
	c.NoColor = c.NoColor || settings.GetBool("no-color", false)
	if c.Format == "" {
		c.Format = settings.GetString("format")
	}
	if c.MaxParallel == 0 {
		c.MaxParallel = settings.GetInt("max-parallel", 0)
	}
	return nil
}

func readSettings(path string) error {
	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return errors.NewConfigError("settings", fmt.Sprintf("read %s: %v", path, err), err)
	}
	return nil
}

// loadEnvFiles loads .env then .env.local. godotenv never overrides
// variables that are already set, so the real environment wins.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

func findSettingsFile() string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	for _, dir := range dirs {
		p := filepath.Join(dir, settingsFile)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
