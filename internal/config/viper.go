// Package config provides lookup helpers over Viper for settings that may
// come from the settings file, AGENTSGEN_* variables or the plain process
// environment.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of agentsgen environment variables.
const EnvPrefix = "AGENTSGEN"

// GetString returns the Viper value for key, falling back to the raw
// environment variable of the same name when Viper has nothing.
func GetString(key string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return os.Getenv(envName(key))
}

// GetBool is GetString parsed as a bool; unparsable values yield def.
func GetBool(key string, def bool) bool {
	s := GetString(key)
	if s == "" {
		return def
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}

// GetInt is GetString parsed as an int; unparsable values yield def.
func GetInt(key string, def int) int {
	s := GetString(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

// envName maps a settings key to its AGENTSGEN_ variable, e.g.
// "max-parallel" to AGENTSGEN_MAX_PARALLEL.
func envName(key string) string {
	r := strings.NewReplacer(".", "_", "-", "_")
	return EnvPrefix + "_" + strings.ToUpper(r.Replace(key))
}
