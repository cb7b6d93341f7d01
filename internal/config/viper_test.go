package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestEnvName(t *testing.T) {
	assert.Equal(t, "AGENTSGEN_MAX_PARALLEL", envName("max-parallel"))
	assert.Equal(t, "AGENTSGEN_LOG_LEVEL", envName("log.level"))
}

func TestGetFallsBackToEnvironment(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("AGENTSGEN_MAX_PARALLEL", "3")
	t.Setenv("AGENTSGEN_PROMPTS", "false")
	t.Setenv("AGENTSGEN_BROKEN", "many")

	assert.Equal(t, 3, GetInt("max-parallel", 0))
	assert.False(t, GetBool("prompts", true))
	assert.Equal(t, 7, GetInt("broken", 7))
	assert.Equal(t, 7, GetInt("unset", 7))
	assert.True(t, GetBool("unset", true))
}

func TestViperWins(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("AGENTSGEN_OUTPUT", "json")
	viper.Set("output", "yaml")
	assert.Equal(t, "yaml", GetString("output"))
}
